package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/models"
)

type searchService struct {
	contacts store.ContactRepository

	logger *logger.Logger
}

func NewSearchService(contacts store.ContactRepository, logger *logger.Logger) SearchService {
	return &searchService{contacts: contacts, logger: logger}
}

// SearchContacts trims query and lists the user's contacts matching it,
// ordered by last name, first name and id. The matching itself runs in SQL
// so only the user's rows are ever read.
func (s *searchService) SearchContacts(ctx context.Context, query, userID string) ([]models.Contact, error) {
	filter := models.ContactFilter{UserID: userID, Query: strings.TrimSpace(query)}

	contacts, err := s.contacts.ListContacts(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*searchService.SearchContacts").Str("query", filter.Query).Msg("contact search failed")
		return nil, fmt.Errorf("contact search failed: %w", err)
	}

	return contacts, nil
}
