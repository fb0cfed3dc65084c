package service

import (
	"context"

	"github.com/MKhiriev/go-contact-keeper/internal/adapter"
	"github.com/MKhiriev/go-contact-keeper/internal/config"
	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
)

// Pinger is satisfied by [store.Storages].
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	AuthService       AuthService
	AppInfoService    AppInfoService
	ContactService    ContactService
	CategoryService   CategoryService
	MembershipService MembershipService
	SearchService     SearchService
	EmailService      EmailService
}

// NewServices wires every service to storages. sender may be nil, in which
// case the email operations answer ErrMailNotConfigured.
func NewServices(storages *store.Storages, sender adapter.EmailSender, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	membership := NewMembershipService(storages.Repositories, storages.Transactor, logger)

	return &Services{
		AuthService:    NewAuthService(storages.Users, cfg.App, logger),
		AppInfoService: appInfo,
		ContactService: NewContactValidationService().
			Wrap(NewContactService(storages.Repositories, storages.Transactor, logger)),
		CategoryService: NewCategoryValidationService().
			Wrap(NewCategoryService(storages.Repositories, logger)),
		MembershipService: membership,
		SearchService:     NewSearchService(storages.Contacts, logger),
		EmailService:      NewEmailService(storages.Repositories, NewEmailComposer(), sender, logger),
	}, nil
}
