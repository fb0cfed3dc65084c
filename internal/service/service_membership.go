// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/models"
)

type membershipService struct {
	repos *store.Repositories
	tx    store.Transactor

	logger *logger.Logger
}

func NewMembershipService(repos *store.Repositories, tx store.Transactor, logger *logger.Logger) MembershipService {
	return &membershipService{repos: repos, tx: tx, logger: logger}
}

func (m *membershipService) IsMember(ctx context.Context, userID string, categoryID, contactID int64) (bool, error) {
	isMember, err := m.repos.Memberships.IsMember(ctx, userID, categoryID, contactID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*membershipService.IsMember").Msg("membership lookup failed")
		return false, fmt.Errorf("membership lookup failed: %w", err)
	}
	return isMember, nil
}

// resolvePair reports whether the category and the contact both exist for
// userID.
func resolvePair(ctx context.Context, repos *store.Repositories, userID string, categoryID, contactID int64) (bool, error) {
	if _, err := repos.Categories.GetCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("category lookup failed: %w", err)
	}
	if _, err := repos.Contacts.GetContact(ctx, userID, contactID); err != nil {
		if errors.Is(err, store.ErrContactNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("contact lookup failed: %w", err)
	}
	return true, nil
}

// AddMembership returns MembershipAdded for a new edge, MembershipAlreadyExists
// when the contact already was a member and MembershipNotFound when either side
// does not resolve for userID.
func (m *membershipService) AddMembership(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error) {
	log := logger.FromContext(ctx).With().Str("func", "*membershipService.AddMembership").
		Int64("category_id", categoryID).Int64("contact_id", contactID).Logger()

	found, err := resolvePair(ctx, m.repos, userID, categoryID, contactID)
	if err != nil {
		log.Err(err).Msg("resolving membership sides failed")
		return models.MembershipNotFound, err
	}
	if !found {
		return models.MembershipNotFound, nil
	}

	added, err := m.repos.Memberships.AddMembership(ctx, userID, categoryID, contactID)
	if err != nil {
		log.Err(err).Msg("adding membership failed")
		return models.MembershipNotFound, fmt.Errorf("adding membership failed: %w", err)
	}
	if added {
		log.Debug().Msg("membership added")
		return models.MembershipAdded, nil
	}

	// nothing was inserted: either the edge exists or a side was deleted
	// after it was resolved
	isMember, err := m.repos.Memberships.IsMember(ctx, userID, categoryID, contactID)
	if err != nil {
		log.Err(err).Msg("membership lookup failed")
		return models.MembershipNotFound, fmt.Errorf("membership lookup failed: %w", err)
	}
	if isMember {
		return models.MembershipAlreadyExists, nil
	}
	return models.MembershipNotFound, nil
}

// RemoveMembership returns MembershipRemoved when an edge was deleted,
// MembershipNotMember when there was none and MembershipNotFound when either
// side does not resolve for userID.
func (m *membershipService) RemoveMembership(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error) {
	log := logger.FromContext(ctx).With().Str("func", "*membershipService.RemoveMembership").
		Int64("category_id", categoryID).Int64("contact_id", contactID).Logger()

	found, err := resolvePair(ctx, m.repos, userID, categoryID, contactID)
	if err != nil {
		log.Err(err).Msg("resolving membership sides failed")
		return models.MembershipNotFound, err
	}
	if !found {
		return models.MembershipNotFound, nil
	}

	removed, err := m.repos.Memberships.RemoveMembership(ctx, userID, categoryID, contactID)
	if err != nil {
		log.Err(err).Msg("removing membership failed")
		return models.MembershipNotFound, fmt.Errorf("removing membership failed: %w", err)
	}
	if !removed {
		return models.MembershipNotMember, nil
	}

	log.Debug().Msg("membership removed")
	return models.MembershipRemoved, nil
}

func (m *membershipService) ListCategoriesForContact(ctx context.Context, userID string, contactID int64) ([]models.Category, error) {
	if _, err := m.repos.Contacts.GetContact(ctx, userID, contactID); err != nil {
		return nil, fmt.Errorf("contact lookup failed: %w", err)
	}

	categories, err := m.repos.Memberships.ListCategoriesForContact(ctx, userID, contactID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*membershipService.ListCategoriesForContact").Msg("listing categories failed")
		return nil, fmt.Errorf("listing categories of contact failed: %w", err)
	}
	return categories, nil
}

func (m *membershipService) ListCategoryIDsForContact(ctx context.Context, userID string, contactID int64) ([]int64, error) {
	if _, err := m.repos.Contacts.GetContact(ctx, userID, contactID); err != nil {
		return nil, fmt.Errorf("contact lookup failed: %w", err)
	}

	ids, err := m.repos.Memberships.ListCategoryIDsForContact(ctx, userID, contactID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*membershipService.ListCategoryIDsForContact").Msg("listing category ids failed")
		return nil, fmt.Errorf("listing category ids of contact failed: %w", err)
	}
	return ids, nil
}

func (m *membershipService) ListCategoriesForUser(ctx context.Context, userID string) ([]models.Category, error) {
	categories, err := m.repos.Categories.ListCategories(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*membershipService.ListCategoriesForUser").Msg("listing categories failed")
		return nil, fmt.Errorf("listing categories failed: %w", err)
	}
	return categories, nil
}

func (m *membershipService) SyncContactCategories(ctx context.Context, userID string, contactID int64, desired []int64) (models.SyncResult, error) {
	var result models.SyncResult

	err := m.tx.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		if _, err := repos.Contacts.GetContact(ctx, userID, contactID); err != nil {
			return fmt.Errorf("contact lookup failed: %w", err)
		}

		var err error
		result, err = syncContactCategories(ctx, repos, userID, contactID, desired)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*membershipService.SyncContactCategories").
			Int64("contact_id", contactID).Msg("category sync failed")
		return models.SyncResult{}, err
	}

	return result, nil
}

// syncContactCategories reconciles the categories of an existing contact
// with desired using repos, which must be bound to an open transaction.
//
// Only the difference is written: ids in desired but not current are added,
// ids current but not in desired are removed. A desired id the user does
// not own fails the whole sync with store.ErrCategoryNotFound before
// anything is written.
func syncContactCategories(ctx context.Context, repos *store.Repositories, userID string, contactID int64, desired []int64) (models.SyncResult, error) {
	want := uniqueSorted(desired)

	if len(want) > 0 {
		owned, err := repos.Categories.ListOwnedCategoryIDs(ctx, userID, want)
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("resolving categories failed: %w", err)
		}
		if missing := difference(want, uniqueSorted(owned)); len(missing) > 0 {
			return models.SyncResult{}, fmt.Errorf("%w: %v", store.ErrCategoryNotFound, missing)
		}
	}

	current, err := repos.Memberships.ListCategoryIDsForContact(ctx, userID, contactID)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("listing current categories failed: %w", err)
	}
	have := uniqueSorted(current)

	result := models.SyncResult{Added: []int64{}, Removed: []int64{}}

	for _, categoryID := range difference(want, have) {
		added, err := repos.Memberships.AddMembership(ctx, userID, categoryID, contactID)
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("adding category %d failed: %w", categoryID, err)
		}
		// false means a concurrent writer linked the pair first
		if added {
			result.Added = append(result.Added, categoryID)
		}
	}

	for _, categoryID := range difference(have, want) {
		removed, err := repos.Memberships.RemoveMembership(ctx, userID, categoryID, contactID)
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("removing category %d failed: %w", categoryID, err)
		}
		if removed {
			result.Removed = append(result.Removed, categoryID)
		}
	}

	return result, nil
}

// uniqueSorted returns the distinct values of ids in ascending order.
func uniqueSorted(ids []int64) []int64 {
	out := append([]int64{}, ids...)
	slices.Sort(out)
	return slices.Compact(out)
}

// difference returns the values of a that are not in b. Both must be sorted
// and free of duplicates.
func difference(a, b []int64) []int64 {
	var out []int64
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			j++
		default:
			i++
			j++
		}
	}
	return out
}
