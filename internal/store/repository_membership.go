// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// membershipRepository is the SQL implementation of [MembershipRepository]
// over the "contact_categories" join table.
type membershipRepository struct {
	*conn
}

func (r *membershipRepository) IsMember(ctx context.Context, userID string, categoryID, contactID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildIsMemberQuery(r.sb, userID, categoryID, contactID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "membershipRepository.IsMember").
			Int64("category_id", categoryID).
			Int64("contact_id", contactID).
			Msg("failed to check membership")
		return false, r.wrap(ErrExecutingQuery, err)
	}

	return true, nil
}

// AddMembership writes the edge through an INSERT ... SELECT that only
// yields a row when contact and category both belong to userID.
func (r *membershipRepository) AddMembership(ctx context.Context, userID string, categoryID, contactID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildAddMembershipQuery(r.sb, userID, categoryID, contactID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		// a side was deleted between the select and the insert
		if r.ec.IsForeignKeyViolation(err) {
			return false, nil
		}
		log.Err(err).
			Str("func", "membershipRepository.AddMembership").
			Int64("category_id", categoryID).
			Int64("contact_id", contactID).
			Msg("failed to insert membership")
		return false, r.wrap(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

func (r *membershipRepository) RemoveMembership(ctx context.Context, userID string, categoryID, contactID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRemoveMembershipQuery(r.sb, userID, categoryID, contactID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "membershipRepository.RemoveMembership").
			Int64("category_id", categoryID).
			Int64("contact_id", contactID).
			Msg("failed to delete membership")
		return false, r.wrap(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// ListCategoriesForContact returns the categories contactID belongs to,
// ordered by name.
func (r *membershipRepository) ListCategoriesForContact(ctx context.Context, userID string, contactID int64) ([]models.Category, error) {
	query, args, err := buildCategoriesForContactQuery(r.sb, userID, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryCategories(ctx, "membershipRepository.ListCategoriesForContact", query, args)
}

// ListCategoryIDsForContact returns the ids of the categories contactID
// belongs to, ascending.
func (r *membershipRepository) ListCategoryIDsForContact(ctx context.Context, userID string, contactID int64) ([]int64, error) {
	query, args, err := buildCategoryIDsForContactQuery(r.sb, userID, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryIDs(ctx, "membershipRepository.ListCategoryIDsForContact", query, args)
}
