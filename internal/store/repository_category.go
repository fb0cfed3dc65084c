package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// categoryRepository is the SQL implementation of [CategoryRepository].
type categoryRepository struct {
	*conn
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Version, &c.CreatedAt); err != nil {
		return models.Category{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	category.CreatedAt = now()

	query, args, err := r.sb.Insert(categoriesTable).
		Columns("user_id", "name", "created_at").
		Values(category.UserID, category.Name, category.CreatedAt).
		Suffix("RETURNING id, version").
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Version); err != nil {
		log.Err(err).
			Str("func", "categoryRepository.CreateCategory").
			Str("user_id", category.UserID).
			Msg("failed to insert category")
		return models.Category{}, r.wrap(ErrExecutingQuery, err)
	}

	return category, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, userID string, categoryID int64) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCategoryQuery(r.sb, userID, categoryID)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	category, err := scanCategory(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.GetCategory").
			Int64("category_id", categoryID).
			Msg("failed to read category")
		return models.Category{}, r.wrap(ErrExecutingQuery, err)
	}

	return category, nil
}

// ListCategories returns the categories of userID ordered by name.
func (r *categoryRepository) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	query, args, err := buildListCategoriesQuery(r.sb, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryCategories(ctx, "categoryRepository.ListCategories", query, args)
}

// UpdateCategory renames category when category.Version matches, see
// [contactRepository.UpdateContact] for the error contract.
func (r *categoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCategoryQuery(r.sb, category)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var newVersion int64
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&newVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, r.missOrConflict(ctx, categoriesTable, category.UserID, category.ID, ErrCategoryNotFound)
	}
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.UpdateCategory").
			Int64("category_id", category.ID).
			Msg("failed to update category")
		return models.Category{}, r.wrap(ErrExecutingStatement, err)
	}

	return r.GetCategory(ctx, category.UserID, category.ID)
}

// DeleteCategory removes the category and its membership edges. Member
// contacts stay.
func (r *categoryRepository) DeleteCategory(ctx context.Context, userID string, categoryID int64) error {
	return r.deleteOwned(ctx, categoriesTable, userID, categoryID, ErrCategoryNotFound)
}

func (r *categoryRepository) ListOwnedCategoryIDs(ctx context.Context, userID string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query, args, err := buildOwnedCategoryIDsQuery(r.sb, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryIDs(ctx, "categoryRepository.ListOwnedCategoryIDs", query, args)
}

func (c *conn) queryCategories(ctx context.Context, fn, query string, args []any) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query for listing categories")
		return nil, c.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 8)
	for rows.Next() {
		category, scanErr := scanCategory(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan category row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		categories = append(categories, category)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return categories, nil
}

func (c *conn) queryIDs(ctx context.Context, fn, query string, args []any) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query for ids")
		return nil, c.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 8)
	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		ids = append(ids, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ids, nil
}
