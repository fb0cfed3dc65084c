package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/models"
)

type categoryService struct {
	repos *store.Repositories

	logger *logger.Logger
}

func NewCategoryService(repos *store.Repositories, logger *logger.Logger) CategoryService {
	return &categoryService{repos: repos, logger: logger}
}

func (c *categoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	created, err := c.repos.Categories.CreateCategory(ctx, category)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.CreateCategory").Msg("category creation failed")
		return models.Category{}, fmt.Errorf("creating category failed: %w", err)
	}
	return created, nil
}

func (c *categoryService) GetCategory(ctx context.Context, userID string, categoryID int64) (models.Category, error) {
	category, err := c.repos.Categories.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return models.Category{}, fmt.Errorf("getting category failed: %w", err)
	}

	members, err := c.repos.Contacts.ListContacts(ctx, models.ContactFilter{UserID: userID, CategoryID: categoryID})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.GetCategory").Msg("listing members failed")
		return models.Category{}, fmt.Errorf("listing category members failed: %w", err)
	}
	if members == nil {
		members = []models.Contact{}
	}
	category.Contacts = members

	return category, nil
}

func (c *categoryService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	categories, err := c.repos.Categories.ListCategories(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.ListCategories").Msg("listing categories failed")
		return nil, fmt.Errorf("listing categories failed: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category guarded by category.Version.
func (c *categoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	updated, err := c.repos.Categories.UpdateCategory(ctx, category)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.UpdateCategory").Int64("category_id", category.ID).Msg("category update failed")
		return models.Category{}, fmt.Errorf("updating category failed: %w", err)
	}
	return updated, nil
}

// DeleteCategory removes the category and its membership edges. The member
// contacts are kept.
func (c *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID int64) error {
	if err := c.repos.Categories.DeleteCategory(ctx, userID, categoryID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.DeleteCategory").Int64("category_id", categoryID).Msg("category deletion failed")
		return fmt.Errorf("deleting category failed: %w", err)
	}
	return nil
}
