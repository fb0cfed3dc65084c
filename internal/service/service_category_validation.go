package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/internal/validators"
	"github.com/MKhiriev/go-contact-keeper/models"
)

type CategoryValidationService struct {
	inner     CategoryService
	validator validators.Validator
}

func NewCategoryValidationService() CategoryServiceWrapper {
	return &CategoryValidationService{
		validator: validators.NewValidator(),
	}
}

func (v *CategoryValidationService) Wrap(wrapped CategoryService) CategoryService {
	v.inner = wrapped
	return v
}

func (v *CategoryValidationService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if err := v.validator.Validate(ctx, category); err != nil {
		return models.Category{}, fmt.Errorf("error during category validation before saving: %w", err)
	}
	return v.inner.CreateCategory(ctx, category)
}

func (v *CategoryValidationService) GetCategory(ctx context.Context, userID string, categoryID int64) (models.Category, error) {
	if categoryID <= 0 {
		return models.Category{}, ErrInvalidIdentifierID
	}
	return v.inner.GetCategory(ctx, userID, categoryID)
}

func (v *CategoryValidationService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	return v.inner.ListCategories(ctx, userID)
}

func (v *CategoryValidationService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if category.ID <= 0 {
		return models.Category{}, ErrInvalidIdentifierID
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := v.validator.Validate(ctx, category, validators.FieldUserID, validators.FieldName, validators.FieldVersion); err != nil {
		return models.Category{}, fmt.Errorf("error during category validation before update: %w", err)
	}
	return v.inner.UpdateCategory(ctx, category)
}

func (v *CategoryValidationService) DeleteCategory(ctx context.Context, userID string, categoryID int64) error {
	if categoryID <= 0 {
		return ErrInvalidIdentifierID
	}
	return v.inner.DeleteCategory(ctx, userID, categoryID)
}
