package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/internal/validators"
	"github.com/MKhiriev/go-contact-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestContactSvc(t *testing.T) (ContactService, *testRepos, *fakeTransactor) {
	t.Helper()
	r := newTestRepos(t)
	tx := &fakeTransactor{repos: r.repos}
	svc := NewContactValidationService().Wrap(NewContactService(r.repos, tx, logger.Nop()))
	return svc, r, tx
}

func validContact() models.Contact {
	return models.Contact{
		UserID:      testUserID,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+44 20 7946 0000",
	}
}

// ── CreateContact ────────────────────────────────────────────────────────────

func TestContactService_Create_LinksCategoriesInOneTransaction(t *testing.T) {
	svc, r, tx := newTestContactSvc(t)
	ctx := context.Background()

	in := validContact()
	in.FirstName = "  Ada "
	in.CategoryIDs = []int64{2, 1, 2}

	r.contacts.EXPECT().CreateContact(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Contact) (models.Contact, error) {
			assert.Equal(t, "Ada", c.FirstName, "fields must be trimmed before storing")
			c.ID, c.Version = 7, 1
			return c, nil
		})
	r.categories.EXPECT().ListOwnedCategoryIDs(ctx, testUserID, []int64{1, 2}).Return([]int64{1, 2}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(ctx, testUserID, int64(7)).Return(nil, nil)
	r.memberships.EXPECT().AddMembership(ctx, testUserID, int64(1), int64(7)).Return(true, nil)
	r.memberships.EXPECT().AddMembership(ctx, testUserID, int64(2), int64(7)).Return(true, nil)

	got, err := svc.CreateContact(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, []int64{1, 2}, got.CategoryIDs)
	assert.Equal(t, 1, tx.calls)
}

func TestContactService_Create_WithoutCategories(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	r.contacts.EXPECT().CreateContact(gomock.Any(), gomock.Any()).Return(models.Contact{ID: 3, UserID: testUserID, Version: 1}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(3)).Return(nil, nil)

	got, err := svc.CreateContact(context.Background(), validContact())
	require.NoError(t, err)
	assert.NotNil(t, got.CategoryIDs)
	assert.Empty(t, got.CategoryIDs)
}

func TestContactService_Create_UnknownCategoryFails(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)
	in := validContact()
	in.CategoryIDs = []int64{42}

	r.contacts.EXPECT().CreateContact(gomock.Any(), gomock.Any()).Return(models.Contact{ID: 3, UserID: testUserID}, nil)
	r.categories.EXPECT().ListOwnedCategoryIDs(gomock.Any(), testUserID, []int64{42}).Return(nil, nil)

	_, err := svc.CreateContact(context.Background(), in)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestContactService_Create_InvalidInputNeverReachesStorage(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name   string
		mutate func(c *models.Contact)
		field  string
	}{
		{name: "missing first name", mutate: func(c *models.Contact) { c.FirstName = "   " }, field: validators.FieldFirstName},
		{name: "missing last name", mutate: func(c *models.Contact) { c.LastName = "" }, field: validators.FieldLastName},
		{name: "bad email", mutate: func(c *models.Contact) { c.Email = "not-an-email" }, field: validators.FieldEmail},
		{name: "bad phone", mutate: func(c *models.Contact) { c.PhoneNumber = "call me" }, field: validators.FieldPhoneNumber},
		{name: "birth date in future", mutate: func(c *models.Contact) { c.BirthDate = &future }, field: validators.FieldBirthDate},
		{name: "non-positive category", mutate: func(c *models.Contact) { c.CategoryIDs = []int64{1, 0} }, field: validators.FieldCategoryIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, tx := newTestContactSvc(t)
			in := validContact()
			tt.mutate(&in)

			_, err := svc.CreateContact(context.Background(), in)
			require.ErrorIs(t, err, validators.ErrValidation)
			assert.Contains(t, validators.Fields(err), tt.field)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestContactService_Create_BirthDateStoredAsUTCDate(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	local := time.Date(1990, 5, 17, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	in := validContact()
	in.BirthDate = &local

	r.contacts.EXPECT().CreateContact(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Contact) (models.Contact, error) {
			require.NotNil(t, c.BirthDate)
			assert.Equal(t, time.Date(1990, 5, 18, 0, 0, 0, 0, time.UTC), *c.BirthDate)
			c.ID = 1
			return c, nil
		})
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(1)).Return(nil, nil)

	_, err := svc.CreateContact(context.Background(), in)
	require.NoError(t, err)
}

// ── GetContact / ListContacts ────────────────────────────────────────────────

func TestContactService_Get_AttachesCategoryIDs(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(5)).Return(models.Contact{ID: 5, FirstName: "Ada"}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(5)).Return([]int64{1, 3}, nil)

	got, err := svc.GetContact(context.Background(), testUserID, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, got.CategoryIDs)
}

func TestContactService_Get_NotFound(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(5)).Return(models.Contact{}, store.ErrContactNotFound)

	_, err := svc.GetContact(context.Background(), testUserID, 5)
	assert.ErrorIs(t, err, store.ErrContactNotFound)
}

func TestContactService_InvalidIDs(t *testing.T) {
	svc, _, _ := newTestContactSvc(t)
	ctx := context.Background()

	_, err := svc.GetContact(ctx, testUserID, 0)
	assert.ErrorIs(t, err, ErrInvalidIdentifierID)

	err = svc.DeleteContact(ctx, testUserID, -1)
	assert.ErrorIs(t, err, ErrInvalidIdentifierID)

	_, err = svc.ListContacts(ctx, testUserID, -4)
	assert.ErrorIs(t, err, validators.ErrValidation)

	_, err = svc.GetContactImage(ctx, testUserID, 0)
	assert.ErrorIs(t, err, ErrInvalidIdentifierID)
}

func TestContactService_List(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)
	ctx := context.Background()

	r.contacts.EXPECT().ListContacts(ctx, models.ContactFilter{UserID: testUserID}).Return([]models.Contact{{ID: 1}, {ID: 2}}, nil)

	got, err := svc.ListContacts(ctx, testUserID, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestContactService_List_ByCategory(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)
	ctx := context.Background()

	r.categories.EXPECT().GetCategory(ctx, testUserID, int64(4)).Return(models.Category{ID: 4}, nil)
	r.contacts.EXPECT().ListContacts(ctx, models.ContactFilter{UserID: testUserID, CategoryID: 4}).Return([]models.Contact{{ID: 9}}, nil)

	got, err := svc.ListContacts(ctx, testUserID, 4)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestContactService_List_UnknownCategory(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	r.categories.EXPECT().GetCategory(gomock.Any(), testUserID, int64(4)).Return(models.Category{}, store.ErrCategoryNotFound)

	_, err := svc.ListContacts(context.Background(), testUserID, 4)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

// ── UpdateContact ────────────────────────────────────────────────────────────

func TestContactService_Update_ReplacesCategories(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)
	ctx := context.Background()

	in := validContact()
	in.ID, in.Version = 5, 2
	in.CategoryIDs = []int64{3}

	r.contacts.EXPECT().UpdateContact(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Contact) (models.Contact, error) {
			c.Version++
			return c, nil
		})
	r.categories.EXPECT().ListOwnedCategoryIDs(ctx, testUserID, []int64{3}).Return([]int64{3}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(ctx, testUserID, int64(5)).Return([]int64{1, 3}, nil)
	r.memberships.EXPECT().RemoveMembership(ctx, testUserID, int64(1), int64(5)).Return(true, nil)

	got, err := svc.UpdateContact(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Version)
	assert.Equal(t, []int64{3}, got.CategoryIDs)
}

func TestContactService_Update_NilCategoriesClearsMemberships(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	in := validContact()
	in.ID, in.Version = 5, 1

	r.contacts.EXPECT().UpdateContact(gomock.Any(), gomock.Any()).Return(in, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(5)).Return([]int64{2}, nil)
	r.memberships.EXPECT().RemoveMembership(gomock.Any(), testUserID, int64(2), int64(5)).Return(true, nil)

	got, err := svc.UpdateContact(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryIDs)
}

func TestContactService_Update_VersionConflictSkipsSync(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	in := validContact()
	in.ID, in.Version = 5, 1
	in.CategoryIDs = []int64{1}

	r.contacts.EXPECT().UpdateContact(gomock.Any(), gomock.Any()).Return(models.Contact{}, store.ErrVersionConflict)

	_, err := svc.UpdateContact(context.Background(), in)
	assert.ErrorIs(t, err, store.ErrVersionConflict)
}

func TestContactService_Update_RequiresVersion(t *testing.T) {
	svc, _, tx := newTestContactSvc(t)

	in := validContact()
	in.ID = 5

	_, err := svc.UpdateContact(context.Background(), in)
	require.ErrorIs(t, err, validators.ErrValidation)
	assert.Contains(t, validators.Fields(err), validators.FieldVersion)
	assert.Zero(t, tx.calls)
}

// ── DeleteContact ────────────────────────────────────────────────────────────

func TestContactService_Delete(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)

	r.contacts.EXPECT().DeleteContact(gomock.Any(), testUserID, int64(5)).Return(nil)
	require.NoError(t, svc.DeleteContact(context.Background(), testUserID, 5))

	r.contacts.EXPECT().DeleteContact(gomock.Any(), testUserID, int64(6)).Return(store.ErrContactNotFound)
	assert.ErrorIs(t, svc.DeleteContact(context.Background(), testUserID, 6), store.ErrContactNotFound)
}

// ── images ───────────────────────────────────────────────────────────────────

func TestContactService_SetContactImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")

	tests := []struct {
		name    string
		image   models.ContactImage
		stored  bool
		wantErr error
	}{
		{name: "png", image: models.ContactImage{Data: png, ContentType: "image/png"}, stored: true},
		{name: "empty", image: models.ContactImage{ContentType: "image/png"}, wantErr: ErrImageEmpty},
		{name: "too large", image: models.ContactImage{Data: bytes.Repeat([]byte{1}, MaxImageSize+1), ContentType: "image/jpeg"}, wantErr: ErrImageTooLarge},
		{name: "not an image", image: models.ContactImage{Data: []byte("%PDF-1.7"), ContentType: "application/pdf"}, wantErr: ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r, _ := newTestContactSvc(t)
			if tt.stored {
				r.contacts.EXPECT().SetContactImage(gomock.Any(), testUserID, int64(5), tt.image).Return(nil)
			}

			err := svc.SetContactImage(context.Background(), testUserID, 5, tt.image)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, validators.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestContactService_GetContactImage(t *testing.T) {
	svc, r, _ := newTestContactSvc(t)
	want := models.ContactImage{Data: []byte{1, 2}, ContentType: "image/gif"}

	r.contacts.EXPECT().GetContactImage(gomock.Any(), testUserID, int64(5)).Return(want, nil)
	got, err := svc.GetContactImage(context.Background(), testUserID, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	r.contacts.EXPECT().GetContactImage(gomock.Any(), testUserID, int64(6)).Return(models.ContactImage{}, store.ErrImageNotFound)
	_, err = svc.GetContactImage(context.Background(), testUserID, 6)
	assert.ErrorIs(t, err, store.ErrImageNotFound)
}
