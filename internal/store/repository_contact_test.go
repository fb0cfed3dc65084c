package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-contact-keeper/models"
)

func newTestContactRepo(t *testing.T) (*contactRepository, sqlmock.Sqlmock) {
	c, mock := newTestConn(t)
	return &contactRepository{conn: c}, mock
}

func sampleContact() models.Contact {
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	return models.Contact{
		UserID:      testUserID,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		BirthDate:   &birth,
		Address1:    "12 St James's Square",
		City:        "London",
		State:       "LDN",
		ZipCode:     "SW1Y 4JH",
		Email:       "ada@example.com",
		PhoneNumber: "555-0101",
	}
}

func TestCreateContact_Success(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	c := sampleContact()
	mock.ExpectQuery("INSERT INTO contacts .* RETURNING id, version").
		WithArgs(c.UserID, c.FirstName, c.LastName, sqlmock.AnyArg(), c.Address1, c.Address2,
			c.City, c.State, c.ZipCode, c.Email, c.PhoneNumber, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(int64(7), int64(1)))

	created, err := repo.CreateContact(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, int64(1), created.Version)
	assert.Equal(t, time.UTC, created.CreatedAt.Location())
	assert.Equal(t, c.FirstName, created.FirstName)
}

func TestCreateContact_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "generic", dbErr: errors.New("boom"), wantErr: ErrExecutingQuery},
		{name: "deadlock is transient", dbErr: pgError(pgerrcode.DeadlockDetected), wantErr: ErrStorageUnavailable},
		{name: "not null violation", dbErr: pgError(pgerrcode.NotNullViolation), wantErr: ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestContactRepo(t)
			mock.ExpectQuery("INSERT INTO contacts").WillReturnError(tt.dbErr)

			_, err := repo.CreateContact(context.Background(), sampleContact())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetContact_Success(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT c.id, .* FROM contacts c WHERE c.id = \\$1 AND c.user_id = \\$2").
		WithArgs(int64(3), testUserID).
		WillReturnRows(addContactRow(contactRows(), 3, "Ada", "Lovelace", birth))

	got, err := repo.GetContact(context.Background(), testUserID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	require.NotNil(t, got.BirthDate)
	assert.True(t, birth.Equal(*got.BirthDate))
	assert.False(t, got.HasImage())
}

func TestGetContact_NullBirthDate(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery("SELECT c.id").
		WithArgs(int64(3), testUserID).
		WillReturnRows(addContactRow(contactRows(), 3, "Ada", "Lovelace", nil))

	got, err := repo.GetContact(context.Background(), testUserID, 3)
	require.NoError(t, err)
	assert.Nil(t, got.BirthDate)
}

func TestGetContact_NotFound(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery("SELECT c.id").
		WithArgs(int64(3), testUserID).
		WillReturnRows(contactRows())

	_, err := repo.GetContact(context.Background(), testUserID, 3)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestListContacts_All(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := contactRows()
	addContactRow(rows, 1, "Ada", "Lovelace", nil)
	addContactRow(rows, 2, "Alan", "Turing", nil)

	mock.ExpectQuery("SELECT c.id, .* FROM contacts c WHERE c.user_id = \\$1 ORDER BY c.last_name, c.first_name, c.id").
		WithArgs(testUserID).
		WillReturnRows(rows)

	got, err := repo.ListContacts(context.Background(), models.ContactFilter{UserID: testUserID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Lovelace", got[0].LastName)
	assert.Equal(t, "Turing", got[1].LastName)
}

func TestListContacts_ByCategory(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery("JOIN contact_categories cc ON cc.contact_id = c.id").
		WithArgs(int64(9), testUserID, testUserID).
		WillReturnRows(addContactRow(contactRows(), 1, "Ada", "Lovelace", nil))

	got, err := repo.ListContacts(context.Background(), models.ContactFilter{UserID: testUserID, CategoryID: 9})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListContacts_EmptyIsNotNil(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery("SELECT c.id").WillReturnRows(contactRows())

	got, err := repo.ListContacts(context.Background(), models.ContactFilter{UserID: testUserID})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListContacts_RowError(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := addContactRow(contactRows(), 1, "Ada", "Lovelace", nil).
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery("SELECT c.id").WillReturnRows(rows)

	_, err := repo.ListContacts(context.Background(), models.ContactFilter{UserID: testUserID})
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestUpdateContact_Success(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	c := sampleContact()
	c.ID = 3
	c.Version = 1

	mock.ExpectQuery("UPDATE contacts SET .* WHERE id = \\$11 AND user_id = \\$12 AND version = \\$13 RETURNING version").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))
	mock.ExpectQuery("SELECT c.id").
		WithArgs(int64(3), testUserID).
		WillReturnRows(contactRows().AddRow(
			int64(3), testUserID, "Ada", "Lovelace", nil, "a1", "", "city", "st", "zip",
			"ada@example.com", "555", "", int64(2), time.Now()))

	got, err := repo.UpdateContact(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
}

func TestUpdateContact_VersionConflict(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	c := sampleContact()
	c.ID = 3
	c.Version = 1

	mock.ExpectQuery("UPDATE contacts").WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectQuery("SELECT 1 FROM contacts WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(3), testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	_, err := repo.UpdateContact(context.Background(), c)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestUpdateContact_NotFound(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	c := sampleContact()
	c.ID = 3

	mock.ExpectQuery("UPDATE contacts").WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectQuery("SELECT 1 FROM contacts").WillReturnRows(sqlmock.NewRows([]string{"1"}))

	_, err := repo.UpdateContact(context.Background(), c)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestDeleteContact(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrContactNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestContactRepo(t)
			mock.ExpectExec("DELETE FROM contacts WHERE id = \\$1 AND user_id = \\$2").
				WithArgs(int64(5), testUserID).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeleteContact(context.Background(), testUserID, 5)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetContactImage_NotFound(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	img := models.ContactImage{Data: []byte{0x89, 'P', 'N', 'G'}, ContentType: "image/png"}
	mock.ExpectExec("UPDATE contacts SET image_data = \\$1, image_type = \\$2").
		WithArgs(img.Data, img.ContentType, int64(5), testUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetContactImage(context.Background(), testUserID, 5, img)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestGetContactImage(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		repo, mock := newTestContactRepo(t)
		mock.ExpectQuery("SELECT image_data, image_type FROM contacts").
			WithArgs(int64(5), testUserID).
			WillReturnRows(sqlmock.NewRows([]string{"image_data", "image_type"}).AddRow([]byte("png"), "image/png"))

		img, err := repo.GetContactImage(context.Background(), testUserID, 5)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, []byte("png"), img.Data)
	})

	t.Run("no image", func(t *testing.T) {
		repo, mock := newTestContactRepo(t)
		mock.ExpectQuery("SELECT image_data, image_type FROM contacts").
			WillReturnRows(sqlmock.NewRows([]string{"image_data", "image_type"}).AddRow(nil, ""))

		_, err := repo.GetContactImage(context.Background(), testUserID, 5)
		assert.ErrorIs(t, err, ErrImageNotFound)
	})

	t.Run("no contact", func(t *testing.T) {
		repo, mock := newTestContactRepo(t)
		mock.ExpectQuery("SELECT image_data, image_type FROM contacts").
			WillReturnRows(sqlmock.NewRows([]string{"image_data", "image_type"}))

		_, err := repo.GetContactImage(context.Background(), testUserID, 5)
		assert.ErrorIs(t, err, ErrContactNotFound)
	})
}
