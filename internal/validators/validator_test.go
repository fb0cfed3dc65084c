// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *ModelValidator {
	return &ModelValidator{now: func() time.Time { return fixedNow }}
}

func validUser() models.AppUser {
	return models.AppUser{
		Email:     "ada@example.com",
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func validContact() models.Contact {
	birth := time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC)
	return models.Contact{
		UserID:      "user-1",
		FirstName:   "Grace",
		LastName:    "Hopper",
		BirthDate:   &birth,
		Address1:    "1 Navy Way",
		City:        "Arlington",
		State:       "VA",
		ZipCode:     "22202",
		Email:       "grace@example.com",
		PhoneNumber: "+1 (555) 010-2030",
		CategoryIDs: []int64{1, 2},
	}
}

func requireFields(t *testing.T, err error, fields ...string) ValidationErrors {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrValidation)

	var verr ValidationErrors
	require.True(t, errors.As(err, &verr))
	for _, f := range fields {
		assert.Contains(t, verr, f)
	}
	assert.Len(t, verr, len(fields))
	return verr
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		err := v.Validate(ctx, "a string")
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.NotErrorIs(t, err, ErrValidation)
	})

	t.Run("user value and pointer", func(t *testing.T) {
		u := validUser()
		require.NoError(t, v.Validate(ctx, u))
		require.NoError(t, v.Validate(ctx, &u))
	})

	t.Run("contact value and pointer", func(t *testing.T) {
		c := validContact()
		require.NoError(t, v.Validate(ctx, c))
		require.NoError(t, v.Validate(ctx, &c))
	})

	t.Run("category value and pointer", func(t *testing.T) {
		c := models.Category{UserID: "user-1", Name: "Friends"}
		require.NoError(t, v.Validate(ctx, c))
		require.NoError(t, v.Validate(ctx, &c))
	})

	t.Run("email request value and pointer", func(t *testing.T) {
		r := models.EmailRequest{Subject: "Hi", Message: "Hello"}
		require.NoError(t, v.Validate(ctx, r))
		require.NoError(t, v.Validate(ctx, &r))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validUser(), "nickname"), ErrUnknownField)
		require.ErrorIs(t, v.Validate(ctx, validContact(), FieldName), ErrUnknownField)
		require.ErrorIs(t, v.Validate(ctx, models.Category{}, FieldEmail), ErrUnknownField)
		require.ErrorIs(t, v.Validate(ctx, models.EmailRequest{}, FieldName), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// AppUser
// ---------------------------------------------------------------------------

func TestValidateUser(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	tests := []struct {
		name       string
		modify     func(u *models.AppUser)
		fields     []string
		wantFields []string
	}{
		{name: "valid registration", modify: func(u *models.AppUser) {}},
		{name: "missing email", modify: func(u *models.AppUser) { u.Email = "  " }, wantFields: []string{FieldEmail}},
		{name: "malformed email", modify: func(u *models.AppUser) { u.Email = "ada-at-example" }, wantFields: []string{FieldEmail}},
		{name: "missing password", modify: func(u *models.AppUser) { u.Password = "" }, wantFields: []string{FieldPassword}},
		{name: "short password", modify: func(u *models.AppUser) { u.Password = "short" }, wantFields: []string{FieldPassword}},
		{name: "first name too short", modify: func(u *models.AppUser) { u.FirstName = "A" }, wantFields: []string{FieldFirstName}},
		{name: "last name too long", modify: func(u *models.AppUser) { u.LastName = strings.Repeat("x", 51) }, wantFields: []string{FieldLastName}},
		{name: "name at 50 runes", modify: func(u *models.AppUser) { u.LastName = strings.Repeat("é", 50) }},
		{
			name:       "several fields at once",
			modify:     func(u *models.AppUser) { u.Email, u.FirstName, u.LastName = "", "", "" },
			wantFields: []string{FieldEmail, FieldFirstName, FieldLastName},
		},
		{
			name:   "login ignores names",
			modify: func(u *models.AppUser) { u.FirstName, u.LastName = "", "" },
			fields: []string{FieldEmail, FieldPassword},
		},
		{
			name:       "user id",
			modify:     func(u *models.AppUser) {},
			fields:     []string{FieldUserID},
			wantFields: []string{FieldUserID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.modify(&u)

			err := v.Validate(ctx, u, tt.fields...)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}
			requireFields(t, err, tt.wantFields...)
		})
	}
}

// ---------------------------------------------------------------------------
// Contact
// ---------------------------------------------------------------------------

func TestValidateContact(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	tests := []struct {
		name       string
		modify     func(c *models.Contact)
		fields     []string
		wantFields []string
	}{
		{name: "valid", modify: func(c *models.Contact) {}},
		{
			name: "only names set",
			modify: func(c *models.Contact) {
				*c = models.Contact{UserID: "user-1", FirstName: "A", LastName: "B"}
			},
		},
		{name: "missing owner", modify: func(c *models.Contact) { c.UserID = "" }, wantFields: []string{FieldUserID}},
		{name: "missing first name", modify: func(c *models.Contact) { c.FirstName = "" }, wantFields: []string{FieldFirstName}},
		{name: "blank last name", modify: func(c *models.Contact) { c.LastName = "\t" }, wantFields: []string{FieldLastName}},
		{
			name: "birth date in the future",
			modify: func(c *models.Contact) {
				future := fixedNow.Add(24 * time.Hour)
				c.BirthDate = &future
			},
			wantFields: []string{FieldBirthDate},
		},
		{name: "invalid email", modify: func(c *models.Contact) { c.Email = "grace@" }, wantFields: []string{FieldEmail}},
		{name: "invalid phone", modify: func(c *models.Contact) { c.PhoneNumber = "call me" }, wantFields: []string{FieldPhoneNumber}},
		{name: "zip too long", modify: func(c *models.Contact) { c.ZipCode = "12345678901" }, wantFields: []string{FieldZipCode}},
		{name: "address too long", modify: func(c *models.Contact) { c.Address2 = strings.Repeat("a", 101) }, wantFields: []string{FieldAddress2}},
		{name: "non positive category", modify: func(c *models.Contact) { c.CategoryIDs = []int64{3, 0} }, wantFields: []string{FieldCategoryIDs}},
		{
			name:       "update needs version",
			modify:     func(c *models.Contact) { c.Version = 0 },
			fields:     ContactUpdateFields,
			wantFields: []string{FieldVersion},
		},
		{
			name:   "update with version",
			modify: func(c *models.Contact) { c.Version = 3 },
			fields: ContactUpdateFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.modify(&c)

			err := v.Validate(ctx, c, tt.fields...)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}
			requireFields(t, err, tt.wantFields...)
		})
	}
}

// ---------------------------------------------------------------------------
// Category and EmailRequest
// ---------------------------------------------------------------------------

func TestValidateCategory(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.Category{UserID: "u", Name: "Work"}))
	requireFields(t, v.Validate(ctx, models.Category{UserID: "u", Name: " "}), FieldName)
	requireFields(t, v.Validate(ctx, models.Category{UserID: "u", Name: strings.Repeat("n", 101)}), FieldName)
	requireFields(t, v.Validate(ctx, models.Category{Name: "Work"}), FieldUserID)
	requireFields(t, v.Validate(ctx, models.Category{UserID: "u", Name: "Work"}, FieldUserID, FieldName, FieldVersion), FieldVersion)
	require.NoError(t, v.Validate(ctx, models.Category{UserID: "u", Name: "Work", Version: 2}, FieldUserID, FieldName, FieldVersion))
}

func TestValidateEmailRequest(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.EmailRequest{Subject: "Party", Message: "<b>Come!</b>"}))
	requireFields(t, v.Validate(ctx, models.EmailRequest{}), FieldSubject, FieldMessage)
	requireFields(t, v.Validate(ctx, models.EmailRequest{Subject: strings.Repeat("s", 201), Message: "m"}), FieldSubject)
}

// ---------------------------------------------------------------------------
// ValidationErrors
// ---------------------------------------------------------------------------

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{}
	require.NoError(t, errs.err())

	errs.add("name", "is required")
	errs.add("name", "ignored second message")
	errs.add("email", "must be a valid email address")

	err := errs.err()
	require.Error(t, err)
	assert.Equal(t, "validation failed: email: must be a valid email address; name: is required", err.Error())

	wrapped := errors.Join(errors.New("creating contact"), err)
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.Equal(t, map[string]string{
		"name":  "is required",
		"email": "must be a valid email address",
	}, Fields(wrapped))
	assert.Nil(t, Fields(errors.New("other")))
}
