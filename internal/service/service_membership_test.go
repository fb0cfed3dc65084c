// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMembershipSvc(t *testing.T) (MembershipService, *testRepos, *fakeTransactor) {
	t.Helper()
	r := newTestRepos(t)
	tx := &fakeTransactor{repos: r.repos}
	return NewMembershipService(r.repos, tx, logger.Nop()), r, tx
}

// expectPair makes the category and contact lookups succeed.
func expectPair(r *testRepos, categoryID, contactID int64) {
	r.categories.EXPECT().GetCategory(gomock.Any(), testUserID, categoryID).
		Return(models.Category{ID: categoryID, UserID: testUserID}, nil)
	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, contactID).
		Return(models.Contact{ID: contactID, UserID: testUserID}, nil)
}

// ── IsMember ─────────────────────────────────────────────────────────────────

func TestMembershipService_IsMember(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)
	ctx := context.Background()

	r.memberships.EXPECT().IsMember(ctx, testUserID, int64(1), int64(2)).Return(true, nil)
	r.memberships.EXPECT().IsMember(ctx, testUserID, int64(1), int64(3)).Return(false, nil)
	r.memberships.EXPECT().IsMember(ctx, testUserID, int64(1), int64(4)).Return(false, store.ErrStorageUnavailable)

	ok, err := svc.IsMember(ctx, testUserID, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsMember(ctx, testUserID, 1, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.IsMember(ctx, testUserID, 1, 4)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

// ── AddMembership ────────────────────────────────────────────────────────────

func TestMembershipService_AddMembership(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *testRepos)
		want    models.MembershipResult
		wantErr error
	}{
		{
			name: "added",
			setup: func(r *testRepos) {
				expectPair(r, 1, 2)
				r.memberships.EXPECT().AddMembership(gomock.Any(), testUserID, int64(1), int64(2)).Return(true, nil)
			},
			want: models.MembershipAdded,
		},
		{
			name: "already member",
			setup: func(r *testRepos) {
				expectPair(r, 1, 2)
				r.memberships.EXPECT().AddMembership(gomock.Any(), testUserID, int64(1), int64(2)).Return(false, nil)
				r.memberships.EXPECT().IsMember(gomock.Any(), testUserID, int64(1), int64(2)).Return(true, nil)
			},
			want: models.MembershipAlreadyExists,
		},
		{
			name: "side deleted between lookup and insert",
			setup: func(r *testRepos) {
				expectPair(r, 1, 2)
				r.memberships.EXPECT().AddMembership(gomock.Any(), testUserID, int64(1), int64(2)).Return(false, nil)
				r.memberships.EXPECT().IsMember(gomock.Any(), testUserID, int64(1), int64(2)).Return(false, nil)
			},
			want: models.MembershipNotFound,
		},
		{
			name: "category not found",
			setup: func(r *testRepos) {
				r.categories.EXPECT().GetCategory(gomock.Any(), testUserID, int64(1)).Return(models.Category{}, store.ErrCategoryNotFound)
			},
			want: models.MembershipNotFound,
		},
		{
			name: "contact of another owner",
			setup: func(r *testRepos) {
				r.categories.EXPECT().GetCategory(gomock.Any(), testUserID, int64(1)).Return(models.Category{ID: 1}, nil)
				r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(2)).Return(models.Contact{}, store.ErrContactNotFound)
			},
			want: models.MembershipNotFound,
		},
		{
			name: "storage failure on lookup",
			setup: func(r *testRepos) {
				r.categories.EXPECT().GetCategory(gomock.Any(), testUserID, int64(1)).Return(models.Category{}, store.ErrStorageUnavailable)
			},
			want:    models.MembershipNotFound,
			wantErr: store.ErrStorageUnavailable,
		},
		{
			name: "storage failure on insert",
			setup: func(r *testRepos) {
				expectPair(r, 1, 2)
				r.memberships.EXPECT().AddMembership(gomock.Any(), testUserID, int64(1), int64(2)).Return(false, store.ErrExecutingQuery)
			},
			want:    models.MembershipNotFound,
			wantErr: store.ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r, _ := newTestMembershipSvc(t)
			tt.setup(r)

			got, err := svc.AddMembership(context.Background(), testUserID, 1, 2)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── RemoveMembership ─────────────────────────────────────────────────────────

func TestMembershipService_RemoveMembership(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *testRepos)
		want  models.MembershipResult
	}{
		{
			name: "removed",
			setup: func(r *testRepos) {
				expectPair(r, 5, 6)
				r.memberships.EXPECT().RemoveMembership(gomock.Any(), testUserID, int64(5), int64(6)).Return(true, nil)
			},
			want: models.MembershipRemoved,
		},
		{
			name: "not a member is a no-op",
			setup: func(r *testRepos) {
				expectPair(r, 5, 6)
				r.memberships.EXPECT().RemoveMembership(gomock.Any(), testUserID, int64(5), int64(6)).Return(false, nil)
			},
			want: models.MembershipNotMember,
		},
		{
			name: "category not found",
			setup: func(r *testRepos) {
				r.categories.EXPECT().GetCategory(gomock.Any(), testUserID, int64(5)).Return(models.Category{}, store.ErrCategoryNotFound)
			},
			want: models.MembershipNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r, _ := newTestMembershipSvc(t)
			tt.setup(r)

			got, err := svc.RemoveMembership(context.Background(), testUserID, 5, 6)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── listings ─────────────────────────────────────────────────────────────────

func TestMembershipService_ListCategoriesForContact(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)
	ctx := context.Background()
	want := []models.Category{{ID: 1, Name: "Family"}, {ID: 2, Name: "Work"}}

	r.contacts.EXPECT().GetContact(ctx, testUserID, int64(9)).Return(models.Contact{ID: 9}, nil)
	r.memberships.EXPECT().ListCategoriesForContact(ctx, testUserID, int64(9)).Return(want, nil)

	got, err := svc.ListCategoriesForContact(ctx, testUserID, 9)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMembershipService_ListCategoriesForContact_ContactNotFound(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(9)).Return(models.Contact{}, store.ErrContactNotFound)

	_, err := svc.ListCategoriesForContact(context.Background(), testUserID, 9)
	assert.ErrorIs(t, err, store.ErrContactNotFound)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(9)).Return(models.Contact{}, store.ErrContactNotFound)

	_, err = svc.ListCategoryIDsForContact(context.Background(), testUserID, 9)
	assert.ErrorIs(t, err, store.ErrContactNotFound)
}

func TestMembershipService_ListCategoryIDsForContact(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(9)).Return(models.Contact{ID: 9}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(9)).Return([]int64{2, 4}, nil)

	got, err := svc.ListCategoryIDsForContact(context.Background(), testUserID, 9)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, got)
}

func TestMembershipService_ListCategoriesForUser(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.categories.EXPECT().ListCategories(gomock.Any(), testUserID).Return([]models.Category{{ID: 3}}, nil)

	got, err := svc.ListCategoriesForUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	r.categories.EXPECT().ListCategories(gomock.Any(), testUserID).Return(nil, store.ErrExecutingQuery)

	_, err = svc.ListCategoriesForUser(context.Background(), testUserID)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── SyncContactCategories ────────────────────────────────────────────────────

func TestMembershipService_Sync_WritesOnlyTheDifference(t *testing.T) {
	svc, r, tx := newTestMembershipSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		r.contacts.EXPECT().GetContact(ctx, testUserID, int64(7)).Return(models.Contact{ID: 7}, nil),
		r.categories.EXPECT().ListOwnedCategoryIDs(ctx, testUserID, []int64{3, 4, 5}).Return([]int64{5, 3, 4}, nil),
		r.memberships.EXPECT().ListCategoryIDsForContact(ctx, testUserID, int64(7)).Return([]int64{1, 2, 3}, nil),
		r.memberships.EXPECT().AddMembership(ctx, testUserID, int64(4), int64(7)).Return(true, nil),
		r.memberships.EXPECT().AddMembership(ctx, testUserID, int64(5), int64(7)).Return(true, nil),
		r.memberships.EXPECT().RemoveMembership(ctx, testUserID, int64(1), int64(7)).Return(true, nil),
		r.memberships.EXPECT().RemoveMembership(ctx, testUserID, int64(2), int64(7)).Return(true, nil),
	)

	got, err := svc.SyncContactCategories(ctx, testUserID, 7, []int64{5, 3, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, got.Added)
	assert.Equal(t, []int64{1, 2}, got.Removed)
	assert.True(t, got.Changed())
	assert.Equal(t, 1, tx.calls)
}

func TestMembershipService_Sync_NoChange(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(7)).Return(models.Contact{ID: 7}, nil)
	r.categories.EXPECT().ListOwnedCategoryIDs(gomock.Any(), testUserID, []int64{1, 2}).Return([]int64{1, 2}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(7)).Return([]int64{2, 1}, nil)

	got, err := svc.SyncContactCategories(context.Background(), testUserID, 7, []int64{2, 1})
	require.NoError(t, err)
	assert.False(t, got.Changed())
	assert.Empty(t, got.Added)
	assert.Empty(t, got.Removed)
}

func TestMembershipService_Sync_EmptyDesiredClearsAll(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(7)).Return(models.Contact{ID: 7}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(7)).Return([]int64{8}, nil)
	r.memberships.EXPECT().RemoveMembership(gomock.Any(), testUserID, int64(8), int64(7)).Return(true, nil)

	got, err := svc.SyncContactCategories(context.Background(), testUserID, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{8}, got.Removed)
	assert.Empty(t, got.Added)
}

func TestMembershipService_Sync_UnownedCategoryFailsBeforeWriting(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(7)).Return(models.Contact{ID: 7}, nil)
	r.categories.EXPECT().ListOwnedCategoryIDs(gomock.Any(), testUserID, []int64{1, 9}).Return([]int64{1}, nil)

	_, err := svc.SyncContactCategories(context.Background(), testUserID, 7, []int64{9, 1})
	require.ErrorIs(t, err, store.ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "[9]")
}

func TestMembershipService_Sync_ContactNotFound(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(7)).Return(models.Contact{}, store.ErrContactNotFound)

	_, err := svc.SyncContactCategories(context.Background(), testUserID, 7, []int64{1})
	assert.ErrorIs(t, err, store.ErrContactNotFound)
}

func TestMembershipService_Sync_WriteFailurePropagates(t *testing.T) {
	svc, r, _ := newTestMembershipSvc(t)
	writeErr := errors.New("disk full")

	r.contacts.EXPECT().GetContact(gomock.Any(), testUserID, int64(7)).Return(models.Contact{ID: 7}, nil)
	r.categories.EXPECT().ListOwnedCategoryIDs(gomock.Any(), testUserID, []int64{1, 2}).Return([]int64{1, 2}, nil)
	r.memberships.EXPECT().ListCategoryIDsForContact(gomock.Any(), testUserID, int64(7)).Return(nil, nil)
	r.memberships.EXPECT().AddMembership(gomock.Any(), testUserID, int64(1), int64(7)).Return(true, nil)
	r.memberships.EXPECT().AddMembership(gomock.Any(), testUserID, int64(2), int64(7)).Return(false, writeErr)

	_, err := svc.SyncContactCategories(context.Background(), testUserID, 7, []int64{1, 2})
	assert.ErrorIs(t, err, writeErr)
}

func TestMembershipService_Sync_TransactionError(t *testing.T) {
	r := newTestRepos(t)
	ctrl := gomock.NewController(t)
	tx := mockTransactorReturning(ctrl, store.ErrBeginningTransaction)
	svc := NewMembershipService(r.repos, tx, logger.Nop())

	_, err := svc.SyncContactCategories(context.Background(), testUserID, 7, []int64{1})
	assert.ErrorIs(t, err, store.ErrBeginningTransaction)
}

// ── set helpers ──────────────────────────────────────────────────────────────

func TestUniqueSortedAndDifference(t *testing.T) {
	assert.Equal(t, []int64{}, uniqueSorted(nil))
	assert.Equal(t, []int64{1, 2, 3}, uniqueSorted([]int64{3, 1, 2, 3, 1}))

	input := []int64{2, 1}
	_ = uniqueSorted(input)
	assert.Equal(t, []int64{2, 1}, input, "input must not be reordered")

	assert.Equal(t, []int64{1, 4}, difference([]int64{1, 2, 3, 4}, []int64{2, 3, 5}))
	assert.Nil(t, difference([]int64{2}, []int64{1, 2, 3}))
	assert.Equal(t, []int64{1, 2}, difference([]int64{1, 2}, nil))
}
