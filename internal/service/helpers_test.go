package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-contact-keeper/internal/mock"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"go.uber.org/mock/gomock"
)

const testUserID = "0190f1c2-7a5e-7c3b-9f00-000000000001"

// testRepos bundles the repository mocks behind a *store.Repositories.
type testRepos struct {
	users       *mock.MockUserRepository
	contacts    *mock.MockContactRepository
	categories  *mock.MockCategoryRepository
	memberships *mock.MockMembershipRepository

	repos *store.Repositories
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()
	ctrl := gomock.NewController(t)

	r := &testRepos{
		users:       mock.NewMockUserRepository(ctrl),
		contacts:    mock.NewMockContactRepository(ctrl),
		categories:  mock.NewMockCategoryRepository(ctrl),
		memberships: mock.NewMockMembershipRepository(ctrl),
	}
	r.repos = &store.Repositories{
		Users:       r.users,
		Contacts:    r.contacts,
		Categories:  r.categories,
		Memberships: r.memberships,
	}
	return r
}

// fakeTransactor runs the unit of work directly against repos.
type fakeTransactor struct {
	repos *store.Repositories
	calls int
}

func (f *fakeTransactor) InTx(ctx context.Context, fn func(ctx context.Context, repos *store.Repositories) error) error {
	f.calls++
	return fn(ctx, f.repos)
}

// mockTransactorReturning fails every unit of work with err without running it.
func mockTransactorReturning(ctrl *gomock.Controller, err error) store.Transactor {
	tx := mock.NewMockTransactor(ctrl)
	tx.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(err).AnyTimes()
	return tx
}
