package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-contact-keeper/internal/config"
	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/service"
	"github.com/MKhiriev/go-contact-keeper/models"
	"github.com/stretchr/testify/require"
)

// Every mock below implements one service interface with overridable
// function fields. Calling a method whose field is nil fails the test with a
// nil-function panic, which is what a test wants for an unexpected call.

type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.AppUser) (models.AppUser, error)
	loginFn        func(ctx context.Context, user models.AppUser) (models.AppUser, error)
	createTokenFn  func(ctx context.Context, user models.AppUser) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.AppUser) (models.AppUser, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.AppUser) (models.AppUser, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.AppUser) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockAppInfoService struct {
	version    string
	storageErr error
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) CheckStorage(_ context.Context) error {
	return m.storageErr
}

type mockContactService struct {
	createFn   func(ctx context.Context, contact models.Contact) (models.Contact, error)
	getFn      func(ctx context.Context, userID string, contactID int64) (models.Contact, error)
	listFn     func(ctx context.Context, userID string, categoryID int64) ([]models.Contact, error)
	updateFn   func(ctx context.Context, contact models.Contact) (models.Contact, error)
	deleteFn   func(ctx context.Context, userID string, contactID int64) error
	setImageFn func(ctx context.Context, userID string, contactID int64, image models.ContactImage) error
	getImageFn func(ctx context.Context, userID string, contactID int64) (models.ContactImage, error)
}

func (m *mockContactService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	return m.createFn(ctx, contact)
}

func (m *mockContactService) GetContact(ctx context.Context, userID string, contactID int64) (models.Contact, error) {
	return m.getFn(ctx, userID, contactID)
}

func (m *mockContactService) ListContacts(ctx context.Context, userID string, categoryID int64) ([]models.Contact, error) {
	return m.listFn(ctx, userID, categoryID)
}

func (m *mockContactService) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	return m.updateFn(ctx, contact)
}

func (m *mockContactService) DeleteContact(ctx context.Context, userID string, contactID int64) error {
	return m.deleteFn(ctx, userID, contactID)
}

func (m *mockContactService) SetContactImage(ctx context.Context, userID string, contactID int64, image models.ContactImage) error {
	return m.setImageFn(ctx, userID, contactID, image)
}

func (m *mockContactService) GetContactImage(ctx context.Context, userID string, contactID int64) (models.ContactImage, error) {
	return m.getImageFn(ctx, userID, contactID)
}

type mockCategoryService struct {
	createFn func(ctx context.Context, category models.Category) (models.Category, error)
	getFn    func(ctx context.Context, userID string, categoryID int64) (models.Category, error)
	listFn   func(ctx context.Context, userID string) ([]models.Category, error)
	updateFn func(ctx context.Context, category models.Category) (models.Category, error)
	deleteFn func(ctx context.Context, userID string, categoryID int64) error
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return m.createFn(ctx, category)
}

func (m *mockCategoryService) GetCategory(ctx context.Context, userID string, categoryID int64) (models.Category, error) {
	return m.getFn(ctx, userID, categoryID)
}

func (m *mockCategoryService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	return m.listFn(ctx, userID)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return m.updateFn(ctx, category)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, userID string, categoryID int64) error {
	return m.deleteFn(ctx, userID, categoryID)
}

type mockMembershipService struct {
	isMemberFn         func(ctx context.Context, userID string, categoryID, contactID int64) (bool, error)
	addFn              func(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error)
	removeFn           func(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error)
	categoriesForFn    func(ctx context.Context, userID string, contactID int64) ([]models.Category, error)
	categoryIDsForFn   func(ctx context.Context, userID string, contactID int64) ([]int64, error)
	categoriesOfUserFn func(ctx context.Context, userID string) ([]models.Category, error)
	syncFn             func(ctx context.Context, userID string, contactID int64, desired []int64) (models.SyncResult, error)
}

func (m *mockMembershipService) IsMember(ctx context.Context, userID string, categoryID, contactID int64) (bool, error) {
	return m.isMemberFn(ctx, userID, categoryID, contactID)
}

func (m *mockMembershipService) AddMembership(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error) {
	return m.addFn(ctx, userID, categoryID, contactID)
}

func (m *mockMembershipService) RemoveMembership(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error) {
	return m.removeFn(ctx, userID, categoryID, contactID)
}

func (m *mockMembershipService) ListCategoriesForContact(ctx context.Context, userID string, contactID int64) ([]models.Category, error) {
	return m.categoriesForFn(ctx, userID, contactID)
}

func (m *mockMembershipService) ListCategoryIDsForContact(ctx context.Context, userID string, contactID int64) ([]int64, error) {
	return m.categoryIDsForFn(ctx, userID, contactID)
}

func (m *mockMembershipService) ListCategoriesForUser(ctx context.Context, userID string) ([]models.Category, error) {
	return m.categoriesOfUserFn(ctx, userID)
}

func (m *mockMembershipService) SyncContactCategories(ctx context.Context, userID string, contactID int64, desired []int64) (models.SyncResult, error) {
	return m.syncFn(ctx, userID, contactID, desired)
}

type mockSearchService struct {
	searchFn func(ctx context.Context, query, userID string) ([]models.Contact, error)
}

func (m *mockSearchService) SearchContacts(ctx context.Context, query, userID string) ([]models.Contact, error) {
	return m.searchFn(ctx, query, userID)
}

type mockEmailService struct {
	emailContactFn  func(ctx context.Context, userID string, contactID int64, req models.EmailRequest) error
	emailCategoryFn func(ctx context.Context, userID string, categoryID int64, req models.EmailRequest) error
}

func (m *mockEmailService) EmailContact(ctx context.Context, userID string, contactID int64, req models.EmailRequest) error {
	return m.emailContactFn(ctx, userID, contactID, req)
}

func (m *mockEmailService) EmailCategory(ctx context.Context, userID string, categoryID int64, req models.EmailRequest) error {
	return m.emailCategoryFn(ctx, userID, categoryID, req)
}

// testUserID is the user every authenticated test request acts as.
const testUserID = "0190b6c4-5c1e-7cc4-9d36-2f5b0a1e8f11"

// authenticatedAs returns an AuthService mock accepting any bearer token as
// userID.
func authenticatedAs(userID string) *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: userID}, nil
		},
	}
}

// newRouter builds the full router over svcs. A nil AuthService is replaced
// with one authenticating every request as testUserID.
func newRouter(t *testing.T, svcs *service.Services, cfg *config.StructuredConfig) http.Handler {
	t.Helper()
	if svcs.AuthService == nil {
		svcs.AuthService = authenticatedAs(testUserID)
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	if cfg == nil {
		cfg = &config.StructuredConfig{}
	}

	h := NewHandler(svcs, cfg, logger.Nop())
	require.NotNil(t, h)
	return h.Init()
}

// serve sends an authenticated request through router.
func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
