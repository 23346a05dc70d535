package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/forgebreaker/internal/config"
	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/service"
	"github.com/phrazzld/forgebreaker/internal/service/auth"
	"github.com/phrazzld/forgebreaker/internal/store"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type mockUserService struct {
	user      *domain.User
	createErr error
	getErr    error
	updateErr error
}

func (m *mockUserService) GetUser(context.Context, uuid.UUID) (*domain.User, error) {
	return m.user, m.getErr
}

func (m *mockUserService) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return m.user, m.getErr
}

func (m *mockUserService) CreateUser(_ context.Context, email, password string) (*domain.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return domain.NewUser(email, password)
}

func (m *mockUserService) UpdateUserPassword(context.Context, uuid.UUID, string) error {
	return m.updateErr
}

func (m *mockUserService) DeleteUser(context.Context, uuid.UUID) error {
	return nil
}

var _ service.UserService = (*mockUserService)(nil)

func testJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   strings.Repeat("k", 32),
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)
	return svc
}

func authHandlerFixture(t *testing.T, users *mockUserService) *AuthHandler {
	t.Helper()
	return NewAuthHandler(users, testJWTService(t), auth.NewBcryptVerifier())
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	h := authHandlerFixture(t, &mockUserService{})

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/auth/register",
		`{"email": "player@example.com", "password": "correct-horse-battery"}`))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.ExpiresAt)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := authHandlerFixture(t, &mockUserService{})

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/auth/register",
		`{"email": "player@example.com", "password": "short"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := authHandlerFixture(t, &mockUserService{createErr: store.ErrEmailExists})

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/auth/register",
		`{"email": "player@example.com", "password": "correct-horse-battery"}`))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "player@example.com",
		HashedPassword: hashPassword(t, "password"),
	}
	h := authHandlerFixture(t, &mockUserService{user: user})

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login",
		`{"email": "player@example.com", "password": "password"}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.UserID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "player@example.com",
		HashedPassword: hashPassword(t, "password"),
	}
	h := authHandlerFixture(t, &mockUserService{user: user})

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login",
		`{"email": "player@example.com", "password": "wrong-password"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownUserAnswersLikeWrongPassword(t *testing.T) {
	h := authHandlerFixture(t, &mockUserService{getErr: store.ErrUserNotFound})

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/auth/login",
		`{"email": "ghost@example.com", "password": "password"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code,
		"a missing user must be indistinguishable from a bad password")
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	jwtService := testJWTService(t)
	h := NewAuthHandler(&mockUserService{}, jwtService, auth.NewBcryptVerifier())

	userID := uuid.New()
	refresh, err := jwtService.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.RefreshToken(rec, postJSON("/auth/refresh", `{"refresh_token": "`+refresh+`"}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.UserID)
}

func TestAuthHandler_RefreshToken_RejectsAccessToken(t *testing.T) {
	jwtService := testJWTService(t)
	h := NewAuthHandler(&mockUserService{}, jwtService, auth.NewBcryptVerifier())

	access, err := jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.RefreshToken(rec, postJSON("/auth/refresh", `{"refresh_token": "`+access+`"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code,
		"an access token cannot stand in for a refresh token")
}
