package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/internal/usecase"
	"github.com/sameer-776/seminar-app/pkg/middleware"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

const testSecret = "test-secret"

// callUserRepo implements repository.UserRepository for the command flow.
type callUserRepo struct {
	deleted     []string
	roleUpdates map[string]entity.UserRole
}

func (f *callUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, nil
}

func (f *callUserRepo) FindIDsByRole(ctx context.Context, role entity.UserRole) ([]string, error) {
	return nil, nil
}

func (f *callUserRepo) UpdateRole(ctx context.Context, id string, role entity.UserRole) error {
	if f.roleUpdates == nil {
		f.roleUpdates = map[string]entity.UserRole{}
	}
	f.roleUpdates[id] = role
	return nil
}

func (f *callUserRepo) AddFCMToken(ctx context.Context, id, token string) error {
	return nil
}

func (f *callUserRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type callAuthority struct {
	deletedAccounts []string
	claims          map[string]string
}

func (f *callAuthority) DeleteAccount(ctx context.Context, uid string) error {
	f.deletedAccounts = append(f.deletedAccounts, uid)
	return nil
}

func (f *callAuthority) SetRoleClaim(ctx context.Context, uid, role string) error {
	if f.claims == nil {
		f.claims = map[string]string{}
	}
	f.claims[uid] = role
	return nil
}

func setupCallsRouter(t *testing.T) (*callUserRepo, *callAuthority, http.Handler) {
	t.Helper()

	repo := &callUserRepo{}
	authority := &callAuthority{}
	service := usecase.NewAdminService(repo, authority, zap.NewNop())
	h := NewAdminHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/calls", func(r chi.Router) {
		r.Use(middleware.CallerContext(testSecret, zap.NewNop()))
		r.Post("/deleteUser", h.DeleteUser)
		r.Post("/changeUserRole", h.ChangeUserRole)
	})

	return repo, authority, r
}

func signToken(t *testing.T, uid, role string) string {
	t.Helper()

	claims := middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func postCall(t *testing.T, r http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFailure(t *testing.T, w *httptest.ResponseRecorder) utils.CallFailure {
	t.Helper()
	var failure utils.CallFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	return failure
}

func TestCalls_DeleteUser_Unauthenticated(t *testing.T) {
	repo, authority, r := setupCallsRouter(t)

	w := postCall(t, r, "/api/calls/deleteUser", "", map[string]string{"uid": "u2"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permission-denied", decodeFailure(t, w).Code)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, authority.deletedAccounts)
}

func TestCalls_DeleteUser_NonAdmin(t *testing.T) {
	_, _, r := setupCallsRouter(t)

	token := signToken(t, "u1", "Faculty")
	w := postCall(t, r, "/api/calls/deleteUser", token, map[string]string{"uid": "u2"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permission-denied", decodeFailure(t, w).Code)
}

func TestCalls_DeleteUser_PermissionBeforeValidation(t *testing.T) {
	_, _, r := setupCallsRouter(t)

	// Non-admin with an empty body must still see permission-denied,
	// not invalid-argument.
	token := signToken(t, "u1", "Faculty")
	w := postCall(t, r, "/api/calls/deleteUser", token, map[string]string{})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permission-denied", decodeFailure(t, w).Code)
}

func TestCalls_DeleteUser_MissingUID(t *testing.T) {
	_, _, r := setupCallsRouter(t)

	token := signToken(t, "admin-1", "admin")
	w := postCall(t, r, "/api/calls/deleteUser", token, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid-argument", decodeFailure(t, w).Code)
}

func TestCalls_DeleteUser_Success(t *testing.T) {
	repo, authority, r := setupCallsRouter(t)

	token := signToken(t, "admin-1", "admin")
	w := postCall(t, r, "/api/calls/deleteUser", token, map[string]string{"uid": "u2"})

	assert.Equal(t, http.StatusOK, w.Code)

	var result utils.CallResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Successfully deleted user u2", result.Result)

	assert.Equal(t, []string{"u2"}, authority.deletedAccounts)
	assert.Equal(t, []string{"u2"}, repo.deleted)
}

func TestCalls_ChangeUserRole_SelfChange(t *testing.T) {
	repo, authority, r := setupCallsRouter(t)

	token := signToken(t, "admin-1", "admin")
	w := postCall(t, r, "/api/calls/changeUserRole", token,
		map[string]string{"uid": "admin-1", "newRole": "Faculty"})

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, "failed-precondition", decodeFailure(t, w).Code)
	assert.Empty(t, authority.claims)
	assert.Empty(t, repo.roleUpdates)
}

func TestCalls_ChangeUserRole_InvalidRole(t *testing.T) {
	_, _, r := setupCallsRouter(t)

	token := signToken(t, "admin-1", "admin")
	w := postCall(t, r, "/api/calls/changeUserRole", token,
		map[string]string{"uid": "u2", "newRole": "superuser"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid-argument", decodeFailure(t, w).Code)
}

func TestCalls_ChangeUserRole_Success(t *testing.T) {
	repo, authority, r := setupCallsRouter(t)

	token := signToken(t, "admin-1", "admin")
	w := postCall(t, r, "/api/calls/changeUserRole", token,
		map[string]string{"uid": "u2", "newRole": "admin"})

	assert.Equal(t, http.StatusOK, w.Code)

	var result utils.CallResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Successfully changed role for user u2 to admin.", result.Result)

	assert.Equal(t, map[string]string{"u2": "admin"}, authority.claims)
	assert.Equal(t, map[string]entity.UserRole{"u2": entity.RoleAdmin}, repo.roleUpdates)
}

func TestCalls_ExpiredTokenIsAnonymous(t *testing.T) {
	_, _, r := setupCallsRouter(t)

	claims := middleware.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := postCall(t, r, "/api/calls/deleteUser", token, map[string]string{"uid": "u2"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permission-denied", decodeFailure(t, w).Code)
}
