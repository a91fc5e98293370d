package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	jwtauth "github.com/yigit/uniportal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	router *gin.Engine
	jwt    *jwtauth.JWTService
	users  repositories.UserRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	jwt := jwtauth.NewJWTService(jwtauth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "uniportal.test",
	})
	users := repositories.NewMemoryUserRepository()
	m := NewAuthMiddleware(jwt, users, zerolog.Nop())

	router := gin.New()
	router.Use(m.JWTAuth(), m.SessionLoader())
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": auth.SessionFrom(c.Request.Context()).UserID()})
	}
	router.GET("/open", ok)
	router.GET("/member", RequireAuthenticated(), ok)
	router.GET("/admin", RequireAdmin(), ok)
	return &authFixture{router: router, jwt: jwt, users: users}
}

func (f *authFixture) user(t *testing.T, email string, role models.Role, active bool) string {
	t.Helper()
	id, err := f.users.Create(context.Background(), &models.User{Email: email, Role: role, IsActive: active})
	require.NoError(t, err)
	pair, err := f.jwt.GenerateTokenPair(id, email, string(role))
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *authFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error
}

func TestGuards(t *testing.T) {
	f := newAuthFixture(t)
	student := f.user(t, "etudiant@univ.dz", models.RoleStudent, true)
	admin := f.user(t, "admin@univ.dz", models.RoleAdmin, true)

	assert.Equal(t, http.StatusOK, f.get("/open", "").Code)

	w := f.get("/member", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Code)

	assert.Equal(t, http.StatusOK, f.get("/member", student).Code)

	w = f.get("/admin", student)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Code)

	w = f.get("/admin", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":2}`, w.Body.String())
}

func TestAdminRoleComesFromProfile(t *testing.T) {
	f := newAuthFixture(t)
	id, err := f.users.Create(context.Background(), &models.User{Email: "x@univ.dz", Role: models.RoleStudent, IsActive: true})
	require.NoError(t, err)
	// the token claims admin, the stored profile does not
	pair, err := f.jwt.GenerateTokenPair(id, "x@univ.dz", string(models.RoleAdmin))
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, f.get("/admin", pair.AccessToken).Code)
}

func TestInvalidTokens(t *testing.T) {
	f := newAuthFixture(t)

	w := f.get("/open", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Code)

	other := jwtauth.NewJWTService(jwtauth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "uniportal.test"})
	pair, err := other.GenerateTokenPair(1, "a@b.c", "student")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, f.get("/member", pair.AccessToken).Code)
}

func TestSessionRejectsDisabledAndDeletedAccounts(t *testing.T) {
	f := newAuthFixture(t)
	disabled := f.user(t, "off@univ.dz", models.RoleStudent, false)

	w := f.get("/member", disabled)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeAccountDisabled, decodeError(t, w).Code)

	pair, err := f.jwt.GenerateTokenPair(42, "ghost@univ.dz", "student")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, f.get("/member", pair.AccessToken).Code)
}

func serveError(err error) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{fmt.Errorf("loading: %w", apperrors.ErrCourseNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrCourseCodeExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrSelfModification, http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrSequenceUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeServiceUnavailable},
		{fmt.Errorf("%w: upstream 502", apperrors.ErrExternalService), http.StatusBadGateway, dto.ErrorCodeExternalServiceError},
		{fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tc := range cases {
		w := serveError(tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Equal(t, tc.code, decodeError(t, w).Code, tc.err.Error())
	}
}

func TestHandleAPIErrorCarriesField(t *testing.T) {
	w := serveError(apperrors.NewValidationError("code", "code must look like INF101"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "code", detail.Field)
	assert.Equal(t, "code must look like INF101", detail.Message)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/", func(c *gin.Context) { panic("exploded") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeInternalServer, detail.Code)
	assert.Equal(t, "exploded", detail.Details)
}

func TestBindJSON(t *testing.T) {
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req dto.LoginRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send(`{"email":"a@b.c","password":"x"}`).Code)

	w := send(`{"email":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "password", detail.Field)

	w = send(`{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w).Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
