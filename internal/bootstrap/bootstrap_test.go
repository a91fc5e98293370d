package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/config"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newTestRouter(t *testing.T) *apiClient {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	cfg.Database.Driver = config.DriverMemory
	cfg.State.Driver = config.DriverMemory
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "uniportal.test"
	cfg.Admin.Email = "admin@univ.dz"
	cfg.Admin.Password = "admin12345"
	cfg.Admin.DisplayName = "Admin"

	deps, err := BuildDependencies(cfg, nil, kvstore.NewMemoryStore(nil), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })
	return &apiClient{t: t, router: SetupRouter(cfg, deps, zerolog.Nop())}
}

func (a *apiClient) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// data decodes the success envelope's data field into dst
func (a *apiClient) data(w *httptest.ResponseRecorder, dst interface{}) {
	a.t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(a.t, env.Success, w.Body.String())
	require.NoError(a.t, json.Unmarshal(env.Data, dst))
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token struct {
			AccessToken string `json:"accessToken"`
		} `json:"token"`
	}
	a.data(w, &resp)
	return resp.Token.AccessToken
}

func TestPingAndHealth(t *testing.T) {
	api := newTestRouter(t)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/health", "", nil).Code)
}

func TestCourseFlow(t *testing.T) {
	api := newTestRouter(t)
	admin := api.login("admin@univ.dz", "admin12345")

	w := api.do(http.MethodPost, "/api/v1/admin/courses", admin, gin.H{
		"code":         "inf101",
		"name":         "Algorithmique",
		"professor":    "Dr. Benali",
		"level":        "L1",
		"semester":     1,
		"academicYear": "2023-2024",
		"credits":      6,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var course struct {
		ID   int64  `json:"id"`
		Code string `json:"code"`
	}
	api.data(w, &course)
	assert.Equal(t, "INF101", course.Code)

	w = api.do(http.MethodPost, "/api/v1/admin/chapters", admin, gin.H{
		"courseId":     course.ID,
		"title":        "Introduction",
		"documentLink": "https://drive.google.com/file/d/abc/view",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var chapter struct {
		ID int64 `json:"id"`
	}
	api.data(w, &chapter)

	w = api.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":       "etudiant@univ.dz",
		"password":    "motdepasse1",
		"displayName": "Etudiant",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	student := api.login("etudiant@univ.dz", "motdepasse1")

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/admin/courses", student, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/courses", "", nil).Code)

	w = api.do(http.MethodGet, "/api/v1/courses?search=algo", student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list struct {
		Courses []struct {
			ID int64 `json:"id"`
		} `json:"courses"`
	}
	api.data(w, &list)
	require.Len(t, list.Courses, 1)
	assert.Equal(t, course.ID, list.Courses[0].ID)

	for query, want := range map[string]int{"level=l1": 1, "level=L1": 1, "level=l2": 0} {
		w = api.do(http.MethodGet, "/api/v1/courses?"+query, student, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var byLevel struct {
			Courses []struct {
				ID int64 `json:"id"`
			} `json:"courses"`
		}
		api.data(w, &byLevel)
		assert.Len(t, byLevel.Courses, want, query)
	}

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/progress/%d/viewed", course.ID), student, gin.H{"kind": "chapter", "itemId": chapter.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var progress struct {
		Percentage int `json:"percentage"`
	}
	api.data(w, &progress)
	assert.Equal(t, 100, progress.Percentage)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/progress/%d/viewed", course.ID), student, gin.H{"kind": "td", "itemId": chapter.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/v1/admin/courses/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "courses-")
	assert.Contains(t, w.Body.String(), "INF101")

	w = api.do(http.MethodPost, "/api/v1/admin/courses", admin, gin.H{
		"code": "INF101", "name": "Doublon", "level": "L1", "semester": 1, "academicYear": "2023-2024",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouterRejectsBadIDs(t *testing.T) {
	api := newTestRouter(t)
	admin := api.login("admin@univ.dz", "admin12345")

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/courses/abc", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/admin/chapters", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/v1/courses/999", admin, nil).Code)
}
