package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/hostelbuzz/config"
	"github.com/d60-Lab/hostelbuzz/internal/api/handler"
	"github.com/d60-Lab/hostelbuzz/internal/service"
	"github.com/d60-Lab/hostelbuzz/internal/session"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type postView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Votes    int    `json:"votes"`
	Comments []struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	} `json:"comments"`
}

type listView struct {
	Category string     `json:"category"`
	Total    int        `json:"total"`
	List     []postView `json:"list"`
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Tracing: config.TracingConfig{ServiceName: "hostelbuzz-test"},
	}
	sessions := session.NewManager("test-secret", time.Hour)
	h := handler.NewHandler(sessions, service.NewFeedService(), "token", time.Hour)
	r, err := Setup(cfg, h, false)
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "you@hostel.edu", "password": "x"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	return data.Token
}

func listPosts(t *testing.T, r *gin.Engine, token, category string) listView {
	t.Helper()
	w, env := do(t, r, http.MethodGet, "/api/v1/posts?category="+category, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var lv listView
	require.NoError(t, json.Unmarshal(env.Data, &lv))
	return lv
}

func TestFeedRequiresLogin(t *testing.T) {
	r := setupServer(t)
	w, _ := do(t, r, http.MethodGet, "/api/v1/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/posts", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCookieLogin(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"you"`)
}

func TestFeedFlow(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	all := listPosts(t, r, token, "All")
	require.Equal(t, 4, all.Total)
	assert.Equal(t, "post-1", all.List[0].ID)

	w, env := do(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{"content": "New cafe deal tonight", "category": "Cafe"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created postView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 1, created.Votes)
	assert.Equal(t, "Cafe", created.Category)

	all = listPosts(t, r, token, "All")
	require.Equal(t, 5, all.Total)
	assert.Equal(t, created.ID, all.List[0].ID)

	w, env = do(t, r, http.MethodPost, "/api/v1/posts/post-1/vote", token, gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var voted postView
	require.NoError(t, json.Unmarshal(env.Data, &voted))
	assert.Equal(t, 13, voted.Votes)

	mess := listPosts(t, r, token, "Mess")
	require.Equal(t, 1, mess.Total)
	assert.Equal(t, "post-2", mess.List[0].ID)
	assert.Equal(t, "Mess", mess.Category)

	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/post-2/comments", token, gin.H{"content": "Yum!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = do(t, r, http.MethodGet, "/api/v1/posts/post-2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p2 postView
	require.NoError(t, json.Unmarshal(env.Data, &p2))
	require.Len(t, p2.Comments, 1)
	assert.Equal(t, "Yum!", p2.Comments[0].Content)

	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/post-2/report", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreatePostDefaultsToGeneral(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)
	w, env := do(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{"content": "no category given here"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p postView
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "General", p.Category)
}

func TestValidationFailures(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"short post", http.MethodPost, "/api/v1/posts", gin.H{"content": "too short", "category": "Cafe"}},
		{"unknown category", http.MethodPost, "/api/v1/posts", gin.H{"content": "long enough content", "category": "Gym"}},
		{"bad direction", http.MethodPost, "/api/v1/posts/post-1/vote", gin.H{"direction": "sideways"}},
		{"blank comment", http.MethodPost, "/api/v1/posts/post-1/comments", gin.H{"content": "   "}},
		{"bad filter", http.MethodGet, "/api/v1/posts?category=Gym", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := do(t, r, tc.method, tc.path, token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestNotFound(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)
	before := listPosts(t, r, token, "All")

	w, _ := do(t, r, http.MethodPost, "/api/v1/posts/missing/vote", token, gin.H{"direction": "down"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/missing/comments", token, gin.H{"content": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, before, listPosts(t, r, token, "All"))
}

func TestLogout(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	w, _ := do(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/posts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	r := setupServer(t)
	w, env := do(t, r, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 5)
	assert.Equal(t, "All", items[0].Name)
	assert.Equal(t, "utensils", items[1].Icon)

	w, _ = do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
