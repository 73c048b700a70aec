package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lineage/internal/app"
	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/events"
	"github.com/thenoetrevino/lineage/internal/logging"
	"github.com/thenoetrevino/lineage/internal/testutil"
)

func setupServer(t *testing.T) (*Server, *app.App) {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "family-tree.html"), []byte("<h1>tree</h1>"), 0o644))

	cfg := config.Default()
	cfg.Server.StaticDir = staticDir
	cfg.DefaultUser = "guest"

	a := app.New(testutil.SetupTestRepo(t), app.WithLogger(logging.Discard()))
	t.Cleanup(func() { _ = a.Close() })

	return New(cfg, a, logging.Discard()), a
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, uid, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set(UserHeader, uid)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func TestStaticFiles(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	rec, _ := do(t, h, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "home")

	rec, _ = do(t, h, http.MethodGet, "/family-tree.html", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tree")

	rec, _ = do(t, h, http.MethodGet, "/missing.html", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCannedRoutes(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/auth/signin", `{"message":"Sign in endpoint","success":true}`},
		{http.MethodPost, "/api/auth/signup", `{"message":"Sign up endpoint","success":true}`},
		{http.MethodGet, "/api/dashboard", `{"data":"Dashboard data","success":true}`},
		{http.MethodPost, "/api/scanner", `{"message":"Scanner endpoint","success":true}`},
		{http.MethodGet, "/api/notifications", `{"notifications":[],"success":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, _ := do(t, h, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestTreeRoutes(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	rec, resp := do(t, h, http.MethodGet, "/api/tree", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	var tree struct {
		Tree struct {
			Name     string `json:"name"`
			Children []any  `json:"children"`
		} `json:"tree"`
		Orphans []string `json:"orphans"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tree))
	assert.Equal(t, "John Smith", tree.Tree.Name)
	assert.Len(t, tree.Tree.Children, 3)

	rec, resp = do(t, h, http.MethodGet, "/api/tree/stats", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, float64(6), stats["totalMembers"])
	assert.Equal(t, float64(3), stats["generations"])
}

func TestMemberRoutes(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	rec, resp := do(t, h, http.MethodPost, "/api/members", "alice",
		`{"name":" Eve Smith ","parent":"Bob Smith","birthDate":"2010-02-03"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var member map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &member))
	assert.Equal(t, "Eve Smith", member["name"])
	assert.Equal(t, "Child", member["relationship"])

	rec, _ = do(t, h, http.MethodGet, "/api/members/Eve%20Smith", "alice", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, h, http.MethodPut, "/api/members/Eve%20Smith", "alice",
		`{"name":"Eve Jones","parent":"Alice Johnson","relationship":"Child","notes":"moved"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, &member))
	assert.Equal(t, "Eve Jones", member["name"])
	assert.Equal(t, "Alice Johnson", member["parent"])

	rec, resp = do(t, h, http.MethodDelete, "/api/members/Alice%20Johnson", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":4}`, string(resp.Data))

	rec, resp = do(t, h, http.MethodGet, "/api/members", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var members []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &members))
	assert.Len(t, members, 3)

	// Other users keep their own tree.
	rec, resp = do(t, h, http.MethodGet, "/api/members", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &members))
	assert.Len(t, members, 6)
}

func TestMemberRoutes_Errors(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"duplicate", http.MethodPost, "/api/members", `{"name":"Bob Smith","parent":"John Smith"}`, http.StatusConflict, "MEMBER_EXISTS"},
		{"missing parent", http.MethodPost, "/api/members", `{"name":"Zed","parent":"Nobody"}`, http.StatusNotFound, "MEMBER_NOT_FOUND"},
		{"missing name", http.MethodPost, "/api/members", `{"parent":"John Smith"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"name too long", http.MethodPost, "/api/members", `{"name":"` + strings.Repeat("z", 101) + `","parent":"John Smith"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"bad json", http.MethodPost, "/api/members", `{"name":`, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown field", http.MethodPost, "/api/members", `{"name":"Zed","wings":2}`, http.StatusBadRequest, "BAD_REQUEST"},
		{"cycle", http.MethodPut, "/api/members/John%20Smith", `{"parent":"Diana Johnson","relationship":"Child"}`, http.StatusUnprocessableEntity, "CYCLE_DETECTED"},
		{"unknown member", http.MethodGet, "/api/members/Nobody", "", http.StatusNotFound, "MEMBER_NOT_FOUND"},
		{"delete unknown", http.MethodDelete, "/api/members/Nobody", "", http.StatusNotFound, "MEMBER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, tt.method, tt.path, "alice", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestCollapseExpandRoutes(t *testing.T) {
	s, a := setupServer(t)
	h := s.Handler()
	ctx := context.Background()

	rec, _ := do(t, h, http.MethodPost, "/api/tree/collapse", "alice", `{"name":"Bob Smith"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	svc, err := a.Tree(ctx, "alice")
	require.NoError(t, err)
	bob, err := svc.Member(ctx, "Bob Smith")
	require.NoError(t, err)
	assert.True(t, bob.Collapsed)

	rec, _ = do(t, h, http.MethodPost, "/api/tree/expand", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bob, err = svc.Member(ctx, "Bob Smith")
	require.NoError(t, err)
	assert.False(t, bob.Collapsed)

	rec, _ = do(t, h, http.MethodPost, "/api/tree/collapse", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, m := range svc.Members(ctx) {
		assert.Equal(t, m.Name != "John Smith", m.Collapsed, m.Name)
	}

	rec, _ = do(t, h, http.MethodPost, "/api/tree/collapse", "alice", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdentity_DefaultUser(t *testing.T) {
	s, a := setupServer(t)
	h := s.Handler()
	ctx := context.Background()

	rec, _ := do(t, h, http.MethodPost, "/api/members", "", `{"name":"Guest Child","parent":"John Smith"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	svc, err := a.Tree(ctx, "guest")
	require.NoError(t, err)
	_, err = svc.Member(ctx, "Guest Child")
	assert.NoError(t, err)
}

func TestSettingsRoutes(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	rec, resp := do(t, h, http.MethodGet, "/api/settings", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var settings map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &settings))
	assert.Equal(t, "light", settings["theme"])

	rec, resp = do(t, h, http.MethodPut, "/api/settings", "alice", `{"theme":"dark","seatPreference":"window"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, &settings))
	assert.Equal(t, "dark", settings["theme"])
	assert.Equal(t, "metric", settings["units"])

	rec, resp = do(t, h, http.MethodPut, "/api/settings", "alice", `{"theme":"neon"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/settings/export", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "easyfly-data-export.json")
	var export map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "1.0", export["version"])
	assert.Equal(t, "dark", export["settings"].(map[string]any)["theme"])
}

func TestProfileRoutes(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	rec, _ := do(t, h, http.MethodPut, "/api/profile", "alice", `{"firstName":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp := do(t, h, http.MethodGet, "/api/profile", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, "Alice", profile["firstName"])
	assert.Equal(t, "alice@example.com", profile["email"])

	rec, resp = do(t, h, http.MethodPut, "/api/profile", "alice", `{"username":"a!"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestCORS(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/tree", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", UserHeader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEventStream(t *testing.T) {
	s, _ := setupServer(t)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	header := http.Header{}
	header.Set(UserHeader, "alice")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var hello streamHello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "connected", hello.Type)
	assert.Equal(t, "alice", hello.UserID)

	// Another user's change must not reach alice.
	post := func(uid, body string) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/members", bytes.NewBufferString(body))
		require.NoError(t, err)
		req.Header.Set(UserHeader, uid)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = res.Body.Close()
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}
	post("bob", `{"name":"Bob Child","parent":"John Smith"}`)
	post("alice", `{"name":"Alice Child","parent":"John Smith"}`)

	var event events.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, events.EventTreeChanged, event.Type)
	assert.Equal(t, "alice", event.UserID)
	assert.Equal(t, "Alice Child", event.Member)

	assert.Equal(t, int32(1), s.Metrics().ConnectedClients.Load())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s, _ := setupServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + listener.Addr().String() + "/api/dashboard")
		if err != nil {
			return false
		}
		_ = res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.GreaterOrEqual(t, s.Metrics().GetSnapshot().RequestsTotal, int64(1))
}
