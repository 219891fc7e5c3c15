package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Magnate/middleware"
	"Magnate/routes"
	"Magnate/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBackend gives CreateGame/LoadGame real behavior so the registry can
// hand out durable-looking ids without a database.
type stubBackend struct {
	*ledger.LocalBackend
	created int
	games   map[string]ledger.GameState
}

func newStubBackend() *stubBackend {
	return &stubBackend{LocalBackend: ledger.NewLocalBackend(), games: make(map[string]ledger.GameState)}
}

func (b *stubBackend) CreateGame(s ledger.Settings) (string, error) {
	b.created++
	id := fmt.Sprintf("T%03d", b.created)
	b.games[id] = ledger.GameState{GameID: id, Status: ledger.StatusSetup, TurnCount: 1, Settings: s}
	return id, nil
}

func (b *stubBackend) LoadGame(gameID string) (*ledger.GameState, error) {
	state, ok := b.games[gameID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := ledger.NewRegistry(newStubBackend(), nil, zap.NewNop())

	r := gin.New()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, nil, registry, zap.NewNop())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func TestPing(t *testing.T) {
	r := setupTestRouter(t)
	w, parsed := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", parsed["message"])
}

func TestCreateAndJoinGame(t *testing.T) {
	r := setupTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodPost, "/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	gameID, _ := parsed["game_id"].(string)
	require.NotEmpty(t, gameID)

	w, parsed = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/join", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, gameID, parsed["game_id"])

	w, _ = doJSON(t, r, http.MethodPost, "/games/unknown/join", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionCookieRejoin(t *testing.T) {
	r := setupTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodPost, "/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	gameID := parsed["game_id"].(string)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w, parsed = doJSON(t, r, http.MethodGet, "/session", "", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, gameID, parsed["game_id"])

	// Without the cookie there is no session to resume.
	w, _ = doJSON(t, r, http.MethodGet, "/session", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaveGameClearsSession(t *testing.T) {
	r := setupTestRouter(t)

	w, parsed := doJSON(t, r, http.MethodPost, "/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	gameID := parsed["game_id"].(string)
	cookies := w.Result().Cookies()

	w, _ = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/leave", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// A browser replaces the cookie with the cleared one from the response.
	w, _ = doJSON(t, r, http.MethodGet, "/session", "", w.Result().Cookies())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRosterAndStart(t *testing.T) {
	r := setupTestRouter(t)

	_, parsed := doJSON(t, r, http.MethodPost, "/games", "", nil)
	gameID := parsed["game_id"].(string)

	// Starting with an empty roster is refused.
	w, _ := doJSON(t, r, http.MethodPost, "/games/"+gameID+"/start", `{"dice_mode":"PHYSICAL"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/players", `{"name":"Alice","color":"red"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/players", `{"name":"Bob","color":"blue"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Missing name is rejected.
	w, _ = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/players", `{"color":"green"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/start", `{"dice_mode":"PHYSICAL"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second start is refused.
	w, _ = doJSON(t, r, http.MethodPost, "/games/"+gameID+"/start", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var snapshot ledger.GameState
	req := httptest.NewRequest(http.MethodGet, "/games/"+gameID+"/snapshot", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, ledger.StatusActive, snapshot.Status)
	assert.Len(t, snapshot.Players, 2)
}
