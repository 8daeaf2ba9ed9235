package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrisa/internal/domain"
	"vrisa/internal/session"
)

type memStore struct {
	sessions map[string]*session.Session
	deleted  []string
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*session.Session{}}
}

func (m *memStore) Save(_ context.Context, hash string, s *session.Session, _ time.Duration) error {
	m.sessions[hash] = s
	return nil
}

func (m *memStore) Get(_ context.Context, hash string) (*session.Session, error) {
	s, ok := m.sessions[hash]
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (m *memStore) Delete(_ context.Context, hash string) error {
	m.deleted = append(m.deleted, hash)
	delete(m.sessions, hash)
	return nil
}

const testPepper = "pep"

func newGuardedRouter(store session.Store, handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{SessionGuard(store, "vrisa_session", testPepper)}, extra...)
	chain = append(chain, handler)
	r.GET("/probe", chain...)
	return r
}

func seedSession(store *memStore, raw string, role domain.Role) *session.Session {
	s := &session.Session{ID: "s1", UserID: 7, Role: role, RoleStatus: domain.StatusApproved}
	store.sessions[session.HashToken(raw, testPepper)] = s
	return s
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSessionGuard_MissingTokenRedirectsToLanding(t *testing.T) {
	r := newGuardedRouter(newMemStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/", decodeBody(t, w)["redirect"])
}

func TestSessionGuard_ValidCookiePassesSessionToHandler(t *testing.T) {
	store := newMemStore()
	seedSession(store, "raw-token", domain.RoleCitizen)

	var gotUserID int64
	r := newGuardedRouter(store, func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		require.True(t, ok)
		gotUserID = sess.UserID
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "vrisa_session", Value: "raw-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gotUserID)
}

func TestSessionGuard_BearerHeaderAlsoAccepted(t *testing.T) {
	store := newMemStore()
	seedSession(store, "raw-token", domain.RoleCitizen)

	r := newGuardedRouter(store, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer raw-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGuard_ForceLogoutDestroysSession(t *testing.T) {
	store := newMemStore()
	seedSession(store, "raw-token", domain.RoleCitizen)
	hash := session.HashToken("raw-token", testPepper)

	r := newGuardedRouter(store, func(c *gin.Context) {
		c.Set(ForceLogout, true)
		c.Status(http.StatusUnauthorized)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "vrisa_session", Value: "raw-token"})
	r.ServeHTTP(w, req)

	assert.Contains(t, store.deleted, hash)
	_, err := store.Get(context.Background(), hash)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRequireRole_DeniesWithSafeDefaultRedirect(t *testing.T) {
	store := newMemStore()
	seedSession(store, "raw-token", domain.RoleCitizen)

	r := newGuardedRouter(store, func(c *gin.Context) { c.Status(http.StatusOK) }, AdminOnly())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "vrisa_session", Value: "raw-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/home", decodeBody(t, w)["redirect"])
}

func TestRequireRole_AllowsListedRoles(t *testing.T) {
	store := newMemStore()
	seedSession(store, "raw-token", domain.RoleInstitutionHead)

	r := newGuardedRouter(store, func(c *gin.Context) { c.Status(http.StatusOK) }, ApproverOnly())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "vrisa_session", Value: "raw-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInstitutionScoped_FallbackInference(t *testing.T) {
	store := newMemStore()
	instID := int64(4)
	hash := session.HashToken("raw-token", testPepper)
	store.sessions[hash] = &session.Session{UserID: 1, Role: domain.RoleCitizen, InstitutionID: &instID}

	r := newGuardedRouter(store, func(c *gin.Context) { c.Status(http.StatusOK) }, InstitutionScoped())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "vrisa_session", Value: "raw-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
