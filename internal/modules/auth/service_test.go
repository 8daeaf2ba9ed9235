package auth

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrisa/internal/domain"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type mockUserAPI struct {
	loginResult *upstream.LoginResult
	loginErr    error
	user        *domain.User
	getErr      error
}

func (m *mockUserAPI) Login(ctx context.Context, email, password string) (*upstream.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockUserAPI) RegisterUser(ctx context.Context, p upstream.RegisterUserPayload) (*domain.User, error) {
	return &domain.User{Email: p.Email, Role: domain.NormalizeRole(p.Role), RoleStatus: domain.StatusPending}, nil
}

func (m *mockUserAPI) GetUser(ctx context.Context, token string, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserAPI) UpdateUser(ctx context.Context, token string, id int64, p upstream.UpdateUserPayload) (*domain.User, error) {
	return m.user, nil
}

type memStore struct {
	sessions map[string]*session.Session
}

func newMemStore() *memStore { return &memStore{sessions: map[string]*session.Session{}} }

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
	delete(m.sessions, hash)
	return nil
}

func signedToken(t *testing.T, role, status string, userID int64) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, &session.Claims{
		UserID:     userID,
		Email:      "u@vrisa.example",
		FirstName:  "Usuario",
		Role:       role,
		RoleStatus: status,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

func TestLogin_SuperAdminLandsOnAdmin(t *testing.T) {
	api := &mockUserAPI{loginResult: &upstream.LoginResult{
		AccessToken:  signedToken(t, "super_admin", "APPROVED", 1),
		RefreshToken: "refresh",
	}}
	store := newMemStore()
	svc := NewService(api, store, "pep", time.Hour)

	out, err := svc.Login(context.Background(), "Admin@VRISA.example", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/admin", out.Redirect)
	assert.Equal(t, domain.RoleSuperAdmin, out.Session.Role)
	assert.NotEmpty(t, out.SessionToken)
	assert.Len(t, store.sessions, 1)
}

func TestLogin_OtherRolesLandOnHome(t *testing.T) {
	for _, role := range []string{"citizen", "station_admin", "researcher", "institution_member", "institution_head"} {
		api := &mockUserAPI{loginResult: &upstream.LoginResult{
			AccessToken: signedToken(t, role, "APPROVED", 2),
		}}
		svc := NewService(api, newMemStore(), "pep", time.Hour)

		out, err := svc.Login(context.Background(), "user@vrisa.example", "pw")
		require.NoError(t, err)
		assert.Equal(t, "/home", out.Redirect, "role %s", role)
	}
}

func TestLogin_BadCredentialsLeaveStoreUntouched(t *testing.T) {
	api := &mockUserAPI{loginErr: upstreamUnauthorized(t)}
	store := newMemStore()
	svc := NewService(api, store, "pep", time.Hour)

	_, err := svc.Login(context.Background(), "u@x.y", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, store.sessions)
}

func TestLogin_FallsBackToUserObjectWhenTokenIsOpaque(t *testing.T) {
	instID := int64(12)
	api := &mockUserAPI{loginResult: &upstream.LoginResult{
		AccessToken: "opaque-token-no-jwt",
		User: domain.User{
			ID:            5,
			Email:         "head@inst.example",
			FirstName:     "Rosa",
			Role:          domain.RoleInstitutionHead,
			RoleStatus:    domain.StatusApproved,
			InstitutionID: &instID,
		},
	}}
	svc := NewService(api, newMemStore(), "pep", time.Hour)

	out, err := svc.Login(context.Background(), "head@inst.example", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Session.UserID)
	assert.Equal(t, domain.RoleInstitutionHead, out.Session.Role)
	require.NotNil(t, out.Session.InstitutionID)
	assert.Equal(t, instID, *out.Session.InstitutionID)
}

func TestMe_OverwritesSessionWithFresherStatus(t *testing.T) {
	api := &mockUserAPI{user: &domain.User{
		ID:         3,
		Email:      "sa@vrisa.example",
		FirstName:  "Luis",
		Role:       domain.RoleStationAdmin,
		RoleStatus: domain.StatusApproved,
	}}
	store := newMemStore()
	svc := NewService(api, store, "pep", time.Hour)

	sess := &session.Session{
		UserID:      3,
		Role:        domain.RoleStationAdmin,
		RoleStatus:  domain.StatusPending,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	user, view, err := svc.Me(context.Background(), sess, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, user.RoleStatus)
	assert.Equal(t, domain.StatusApproved, sess.RoleStatus)
	assert.False(t, view.BannerVisible)
	require.Contains(t, store.sessions, "hash-1")
	assert.Equal(t, domain.StatusApproved, store.sessions["hash-1"].RoleStatus)
}

func TestMe_PendingOrgRoleKeepsBanner(t *testing.T) {
	api := &mockUserAPI{user: &domain.User{
		ID:         4,
		Role:       domain.RoleResearcher,
		RoleStatus: domain.StatusPending,
	}}
	svc := NewService(api, newMemStore(), "pep", time.Hour)

	sess := &session.Session{UserID: 4, Role: domain.RoleResearcher, RoleStatus: domain.StatusPending, AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	_, view, err := svc.Me(context.Background(), sess, "h")
	require.NoError(t, err)
	assert.True(t, view.BannerVisible)
	assert.Equal(t, "/register/researcher", view.CompletionRoute)
}

func TestRegister_DefaultsToCitizen(t *testing.T) {
	svc := NewService(&mockUserAPI{}, newMemStore(), "pep", time.Hour)
	user, err := svc.Register(context.Background(), RegisterRequest{Email: "C@X.y", Password: "12345678", FirstName: "C"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, user.Role)
	assert.Equal(t, "c@x.y", user.Email)
}

// upstreamUnauthorized builds the error the client returns for a 401 on the
// login endpoint (not marked session-expired).
func upstreamUnauthorized(t *testing.T) error {
	t.Helper()
	return &upstream.APIError{Message: "Invalid credentials", Status: 401}
}
