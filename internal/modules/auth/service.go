package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"vrisa/internal/domain"
	"vrisa/internal/lifecycle"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

type userAPI interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	RegisterUser(ctx context.Context, p upstream.RegisterUserPayload) (*domain.User, error)
	GetUser(ctx context.Context, token string, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, token string, id int64, p upstream.UpdateUserPayload) (*domain.User, error)
}

// Service owns login/logout and the session refresh that happens whenever
// fresher user data arrives from the backend.
type Service struct {
	api      userAPI
	sessions session.Store
	pepper   string
	ttl      time.Duration
}

func NewService(api userAPI, sessions session.Store, pepper string, ttl time.Duration) *Service {
	return &Service{api: api, sessions: sessions, pepper: pepper, ttl: ttl}
}

type LoginOutcome struct {
	Session      *session.Session
	SessionToken string
	Redirect     string
}

// Login authenticates against the backend and, on success, mints the opaque
// session token. A 401 from the login endpoint is a credentials failure and
// never touches stored sessions.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginOutcome, error) {
	res, err := s.api.Login(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	sess := sessionFromLogin(res)
	sess.ID = uuid.NewString()
	sess.AccessToken = res.AccessToken
	sess.RefreshToken = res.RefreshToken
	sess.CreatedAt = time.Now()
	sess.ExpiresAt = sess.CreatedAt.Add(s.ttl)

	raw, hash, err := session.NewToken(s.pepper)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, hash, sess, s.ttl); err != nil {
		return nil, err
	}

	return &LoginOutcome{
		Session:      sess,
		SessionToken: raw,
		Redirect:     lifecycle.LandingRoute(sess.Role),
	}, nil
}

// sessionFromLogin prefers token claims; the user object in the login
// response fills any gap (older backend versions omit some claims).
func sessionFromLogin(res *upstream.LoginResult) *session.Session {
	var sess *session.Session
	if claims, err := session.DecodeClaims(res.AccessToken); err == nil && claims.UserID != 0 {
		sess = session.SessionFromClaims(claims)
	} else {
		sess = &session.Session{}
	}

	if sess.UserID == 0 {
		sess.UserID = res.User.ID
	}
	if sess.Email == "" {
		sess.Email = res.User.Email
	}
	if sess.FirstName == "" {
		sess.FirstName = res.User.FirstName
	}
	if res.User.Role != "" && (sess.Role == "" || sess.Role == domain.RoleCitizen) {
		sess.Role = domain.NormalizeRole(string(res.User.Role))
	}
	if sess.RoleStatus == "" {
		sess.RoleStatus = res.User.RoleStatus
	}
	if sess.InstitutionID == nil {
		sess.InstitutionID = res.User.InstitutionID
	}
	return sess
}

func (s *Service) Logout(ctx context.Context, tokenHash string) error {
	return s.sessions.Delete(ctx, tokenHash)
}

// Register relays self-registration. Organizational roles come back PENDING
// from the backend; the caller is told to log in, not handed a session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	role := req.Role
	if role == "" {
		role = string(domain.RoleCitizen)
	}
	return s.api.RegisterUser(ctx, upstream.RegisterUserPayload{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
}

// Me refetches the user and overwrites the stored session with the fresher
// role/status before deriving the view; status changes (an approval landing)
// become visible without a new login.
func (s *Service) Me(ctx context.Context, sess *session.Session, tokenHash string) (*domain.User, lifecycle.View, error) {
	user, err := s.api.GetUser(ctx, sess.AccessToken, sess.UserID)
	if err != nil {
		return nil, lifecycle.View{}, err
	}

	sess.Email = user.Email
	sess.FirstName = user.FirstName
	sess.Role = domain.NormalizeRole(string(user.Role))
	sess.RoleStatus = user.RoleStatus
	sess.InstitutionID = user.InstitutionID

	remaining := time.Until(sess.ExpiresAt)
	if remaining > 0 {
		if err := s.sessions.Save(ctx, tokenHash, sess, remaining); err != nil {
			return nil, lifecycle.View{}, err
		}
	}

	view := lifecycle.Derive(sess.Role, sess.RoleStatus, sess.InstitutionID)
	return user, view, nil
}

func (s *Service) UpdateProfile(ctx context.Context, sess *session.Session, req UpdateProfileRequest) (*domain.User, error) {
	return s.api.UpdateUser(ctx, sess.AccessToken, sess.UserID, upstream.UpdateUserPayload{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
}
