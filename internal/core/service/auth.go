package service

import (
	"context"
	"net/http"

	"github.com/yndnr/tankmate-go/internal/core/appctx"
	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/core/session"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

// BootstrapOutcome describes what Bootstrap did with the stored session.
type BootstrapOutcome string

const (
	BootstrapAnonymous BootstrapOutcome = "anonymous"  // no token, no user
	BootstrapValid     BootstrapOutcome = "valid"      // token and user present
	BootstrapRestored  BootstrapOutcome = "restored"   // user rebuilt from the token
	BootstrapExpired   BootstrapOutcome = "expired"    // token expired and was cleared
	BootstrapInvalid   BootstrapOutcome = "invalid"    // token carried no identity
	BootstrapLoggedOut BootstrapOutcome = "logged_out" // stale user without a token
)

// AuthService handles login, registration and the session lifecycle.
type AuthService struct {
	Base
	sessions *session.Store
	states   *appctx.Store
	state    *appctx.State
	log      logger.Logger
}

// NewAuthService creates an AuthService. state is mutated in place and
// persisted through states after every change.
func NewAuthService(api API, sessions *session.Store, states *appctx.Store, state *appctx.State, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		Base:     NewBase(api),
		sessions: sessions,
		states:   states,
		state:    state,
		log:      log,
	}
}

// State returns the application state the service operates on.
func (s *AuthService) State() *appctx.State {
	return s.state
}

// Login authenticates with email and password and starts a session.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	req, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	resp, err := send[domain.AuthResponse](ctx, s.Base, "Login failed", "login", http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, resp, domain.User{Email: req.Email})
}

// Register creates an account and starts a session.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	req, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	resp, err := send[domain.AuthResponse](ctx, s.Base, "Registration failed", "register", http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, resp, domain.User{Email: req.Email, Name: req.Name})
}

// start persists the tokens and records the user. Identity fields missing
// from the response are taken from the token, then from fallback.
func (s *AuthService) start(ctx context.Context, resp domain.AuthResponse, fallback domain.User) (*domain.User, error) {
	if err := s.sessions.SetTokens(ctx, resp.Token, resp.RefreshToken); err != nil {
		return nil, err
	}

	user := domain.User{ID: string(resp.UserID), Email: resp.Email, Name: resp.Name}
	if fromToken, ok := session.IdentityFromToken(resp.Token); ok {
		user.ID = firstNonEmpty(user.ID, fromToken.ID)
		user.Email = firstNonEmpty(user.Email, fromToken.Email)
		user.Name = firstNonEmpty(user.Name, fromToken.Name)
	}
	user.Email = firstNonEmpty(user.Email, fallback.Email)
	user.Name = firstNonEmpty(user.Name, fallback.Name)

	s.api.InvalidateAll()
	s.state.SetUser(&user)
	if err := s.states.Save(ctx, s.state); err != nil {
		return nil, err
	}
	s.log.Info("session started", "user_id", user.ID)
	return &user, nil
}

// Logout clears tokens, the user and cached queries.
func (s *AuthService) Logout(ctx context.Context) error {
	s.sessions.Clear(ctx)
	s.api.InvalidateAll()
	s.state.Logout()
	return s.states.Save(ctx, s.state)
}

// HandleUnauthorized reacts to a 401 from the API. It never fails.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	s.sessions.Clear(ctx)
	s.state.Logout()
	if err := s.states.Save(ctx, s.state); err != nil {
		s.log.Warn("persist state after unauthorized failed", "error", err)
	}
}

// Bootstrap reconciles the stored token with the stored user at startup.
func (s *AuthService) Bootstrap(ctx context.Context) (BootstrapOutcome, error) {
	token := s.sessions.Token(ctx)
	var outcome BootstrapOutcome

	switch {
	case token != "" && s.sessions.Checker().IsExpired(token):
		s.sessions.Clear(ctx)
		s.state.Logout()
		outcome = BootstrapExpired
	case token != "" && s.state.IsAuthenticated():
		return BootstrapValid, nil
	case token != "":
		user, ok := session.IdentityFromToken(token)
		if !ok || user.ID == "" {
			s.sessions.Clear(ctx)
			s.state.Logout()
			outcome = BootstrapInvalid
			break
		}
		s.state.SetUser(&user)
		outcome = BootstrapRestored
	case s.state.IsAuthenticated():
		s.state.Logout()
		outcome = BootstrapLoggedOut
	default:
		return BootstrapAnonymous, nil
	}

	s.log.Debug("session bootstrap", "outcome", string(outcome))
	if err := s.states.Save(ctx, s.state); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// RequireAuth fails with domain.ErrNotAuthenticated unless a user is known
// or an unexpired token is stored.
func (s *AuthService) RequireAuth(ctx context.Context) error {
	if s.state.IsAuthenticated() || s.sessions.HasValidAuth(ctx) {
		return nil
	}
	return domain.ErrNotAuthenticated
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
