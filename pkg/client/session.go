package client

import (
	"context"
	"sync"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

// Session tracks the signed-in user and their token. It is an explicit
// object rather than package-level state so two sessions can coexist.
type Session struct {
	api *Client

	mu    sync.Mutex
	token string
	user  *models.PublicUser
}

func NewSession(api *Client) *Session {
	return &Session{api: api}
}

// Restore verifies a previously stored token. On any failure the session
// stays signed out and the stale token is dropped.
func (s *Session) Restore(ctx context.Context, token string) error {
	s.api.SetToken(token)
	resp, err := s.api.VerifyToken(ctx)
	if err != nil {
		s.api.SetToken("")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &resp.User
	return nil
}

func (s *Session) SignUp(ctx context.Context, req models.SignupRequest) error {
	resp, err := s.api.Signup(ctx, req)
	if err != nil {
		return err
	}
	s.install(resp)
	return nil
}

func (s *Session) SignIn(ctx context.Context, req models.SigninRequest) error {
	resp, err := s.api.Signin(ctx, req)
	if err != nil {
		return err
	}
	s.install(resp)
	return nil
}

func (s *Session) install(resp models.AuthResponse) {
	s.api.SetToken(resp.Token)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
}

// SignOut discards the token locally. The server keeps honoring it until
// expiry; there is no revocation list.
func (s *Session) SignOut() {
	s.api.SetToken("")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) UpdatePassword(ctx context.Context, current, updated string) error {
	return s.api.UpdatePassword(ctx, models.UpdatePasswordRequest{
		CurrentPassword: current,
		NewPassword:     updated,
	})
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Token returns the current bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns the signed-in profile, nil when signed out.
func (s *Session) CurrentUser() *models.PublicUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}
