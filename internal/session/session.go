// Package session owns the MangaDex session and refresh tokens.
//
// The session token lives only in memory; the refresh token is persisted in
// the settings store so a later process can resume without a password.
package session

import (
	"context"
	"net/http"
	"sync"

	"mangadesk/internal/domain"
	"mangadesk/internal/sharedhttp"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	}
	return "unknown"
}

type tokenResponse struct {
	Result string `json:"result"`
	Token  struct {
		Session string `json:"session"`
		Refresh string `json:"refresh"`
	} `json:"token"`
	Message string `json:"message"`
}

type checkResponse struct {
	Result          string   `json:"result"`
	IsAuthenticated bool     `json:"isAuthenticated"`
	Roles           []string `json:"roles"`
	Permissions     []string `json:"permissions"`
}

type Manager struct {
	http  *sharedhttp.Client
	store domain.Store
	log   zerolog.Logger

	mu           sync.RWMutex
	state        State
	sessionToken string
}

func New(client *sharedhttp.Client, store domain.Store, log zerolog.Logger) *Manager {
	return &Manager{
		http:  client,
		store: store,
		log:   log,
		state: Unauthenticated,
	}
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// Token returns the current session token, empty when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionToken
}

// Authorize sets the bearer header on req when a session token is held and
// returns the token that was used.
func (m *Manager) Authorize(req *http.Request) string {
	token := m.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return token
}

// Start establishes the authenticated state at process startup. Without a
// persisted refresh token it makes no network call.
func (m *Manager) Start(ctx context.Context) error {
	if m.store.GetString(domain.KeyRefreshToken) == "" {
		m.setState(Unauthenticated, "")
		m.log.Debug().Msg("no stored refresh token, starting unauthenticated")
		return nil
	}

	return m.Refresh(ctx)
}

// Login exchanges credentials for a session. Rejected credentials are
// reported as domain.ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.setState(Authenticating, m.Token())

	req, err := m.http.NewRequest(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		m.setState(Unauthenticated, "")
		return err
	}

	var resp tokenResponse
	if err := m.http.DoJSON(ctx, req, &resp); err != nil {
		m.setState(Unauthenticated, "")

		status := domain.StatusOf(err)
		if status == http.StatusBadRequest || domain.IsAuthStatus(status) {
			return &domain.Error{
				Kind:    domain.KindInvalidCredentials,
				Status:  status,
				Details: domain.Report(err).Details,
				Err:     err,
			}
		}
		return err
	}

	if err := m.accept(resp); err != nil {
		return err
	}

	if err := m.store.Set(domain.KeyUsername, username); err != nil {
		m.log.Error().Err(err).Msg("could not persist username")
	}

	m.log.Info().Str("username", username).Msg("logged in")

	return nil
}

// Refresh exchanges the persisted refresh token for a new session.
//
// A 401/403 clears the local session and the persisted refresh token and
// returns domain.ErrAuthRequired. Any other failure leaves the refresh token
// in place and returns domain.ErrServersUnreachable so the caller can retry
// later without asking for a password.
func (m *Manager) Refresh(ctx context.Context) error {
	refreshToken := m.store.GetString(domain.KeyRefreshToken)
	if refreshToken == "" {
		m.setState(Unauthenticated, "")
		return &domain.Error{
			Kind:    domain.KindAuthRequired,
			Status:  domain.StatusNoResponse,
			Details: "no refresh token stored",
		}
	}

	m.setState(Refreshing, m.Token())

	req, err := m.http.NewRequest(ctx, http.MethodPost, "/auth/refresh", nil, map[string]string{
		"token": refreshToken,
	})
	if err != nil {
		m.setState(Unauthenticated, "")
		return err
	}

	var resp tokenResponse
	if err := m.http.DoJSON(ctx, req, &resp); err != nil {
		status := domain.StatusOf(err)

		if domain.IsAuthStatus(status) {
			m.clear()
			m.log.Warn().Int("status", status).Msg("refresh token rejected, login required")
			return &domain.Error{
				Kind:    domain.KindAuthRequired,
				Status:  status,
				Details: domain.Report(err).Details,
				Err:     err,
			}
		}

		m.setState(Unauthenticated, "")
		m.log.Error().Err(err).Msg("could not refresh session")
		return &domain.Error{
			Kind:    domain.KindServersUnreachable,
			Status:  status,
			Details: "Unable to contact authentication servers. Login required",
			Err:     err,
		}
	}

	if err := m.accept(resp); err != nil {
		return err
	}

	m.log.Debug().Msg("session refreshed")

	return nil
}

// Check asks the API whether the current session is accepted. A rejected or
// negative answer is reported as false, not as an error.
func (m *Manager) Check(ctx context.Context) (bool, error) {
	req, err := m.http.NewRequest(ctx, http.MethodGet, "/auth/check", nil, nil)
	if err != nil {
		return false, err
	}
	m.Authorize(req)

	var resp checkResponse
	if err := m.http.DoJSON(ctx, req, &resp); err != nil {
		if domain.IsAuthStatus(domain.StatusOf(err)) {
			return false, nil
		}
		return false, err
	}

	return resp.IsAuthenticated, nil
}

// Logout invalidates the session remotely on a best-effort basis. Local state
// is always cleared; a remote failure is returned for reporting only.
func (m *Manager) Logout(ctx context.Context) error {
	token := m.Token()
	defer m.clear()

	if token == "" {
		return nil
	}

	req, err := m.http.NewRequest(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	m.Authorize(req)

	if err := m.http.DoJSON(ctx, req, nil); err != nil {
		m.log.Warn().Err(err).Msg("remote logout failed, local session cleared anyway")
		return err
	}

	m.log.Info().Msg("logged out")

	return nil
}

func (m *Manager) accept(resp tokenResponse) error {
	if resp.Token.Session == "" {
		m.setState(Unauthenticated, "")
		return &domain.Error{
			Kind:    domain.KindAPI,
			Status:  http.StatusOK,
			Details: "response did not contain a session token",
		}
	}

	m.setState(Authenticated, resp.Token.Session)

	if resp.Token.Refresh != "" {
		if err := m.store.Set(domain.KeyRefreshToken, resp.Token.Refresh); err != nil {
			return errors.Wrap(err, "could not persist refresh token")
		}
	}

	return nil
}

func (m *Manager) clear() {
	m.setState(Unauthenticated, "")

	if err := m.store.Set(domain.KeyRefreshToken, ""); err != nil {
		m.log.Error().Err(err).Msg("could not clear stored refresh token")
	}
}

func (m *Manager) setState(state State, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = state
	m.sessionToken = token
}
