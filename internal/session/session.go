// Package session owns the bearer token for the current user.
//
// The [Store] is the single writer of the shared client's Authorization
// header: login and logout arm and disarm it under one lock, and the token
// file under the state dir is the only durable auth state, so a restart
// restores exactly the session that was persisted.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
)

// Role is the privilege level derived from the session token.
// It gates UI affordances only; authorization happens server-side.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// tokenFile is the name of the persisted token under the state dir.
const tokenFile = "token"

// Store holds the current session token and keeps the shared client's
// Authorization header in sync with it.
type Store struct {
	auth     *services.AuthAPI
	client   *services.Client
	stateDir string
	logger   *log.Logger

	token string
}

// NewStore creates a session store persisting to stateDir.
func NewStore(auth *services.AuthAPI, client *services.Client, stateDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		auth:     auth,
		client:   client,
		stateDir: stateDir,
		logger:   logger,
	}
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.stateDir, tokenFile)
}

// Restore reads a previously persisted token and arms the client header.
// A missing token file leaves the session unauthenticated. No network call;
// idempotent.
func (s *Store) Restore() error {
	data, err := os.ReadFile(s.tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil
	}

	s.token = token
	s.client.SetToken(token)
	s.logger.Debug("session restored", "role", s.Role().String())
	return nil
}

// Login exchanges credentials for a token, persists it, and arms the client
// header. Failure leaves the prior session state untouched.
func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}

	if err := s.persist(resp.AccessToken); err != nil {
		return err
	}

	s.token = resp.AccessToken
	s.client.SetToken(resp.AccessToken)
	s.logger.Info("logged in", "username", username, "role", s.Role().String())
	return nil
}

// Register creates an account and logs in with the same credentials.
// The registration response carries no token, so the follow-up login is
// the only way to establish the session.
func (s *Store) Register(ctx context.Context, username, password string) error {
	creds := models.Credentials{Username: username, Password: password}
	if err := s.auth.Register(ctx, creds); err != nil {
		return err
	}
	return s.Login(ctx, username, password)
}

// Logout disarms the client header and removes the persisted token.
// Always succeeds; a missing token file is not an error.
func (s *Store) Logout() error {
	// Disarm first so no request dispatched after this point carries the token.
	s.client.SetToken("")
	s.token = ""

	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.token != ""
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	return s.token
}

// Role returns the privilege level encoded in the token claims.
func (s *Store) Role() Role {
	return RoleOf(s.token)
}

// Username returns the subject claim of the token, best effort.
func (s *Store) Username() string {
	c, ok := decodeClaims(s.token)
	if !ok {
		return ""
	}
	return c.Subject
}

func (s *Store) persist(token string) error {
	if err := os.MkdirAll(s.stateDir, 0700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	if err := os.WriteFile(s.tokenPath(), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// claims is the backend's JWT payload: subject username plus a role string.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// decodeClaims parses token claims without verifying the signature.
// The client has no signing key and does not need one: the decoded role is
// a UI hint only, never a security boundary.
func decodeClaims(token string) (*claims, bool) {
	if token == "" {
		return nil, false
	}
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, false
	}
	return &c, true
}

// RoleOf derives the privilege level from a token. Any decode failure yields
// RoleUser; this function never fails.
func RoleOf(token string) Role {
	c, ok := decodeClaims(token)
	if !ok {
		return RoleUser
	}
	if c.Role == "admin" {
		return RoleAdmin
	}
	return RoleUser
}
