package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a bearer token and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Info("logging in", "username", username)

	if err := r.session.Login(ctx, username, password); err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return fmt.Errorf("%w: check username and password", shared.ErrInvalidCredentials)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	r.writePlain("✓ Logged in as %s (%s)\n", r.session.Username(), r.session.Role())
	return nil
}

// AuthRegister creates an account, then logs in with the same credentials.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Info("registering account", "username", username)

	if err := r.session.Register(ctx, username, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created, logged in as %s\n", r.session.Username())
	return nil
}

// AuthLogout discards the stored token. The in-memory token is cleared
// first so no later request in this process can reuse it.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.IsAuthenticated() {
		r.writePlain("Not logged in\n")
		return nil
	}

	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthStatus shows the session state derived from the stored token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	authenticated := r.session.IsAuthenticated()

	if cmd.Bool("json") {
		status := map[string]any{"authenticated": authenticated}
		if authenticated {
			status["username"] = r.session.Username()
			status["role"] = r.session.Role().String()
		}
		return r.writeJSON(status, true)
	}

	if !authenticated {
		r.writePlain("✗ Not logged in\n")
		return nil
	}

	r.writePlain("✓ Logged in\n")
	r.writePlain("User: %s\n", r.session.Username())
	r.writePlain("Role: %s\n", r.session.Role())
	return nil
}
