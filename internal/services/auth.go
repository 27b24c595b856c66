package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/shared"
)

// AuthAPI wraps the backend's stateless authentication endpoints.
//
// It never touches the client's token; arming the header after a successful
// login is the session store's job.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates an AuthAPI on the shared client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges credentials for a bearer token.
// Rejected credentials surface as [shared.ErrInvalidCredentials].
func (a *AuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	var token models.TokenResponse
	if err := a.client.postJSON(ctx, "/login", creds, &token); err != nil {
		// The backend answers a wrong username or password with a client error.
		if errors.Is(err, shared.ErrInvalidInput) || errors.Is(err, shared.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
		}
		return nil, err
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty token in login response", shared.ErrAPIRequest)
	}

	return &token, nil
}

// Register creates an account. The response carries no token; callers are
// expected to follow up with Login.
// A taken username surfaces as [shared.ErrConflict].
func (a *AuthAPI) Register(ctx context.Context, creds models.Credentials) error {
	if err := creds.ValidateForRegister(); err != nil {
		return err
	}

	if err := a.client.postJSON(ctx, "/register", creds, nil); err != nil {
		// Local validation already covered malformed input, so a client
		// error here means the username is taken.
		if errors.Is(err, shared.ErrInvalidInput) || errors.Is(err, shared.ErrConflict) {
			return fmt.Errorf("%w: username %q is taken", shared.ErrConflict, creds.Username)
		}
		return err
	}

	return nil
}
