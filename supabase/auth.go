package supabase

import (
	"fmt"

	gotruetypes "github.com/supabase-community/gotrue-go/types"
)

// Session is the slice of the auth state the rest of the system cares about.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

func (s Session) Active() bool {
	return s.UserID != "" && s.AccessToken != ""
}

// SignIn authenticates with email/password and returns the session.
func (c *Client) SignIn(email, password string) (Session, error) {
	resp, err := c.sb.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return Session{}, fmt.Errorf("sign in failed: %w", err)
	}
	return Session{
		UserID:      resp.User.ID.String(),
		Email:       resp.User.Email,
		AccessToken: resp.AccessToken,
	}, nil
}

// SignUp registers a new account. Supabase sends a confirmation email; the
// user signs in once confirmed.
func (c *Client) SignUp(email, password string) error {
	_, err := c.sb.Auth.Signup(gotruetypes.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("sign up failed: %w", err)
	}
	return nil
}
