package supabase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionFromToken rebuilds a session from a persisted access token so a
// restart can restore the signed-in state. The signature is not verified
// here; the token only ever goes back to the issuing Supabase project, which
// verifies it on every request.
func SessionFromToken(token string) (Session, error) {
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Session{}, fmt.Errorf("invalid token format: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Session{}, fmt.Errorf("missing sub in token")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() >= int64(exp) {
			return Session{}, fmt.Errorf("token expired")
		}
	}

	email, _ := claims["email"].(string)

	return Session{
		UserID:      sub,
		Email:       email,
		AccessToken: token,
	}, nil
}
