package supabase

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// Client wraps the Supabase SDK client. It is constructed once by the
// composition root and injected wherever remote access is needed; there is no
// package-level singleton.
type Client struct {
	sb  *supa.Client
	url string
	key string
}

// New builds a client from the project URL and the anon key.
func New(url, key string) (*Client, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url or key is missing")
	}
	sb, err := supa.NewClient(url, key, &supa.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Client{sb: sb, url: url, key: key}, nil
}

// WithToken returns a client whose requests carry the user's access token, so
// row-level security applies to every table operation.
func (c *Client) WithToken(token string) (*Client, error) {
	sb, err := supa.NewClient(c.url, c.key, &supa.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user-scoped client: %w", err)
	}
	return &Client{sb: sb, url: c.url, key: c.key}, nil
}
