package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// DefaultTimeout bounds a grant round-trip. A request that exceeds it is
// treated as a failure for rollback purposes even though it may still land
// server-side; the next authoritative fetch settles any divergence.
const DefaultTimeout = 10 * time.Second

// Client calls a remote reward authority over HTTP. It satisfies the
// activity service's RewardAuthority dependency.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates an authority client for the given base URL,
// authenticating with the bearer token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// GrantReward posts the grant claim and decodes the authoritative result.
// Timeouts map to ErrAuthorityTimeout, 401 to ErrSessionInvalid and 403 to
// ErrNotOwner so callers can branch on sentinel errors.
func (c *Client) GrantReward(ctx context.Context, grant domain.RewardGrant) (*domain.RewardResult, error) {
	body, err := json.Marshal(grant)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grant: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/rewards/grant", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build grant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", domain.ErrAuthorityTimeout, err)
		}
		return nil, fmt.Errorf("authority unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionInvalid, apiErr.Error)
		case http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", domain.ErrNotOwner, apiErr.Error)
		default:
			return nil, fmt.Errorf("authority rejected grant (status %d): %s", resp.StatusCode, apiErr.Error)
		}
	}

	var result domain.RewardResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode grant response: %w", err)
	}
	return &result, nil
}
