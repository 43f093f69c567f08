package repository

import "context"

// Sessions resolves bearer credentials to user identities. Unknown or
// expired tokens return domain.ErrSessionInvalid.
type Sessions interface {
	UserIDForToken(ctx context.Context, token string) (string, error)
}
