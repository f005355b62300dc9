package primary

import "context"

// IdentityVerifier resolves a bearer token to a stable user identifier.
// Token issuance lives with the external identity provider; the core only
// verifies and extracts.
type IdentityVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}
