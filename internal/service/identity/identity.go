package identity

import (
	"context"
	"errors"
)

// Role is the coarse authorization role attached to a verified subject.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// Principal is a verified (subject id, role) pair for a request.
type Principal struct {
	SubjectID int64
	Role      Role
}

// Verifier resolves a bearer token into a principal. Token format and
// credential storage are the collaborator's concern, not this service's.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// ErrTokenInvalid is returned by a Verifier for an unknown or expired token.
var ErrTokenInvalid = errors.New("token is invalid or expired")

type contextKey struct{}

// WithPrincipal stores a verified principal in the request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the verified principal, if the request carried one.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)

	return p, ok
}
