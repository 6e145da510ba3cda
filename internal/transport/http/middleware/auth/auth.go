package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/webshop-labs/order/internal/service/identity"
	"github.com/webshop-labs/order/pkg/problem"
)

// Authenticator gates routes on a verified principal from the identity
// collaborator.
type Authenticator struct {
	verifier identity.Verifier
}

// New creates an Authenticator backed by the given verifier.
func New(verifier identity.Verifier) *Authenticator {
	return &Authenticator{verifier: verifier}
}

// Require rejects requests without a valid bearer token of the given role.
func (a *Authenticator) Require(role identity.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				problem.Write(w, problem.Problem{
					Type:     "https://webshop-labs.github.io/errors/missing-token",
					Title:    "Authorization required",
					Detail:   "The request carries no authentication token.",
					Status:   http.StatusUnauthorized,
					Instance: r.URL.Path,
				})

				return
			}

			principal, err := a.verifier.Verify(r.Context(), token)
			if err != nil {
				a.writeVerifyFailure(w, r, err)

				return
			}

			if principal.Role != role {
				problem.Write(w, problem.Problem{
					Type:     "https://webshop-labs.github.io/errors/insufficient-role",
					Title:    "Insufficient permissions",
					Detail:   "Your role does not permit this operation.",
					Status:   http.StatusForbidden,
					Instance: r.URL.Path,
					Extras: map[string]any{
						"required_role": string(role),
						"user_role":     string(principal.Role),
					},
				})

				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), principal)))
		})
	}
}

// Optional attaches a principal when the request carries a valid token and
// lets anonymous requests through. A token that is present but invalid is
// still rejected.
func (a *Authenticator) Optional() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)

				return
			}

			principal, err := a.verifier.Verify(r.Context(), token)
			if err != nil {
				a.writeVerifyFailure(w, r, err)

				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), principal)))
		})
	}
}

func (a *Authenticator) writeVerifyFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, identity.ErrTokenInvalid) {
		problem.Write(w, problem.Problem{
			Type:     "https://webshop-labs.github.io/errors/invalid-token",
			Title:    "Access denied",
			Detail:   "The token is invalid or has expired.",
			Status:   http.StatusForbidden,
			Instance: r.URL.Path,
		})

		return
	}

	problem.WriteError(w, r, err)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
