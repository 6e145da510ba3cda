package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/webshop-labs/order/internal/dal/postgres"
	"github.com/webshop-labs/order/internal/service/identity"
)

// TokenRepository is the identity adapter: it resolves an opaque bearer
// token into a (subject id, role) pair via the access_tokens table. Token
// issuance and credential storage are outside this service.
type TokenRepository struct {
	client *postgres.Client
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(client *postgres.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// Verify implements identity.Verifier.
func (r *TokenRepository) Verify(ctx context.Context, token string) (identity.Principal, error) {
	query, args, err := sq.Select("u.user_id", "u.role").
		From("access_tokens t").
		Join("users u ON u.user_id = t.user_id").
		Where(sq.Eq{"t.token": token}).
		Where(sq.Expr("t.expires_at > now()")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return identity.Principal{}, fmt.Errorf("failed to build token lookup query: %w", err)
	}

	var (
		subjectID int64
		role      string
	)
	err = r.client.Pool().QueryRow(ctx, query, args...).Scan(&subjectID, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.Principal{}, identity.ErrTokenInvalid
	}
	if err != nil {
		return identity.Principal{}, fmt.Errorf("failed to look up token: %w", err)
	}

	return identity.Principal{
		SubjectID: subjectID,
		Role:      identity.Role(role),
	}, nil
}
