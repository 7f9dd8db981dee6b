package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo implementación del puerto IdentityRepository sobre PostgreSQL (usable con pool o tx).
type IdentityRepo struct {
	q Querier
}

// NewIdentityRepository construye el adaptador de credenciales. Pasar pool o tx (Querier).
func NewIdentityRepository(q Querier) *IdentityRepo {
	return &IdentityRepo{q: q}
}

// Create persiste una credencial nueva. El login_key es único global.
func (r *IdentityRepo) Create(ctx context.Context, identity *entity.Identity) error {
	query := `
		INSERT INTO identities (login_key, account_id, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query,
		identity.LoginKey, identity.AccountID, identity.PasswordHash, identity.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// GetByLoginKey obtiene la credencial por login key. (nil, nil) si no existe.
func (r *IdentityRepo) GetByLoginKey(ctx context.Context, loginKey string) (*entity.Identity, error) {
	query := `
		SELECT login_key, account_id, password_hash, created_at
		FROM identities WHERE login_key = $1`
	var i entity.Identity
	err := r.q.QueryRow(ctx, query, loginKey).Scan(
		&i.LoginKey, &i.AccountID, &i.PasswordHash, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return &i, nil
}

// DeleteByAccount elimina la credencial asociada a una cuenta (si existe).
func (r *IdentityRepo) DeleteByAccount(ctx context.Context, accountID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM identities WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}
