package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `
	id, tenant_id, email, role, shop_name, advisory_note,
	provisioned, provisional_hash, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.TenantID, &a.Email, &a.Role, &a.ShopName, &a.AdvisoryNote,
		&a.Provisioned, &a.ProvisionalHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una cuenta nueva. El email es único global (no por tenant).
func (r *AccountRepo) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (
			id, tenant_id, email, role, shop_name, advisory_note,
			provisioned, provisional_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		account.ID, account.TenantID, account.Email, account.Role,
		account.ShopName, account.AdvisoryNote,
		account.Provisioned, account.ProvisionalHash,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. (nil, nil) si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// GetByEmail obtiene una cuenta por email normalizado. (nil, nil) si no existe.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE email = $1`
	account, err := scanAccount(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return account, nil
}

// GetByTenantAndID obtiene una cuenta restringida al tenant del caller.
func (r *AccountRepo) GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND id = $2`
	account, err := scanAccount(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by tenant: %w", err)
	}
	return account, nil
}

// ListStaff lista las cuentas del tenant excluyendo al dueño (id == tenant_id).
func (r *AccountRepo) ListStaff(ctx context.Context, tenantID string) ([]*entity.Account, error) {
	query := `
		SELECT` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND id <> tenant_id
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// MarkProvisioned marca la cuenta como materializada y descarta el hash provisional.
func (r *AccountRepo) MarkProvisioned(ctx context.Context, accountID string) error {
	query := `
		UPDATE accounts
		SET provisioned = TRUE, provisional_hash = '', updated_at = $2
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, accountID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark provisioned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateAdvisoryNote sobreescribe la nota del dueño al empleado (vacía = sin nota).
func (r *AccountRepo) UpdateAdvisoryNote(ctx context.Context, accountID, note string) error {
	query := `UPDATE accounts SET advisory_note = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, accountID, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update advisory note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una cuenta por ID.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
