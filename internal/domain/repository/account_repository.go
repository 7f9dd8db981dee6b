package repository

import (
	"context"

	"github.com/devstock/ledger-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los Get devuelven (nil, nil) cuando no hay fila.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// GetByTenantAndID restringe la lectura al tenant del caller.
	GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Account, error)
	// ListStaff lista las cuentas del tenant excluyendo al dueño.
	ListStaff(ctx context.Context, tenantID string) ([]*entity.Account, error)
	// MarkProvisioned marca la cuenta como materializada y borra ProvisionalHash.
	MarkProvisioned(ctx context.Context, accountID string) error
	UpdateAdvisoryNote(ctx context.Context, accountID, note string) error
	Delete(ctx context.Context, id string) error
}
