package auth

import (
	"context"

	"github.com/devstock/ledger-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos de identidad
// atados a ella: el alta de cuenta y de credencial se confirman juntas o ninguna.
type TxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		accounts repository.AccountRepository,
		identities repository.IdentityRepository,
	) error) error
}
