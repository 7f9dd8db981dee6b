package repository

import (
	"context"

	"github.com/devstock/ledger-api/internal/domain/entity"
)

// IdentityRepository define el puerto de persistencia para credenciales de login (DIP).
// GetByLoginKey devuelve (nil, nil) si no existe: la ausencia es una rama
// normal del resolver de identidad, no un error.
type IdentityRepository interface {
	Create(ctx context.Context, identity *entity.Identity) error
	GetByLoginKey(ctx context.Context, loginKey string) (*entity.Identity, error)
	DeleteByAccount(ctx context.Context, accountID string) error
}
