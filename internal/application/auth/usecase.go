package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/rbac"
	"github.com/devstock/ledger-api/internal/domain/repository"
	"github.com/devstock/ledger-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase resuelve identidades: registro de dueño, login y
// materialización tardía de cuentas pre-aprovisionadas.
type AuthUseCase struct {
	identityRepo repository.IdentityRepository
	accountRepo  repository.AccountRepository
	txRunner     TxRunner
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identityRepo repository.IdentityRepository, accountRepo repository.AccountRepository, txRunner TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{identityRepo: identityRepo, accountRepo: accountRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// NormalizeLoginKey normaliza el email de login: trim + minúsculas.
// Toda comparación de credenciales pasa por aquí.
func NormalizeLoginKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterOwner crea la cuenta dueña de una tienda nueva junto con su
// credencial. El TenantID del dueño es su propio ID: la tienda se identifica
// por la cuenta que la fundó.
func (uc *AuthUseCase) RegisterOwner(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.AccountResponse, error) {
	email := NormalizeLoginKey(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	shopName := strings.TrimSpace(in.ShopName)
	if shopName == "" {
		shopName = "Ma Boutique"
	}
	id := uuid.New().String()
	account := &entity.Account{
		ID:          id,
		TenantID:    id,
		Email:       email,
		Role:        string(rbac.RoleOwner),
		ShopName:    shopName,
		Provisioned: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	identity := &entity.Identity{
		LoginKey:     email,
		AccountID:    id,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	err = uc.txRunner.RunIdentity(ctx, func(accounts repository.AccountRepository, identities repository.IdentityRepository) error {
		if err := accounts.Create(ctx, account); err != nil {
			return err
		}
		return identities.Create(ctx, identity)
	})
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Login autentica en dos pasos. Primero contra la credencial verificable
// (Identity); si no existe, busca una cuenta pre-aprovisionada por el dueño
// y, si la credencial coincide, materializa la Identity en ese momento.
// Cualquier fallo en cualquiera de los dos caminos responde lo mismo:
// ErrInvalidCredentials, sin revelar si la cuenta existe.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	key := NormalizeLoginKey(in.Email)
	if key == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := uc.identityRepo.GetByLoginKey(ctx, key)
	if err != nil {
		return nil, err
	}

	var account *entity.Account
	if identity != nil {
		if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(in.Password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		account, err = uc.accountRepo.GetByID(ctx, identity.AccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			// Credencial huérfana: la cuenta fue eliminada por el dueño.
			return nil, domain.ErrInvalidCredentials
		}
	} else {
		account, err = uc.provisionFirstLogin(ctx, key, in.Password)
		if err != nil {
			return nil, err
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.TenantID, account.Role, account.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Account: *toAccountResponse(account)}, nil
}

// provisionFirstLogin materializa la credencial de un empleado creado por el
// dueño en el directorio del tenant. La ausencia de Identity es una rama
// normal del flujo, no una excepción.
func (uc *AuthUseCase) provisionFirstLogin(ctx context.Context, key, password string) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, key)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Provisioned || account.ProvisionalHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.ProvisionalHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	identity := &entity.Identity{
		LoginKey:     key,
		AccountID:    account.ID,
		PasswordHash: account.ProvisionalHash,
		CreatedAt:    time.Now(),
	}
	err = uc.txRunner.RunIdentity(ctx, func(accounts repository.AccountRepository, identities repository.IdentityRepository) error {
		if err := identities.Create(ctx, identity); err != nil {
			return err
		}
		return accounts.MarkProvisioned(ctx, account.ID)
	})
	if err != nil {
		return nil, err
	}
	account.Provisioned = true
	account.ProvisionalHash = ""
	return account, nil
}

// ResolveRole proyección de solo lectura usada por la capa de autorización.
func ResolveRole(a *entity.Account) (rbac.Role, bool) {
	return rbac.ParseRole(a.Role)
}

// ResolveTenant proyección de solo lectura del tenant de la cuenta.
func ResolveTenant(a *entity.Account) string {
	return a.TenantID
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:           a.ID,
		TenantID:     a.TenantID,
		Email:        a.Email,
		Role:         a.Role,
		ShopName:     a.ShopName,
		AdvisoryNote: a.AdvisoryNote,
		Provisioned:  a.Provisioned,
		CreatedAt:    a.CreatedAt,
	}
}
