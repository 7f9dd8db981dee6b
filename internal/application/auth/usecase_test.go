package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/devstock/ledger-api/internal/application/auth"
	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo contrato que los adaptadores de postgres:
// (nil, nil) cuando no hay fila, ErrDuplicate en claves repetidas)
// ──────────────────────────────────────────────────────────────────────────────

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	f.accounts[a.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByTenantAndID(_ context.Context, tenantID, id string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) ListStaff(_ context.Context, tenantID string) ([]*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Account
	for _, a := range f.accounts {
		if a.TenantID == tenantID && a.ID != tenantID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) MarkProvisioned(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Provisioned = true
	a.ProvisionalHash = ""
	a.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAccountRepo) UpdateAdvisoryNote(_ context.Context, accountID, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return domain.ErrNotFound
	}
	a.AdvisoryNote = note
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}

type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities map[string]*entity.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*entity.Identity)}
}

func (f *fakeIdentityRepo) Create(_ context.Context, i *entity.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.identities[i.LoginKey]; ok {
		return domain.ErrDuplicate
	}
	cp := *i
	f.identities[i.LoginKey] = &cp
	return nil
}

func (f *fakeIdentityRepo) GetByLoginKey(_ context.Context, loginKey string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.identities[loginKey]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeIdentityRepo) DeleteByAccount(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, i := range f.identities {
		if i.AccountID == accountID {
			delete(f.identities, key)
		}
	}
	return nil
}

// fakeTxRunner pasa los mismos fakes al callback: no hay transacción real,
// el test valida la lógica del usecase, no la atomicidad de la DB.
type fakeTxRunner struct {
	accounts   *fakeAccountRepo
	identities *fakeIdentityRepo
}

func (f *fakeTxRunner) RunIdentity(ctx context.Context, fn func(repository.AccountRepository, repository.IdentityRepository) error) error {
	return fn(f.accounts, f.identities)
}

func buildAuthUseCase() (*auth.AuthUseCase, *fakeAccountRepo, *fakeIdentityRepo) {
	accounts := newFakeAccountRepo()
	identities := newFakeIdentityRepo()
	uc := auth.NewAuthUseCase(identities, accounts, &fakeTxRunner{accounts: accounts, identities: identities}, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "devstock-ledger-test",
	})
	return uc, accounts, identities
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOwner_TenantEsSuPropioID(t *testing.T) {
	uc, _, identities := buildAuthUseCase()

	out, err := uc.RegisterOwner(context.Background(), dto.RegisterOwnerRequest{
		Email:    "  Duena@Tienda.Test ",
		Password: "secreto123",
		ShopName: "La Esquina",
	})
	require.NoError(t, err)

	assert.Equal(t, out.ID, out.TenantID, "el tenant del dueño es su propio ID")
	assert.Equal(t, "duena@tienda.test", out.Email, "el email se normaliza: trim + minúsculas")
	assert.Equal(t, "owner", out.Role)
	assert.Equal(t, "La Esquina", out.ShopName)

	identity, err := identities.GetByLoginKey(context.Background(), "duena@tienda.test")
	require.NoError(t, err)
	require.NotNil(t, identity, "el registro crea la credencial junto con la cuenta")
	assert.Equal(t, out.ID, identity.AccountID)
}

func TestRegisterOwner_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	ctx := context.Background()

	_, err := uc.RegisterOwner(ctx, dto.RegisterOwnerRequest{Email: "a@b.test", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterOwner(ctx, dto.RegisterOwnerRequest{Email: "A@B.TEST", Password: "otro4567"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el mismo email normalizado no puede registrarse dos veces")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login: credencial materializada y materialización tardía
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DuenaRegistrada(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	ctx := context.Background()

	_, err := uc.RegisterOwner(ctx, dto.RegisterOwnerRequest{Email: "duena@tienda.test", Password: "secreto123"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "DUENA@tienda.test", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "owner", out.Account.Role)
}

// El dueño pre-aprovisiona al empleado; la Identity no existe hasta que el
// empleado entra por primera vez con la credencial elegida por el dueño.
func TestLogin_MaterializacionTardia(t *testing.T) {
	uc, accounts, identities := buildAuthUseCase()
	ctx := context.Background()

	owner, err := uc.RegisterOwner(ctx, dto.RegisterOwnerRequest{Email: "duena@tienda.test", Password: "secreto123"})
	require.NoError(t, err)

	hash := mustHash(t, "clave-clerk")
	now := time.Now()
	require.NoError(t, accounts.Create(ctx, &entity.Account{
		ID:              "clerk-1",
		TenantID:        owner.TenantID,
		Email:           "clerk@tienda.test",
		Role:            "clerk",
		ShopName:        owner.ShopName,
		Provisioned:     false,
		ProvisionalHash: hash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))

	// Antes del primer login no hay credencial verificable.
	identity, err := identities.GetByLoginKey(ctx, "clerk@tienda.test")
	require.NoError(t, err)
	require.Nil(t, identity)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "clerk@tienda.test", Password: "clave-clerk"})
	require.NoError(t, err)
	assert.Equal(t, "clerk", out.Account.Role)
	assert.Equal(t, owner.TenantID, out.Account.TenantID)
	assert.True(t, out.Account.Provisioned)

	// La credencial quedó materializada y el hash provisional consumido.
	identity, err = identities.GetByLoginKey(ctx, "clerk@tienda.test")
	require.NoError(t, err)
	require.NotNil(t, identity)
	account, err := accounts.GetByID(ctx, "clerk-1")
	require.NoError(t, err)
	assert.True(t, account.Provisioned)
	assert.Empty(t, account.ProvisionalHash)

	// El segundo login entra por el camino normal (Identity).
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "clerk@tienda.test", Password: "clave-clerk"})
	assert.NoError(t, err)
}

// Todo fallo de autenticación responde lo mismo: no se puede distinguir un
// email inexistente de una contraseña equivocada.
func TestLogin_FallosIndistinguibles(t *testing.T) {
	uc, _, _ := buildAuthUseCase()
	ctx := context.Background()

	_, err := uc.RegisterOwner(ctx, dto.RegisterOwnerRequest{Email: "duena@tienda.test", Password: "secreto123"})
	require.NoError(t, err)

	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.test", Password: "loquesea"})
	_, errWrongPass := uc.Login(ctx, dto.LoginRequest{Email: "duena@tienda.test", Password: "equivocada"})
	_, errEmpty := uc.Login(ctx, dto.LoginRequest{})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errEmpty, domain.ErrInvalidCredentials)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}
