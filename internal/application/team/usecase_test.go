package team_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/application/team"
	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
)

// Fakes mínimos con el mismo contrato que los adaptadores de postgres.

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

const ownerID = "owner-1"

func buildTeamUseCase(t *testing.T) (*team.TeamUseCase, *fakeAccountRepo, *fakeIdentityRepo) {
	t.Helper()
	accounts := newFakeAccountRepo()
	identities := newFakeIdentityRepo()
	now := time.Now()
	require.NoError(t, accounts.Create(context.Background(), &entity.Account{
		ID:          ownerID,
		TenantID:    ownerID,
		Email:       "duena@tienda.test",
		Role:        "owner",
		ShopName:    "La Esquina",
		Provisioned: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
	return team.NewTeamUseCase(accounts, identities), accounts, identities
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y baja de empleados
// ──────────────────────────────────────────────────────────────────────────────

func TestAddMember_PreAprovisionado(t *testing.T) {
	uc, accounts, identities := buildTeamUseCase(t)
	ctx := context.Background()

	out, err := uc.AddMember(ctx, ownerID, dto.AddMemberRequest{
		Email:    " Clerk@Tienda.Test ",
		Password: "clave-clerk",
		Role:     "clerk",
	})
	require.NoError(t, err)

	assert.Equal(t, ownerID, out.TenantID, "el empleado hereda el tenant del dueño")
	assert.Equal(t, "clerk@tienda.test", out.Email)
	assert.Equal(t, "La Esquina", out.ShopName, "hereda el nombre de la tienda")
	assert.False(t, out.Provisioned, "sin credencial verificable hasta el primer login")

	// No hay Identity todavía; el hash provisional guarda la clave del dueño.
	identity, err := identities.GetByLoginKey(ctx, "clerk@tienda.test")
	require.NoError(t, err)
	assert.Nil(t, identity)
	stored, err := accounts.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.ProvisionalHash), []byte("clave-clerk")))
}

func TestAddMember_RolInvalido(t *testing.T) {
	uc, _, _ := buildTeamUseCase(t)
	ctx := context.Background()

	for _, role := range []string{"owner", "admin", ""} {
		_, err := uc.AddMember(ctx, ownerID, dto.AddMemberRequest{
			Email:    "x@tienda.test",
			Password: "clave1234",
			Role:     role,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol %q", role)
	}
}

// El email es único en todo el sistema, no por tienda.
func TestAddMember_EmailDuplicadoGlobal(t *testing.T) {
	uc, _, _ := buildTeamUseCase(t)
	ctx := context.Background()

	_, err := uc.AddMember(ctx, ownerID, dto.AddMemberRequest{
		Email:    "duena@tienda.test", // ya es el email de la dueña
		Password: "clave1234",
		Role:     "clerk",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRemoveMember_EliminaCuentaYCredencial(t *testing.T) {
	uc, accounts, identities := buildTeamUseCase(t)
	ctx := context.Background()

	member, err := uc.AddMember(ctx, ownerID, dto.AddMemberRequest{
		Email:    "clerk@tienda.test",
		Password: "clave1234",
		Role:     "clerk",
	})
	require.NoError(t, err)
	// Simular que el empleado ya materializó su credencial.
	require.NoError(t, identities.Create(ctx, &entity.Identity{
		LoginKey:  "clerk@tienda.test",
		AccountID: member.ID,
	}))

	require.NoError(t, uc.RemoveMember(ctx, ownerID, member.ID))

	gone, err := accounts.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	identity, err := identities.GetByLoginKey(ctx, "clerk@tienda.test")
	require.NoError(t, err)
	assert.Nil(t, identity, "la credencial se elimina junto con la cuenta")
}

func TestRemoveMember_NoPuedeEliminarAlDueno(t *testing.T) {
	uc, _, _ := buildTeamUseCase(t)
	err := uc.RemoveMember(context.Background(), ownerID, ownerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRemoveMember_DeOtroTenant(t *testing.T) {
	uc, _, _ := buildTeamUseCase(t)
	err := uc.RemoveMember(context.Background(), "otro-tenant", ownerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Nota del dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestSendNote_SobreescribeYPersisteHastaConfirmar(t *testing.T) {
	uc, accounts, _ := buildTeamUseCase(t)
	ctx := context.Background()

	member, err := uc.AddMember(ctx, ownerID, dto.AddMemberRequest{
		Email:    "clerk@tienda.test",
		Password: "clave1234",
		Role:     "clerk",
	})
	require.NoError(t, err)

	require.NoError(t, uc.SendNote(ctx, ownerID, member.ID, "llegar antes de las 8"))
	require.NoError(t, uc.SendNote(ctx, ownerID, member.ID, "cerrar caja al salir"))

	stored, err := accounts.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "cerrar caja al salir", stored.AdvisoryNote, "una sola nota vigente, sin historial")

	// El empleado confirma: la nota se limpia.
	require.NoError(t, uc.AcknowledgeNote(ctx, member.ID))
	stored, err = accounts.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.AdvisoryNote)
}

func TestSendNote_Validaciones(t *testing.T) {
	uc, _, _ := buildTeamUseCase(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.SendNote(ctx, ownerID, ownerID, "   "), domain.ErrInvalidInput, "nota vacía")
	assert.ErrorIs(t, uc.SendNote(ctx, ownerID, ownerID, "hola"), domain.ErrInvalidInput, "no hay notas para la cuenta dueña")
	assert.ErrorIs(t, uc.SendNote(ctx, ownerID, "no-existe", "hola"), domain.ErrNotFound)
}

func TestListMembers_ExcluyeAlDueno(t *testing.T) {
	uc, _, _ := buildTeamUseCase(t)
	ctx := context.Background()

	_, err := uc.AddMember(ctx, ownerID, dto.AddMemberRequest{Email: "a@tienda.test", Password: "clave1234", Role: "assistant"})
	require.NoError(t, err)
	_, err = uc.AddMember(ctx, ownerID, dto.AddMemberRequest{Email: "c@tienda.test", Password: "clave1234", Role: "clerk"})
	require.NoError(t, err)

	members, err := uc.ListMembers(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
	for _, m := range members {
		assert.NotEqual(t, "owner", m.Role)
	}
}
