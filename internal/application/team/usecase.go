package team

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devstock/ledger-api/internal/application/auth"
	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/domain"
	"github.com/devstock/ledger-api/internal/domain/entity"
	"github.com/devstock/ledger-api/internal/domain/rbac"
	"github.com/devstock/ledger-api/internal/domain/repository"
)

// TeamUseCase administra la plantilla de una tienda: altas pre-aprovisionadas
// de asistentes y vendedores, bajas y la nota única del dueño por empleado.
type TeamUseCase struct {
	accountRepo  repository.AccountRepository
	identityRepo repository.IdentityRepository
}

// NewTeamUseCase construye el caso de uso de equipo.
func NewTeamUseCase(accountRepo repository.AccountRepository, identityRepo repository.IdentityRepository) *TeamUseCase {
	return &TeamUseCase{accountRepo: accountRepo, identityRepo: identityRepo}
}

// AddMember crea la cuenta de un empleado sin credencial verificable todavía:
// guarda el hash de la contraseña elegida por el dueño y la Identity se
// materializa en el primer login del empleado. El email es único en todo el
// sistema, no por tienda.
func (uc *TeamUseCase) AddMember(ctx context.Context, ownerTenantID string, in dto.AddMemberRequest) (*dto.AccountResponse, error) {
	role, ok := rbac.ParseRole(in.Role)
	if !ok || !rbac.StaffRole(role) {
		return nil, domain.ErrInvalidInput
	}
	email := auth.NormalizeLoginKey(in.Email)
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

	owner, err := uc.accountRepo.GetByID(ctx, ownerTenantID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:              uuid.New().String(),
		TenantID:        ownerTenantID,
		Email:           email,
		Role:            string(role),
		ShopName:        owner.ShopName,
		Provisioned:     false,
		ProvisionalHash: string(hash),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// RemoveMember elimina la cuenta de un empleado y su credencial si ya fue
// materializada. La cuenta dueña no se puede eliminar por esta vía.
func (uc *TeamUseCase) RemoveMember(ctx context.Context, ownerTenantID, accountID string) error {
	account, err := uc.accountRepo.GetByTenantAndID(ctx, ownerTenantID, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	if account.Role == string(rbac.RoleOwner) {
		return domain.ErrForbidden
	}
	if err := uc.identityRepo.DeleteByAccount(ctx, accountID); err != nil {
		return err
	}
	return uc.accountRepo.Delete(ctx, accountID)
}

// SendNote deja una nota al empleado. Sobreescribe la anterior: hay una sola
// nota vigente por cuenta, sin cola ni historial. Persiste hasta que el
// empleado la confirme con AcknowledgeNote.
func (uc *TeamUseCase) SendNote(ctx context.Context, ownerTenantID, accountID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByTenantAndID(ctx, ownerTenantID, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	if account.Role == string(rbac.RoleOwner) {
		return domain.ErrInvalidInput
	}
	return uc.accountRepo.UpdateAdvisoryNote(ctx, accountID, text)
}

// AcknowledgeNote limpia la nota de la propia cuenta del empleado.
func (uc *TeamUseCase) AcknowledgeNote(ctx context.Context, accountID string) error {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.accountRepo.UpdateAdvisoryNote(ctx, accountID, "")
}

// ListMembers lista la plantilla del tenant (sin la cuenta dueña).
func (uc *TeamUseCase) ListMembers(ctx context.Context, ownerTenantID string) ([]dto.AccountResponse, error) {
	staff, err := uc.accountRepo.ListStaff(ctx, ownerTenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(staff))
	for _, a := range staff {
		out = append(out, *toAccountResponse(a))
	}
	return out, nil
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
