package entity

import "time"

// Account representa una cuenta del sistema dentro de una tienda (tenant).
// Para el dueño, TenantID == ID (la tienda se identifica por la cuenta que la creó).
// Para asistentes y vendedores, TenantID apunta a la cuenta del dueño.
// TenantID es inmutable una vez persistido.
type Account struct {
	ID           string
	TenantID     string
	Email        string // normalizado: trim + minúsculas; único global (no por tenant)
	Role         string // ver internal/domain/rbac
	ShopName     string
	AdvisoryNote string // nota única del dueño al empleado; se sobreescribe, sin historial

	// Cuentas pre-aprovisionadas por el dueño: el empleado aún no tiene
	// Identity. ProvisionalHash guarda el bcrypt de la credencial elegida
	// por el dueño y se consume en el primer login exitoso.
	Provisioned     bool
	ProvisionalHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
