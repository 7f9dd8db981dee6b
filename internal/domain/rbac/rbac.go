// Package rbac define los roles del sistema y su tabla de capacidades.
// Es la única fuente de verdad de autorización: ninguna otra capa debe
// comparar strings de rol para decidir permisos.
package rbac

// Role es el conjunto cerrado de roles. Cualquier otro valor se rechaza.
type Role string

const (
	RoleOwner     Role = "owner"     // dueño de la tienda: control total
	RoleAssistant Role = "assistant" // gestiona inventario y salda deudas
	RoleClerk     Role = "clerk"     // solo registra ventas
)

// Action identifica una capacidad autorizable.
type Action string

const (
	ActionViewDashboard  Action = "view_dashboard"
	ActionManageProducts Action = "manage_products"
	ActionRecordSale     Action = "record_sale"
	ActionSettleDebt     Action = "settle_debt"
	ActionManageTeam     Action = "manage_team"
	ActionViewInventory  Action = "view_inventory"
)

// capabilities es la tabla de permisos por rol. Los roles no son un
// superconjunto uno de otro: cada capacidad se enumera explícitamente
// (el dueño no registra ventas; el vendedor no toca el inventario).
var capabilities = map[Role]map[Action]bool{
	RoleOwner: {
		ActionViewDashboard:  true,
		ActionManageProducts: true,
		ActionSettleDebt:     true,
		ActionManageTeam:     true,
		ActionViewInventory:  true,
	},
	RoleAssistant: {
		ActionManageProducts: true,
		ActionSettleDebt:     true,
		ActionViewInventory:  true,
	},
	RoleClerk: {
		ActionRecordSale:    true,
		ActionViewInventory: true,
	},
}

// Authorize responde si un rol puede ejecutar una acción.
// Pares desconocidos (rol o acción fuera de la tabla) se niegan.
func Authorize(role Role, action Action) bool {
	perms, ok := capabilities[role]
	if !ok {
		return false
	}
	return perms[action]
}

// ParseRole valida un rol serializado (claims JWT, columna en DB).
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAssistant, RoleClerk:
		return Role(s), true
	}
	return "", false
}

// StaffRole indica si el rol es asignable a un empleado por el dueño
// (el rol owner solo se obtiene registrando una tienda).
func StaffRole(r Role) bool {
	return r == RoleAssistant || r == RoleClerk
}
