package dto

import "time"

// RegisterOwnerRequest alta de una tienda: crea la cuenta dueña y su credencial.
type RegisterOwnerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ShopName string `json:"shop_name"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse vista pública de una cuenta (nunca incluye hashes).
type AccountResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ShopName     string    `json:"shop_name"`
	AdvisoryNote string    `json:"advisory_note,omitempty"`
	Provisioned  bool      `json:"provisioned"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginResponse token + cuenta autenticada.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
