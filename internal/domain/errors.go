package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrInvalidCredentials cubre tanto "usuario desconocido" como "contraseña
// incorrecta": nunca se distingue hacia afuera para no filtrar existencia de cuentas.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
