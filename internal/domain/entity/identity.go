package entity

import "time"

// Identity es la credencial verificable de login, separada de Account.
// Se crea en el registro del dueño o, para empleados pre-aprovisionados,
// de forma perezosa en su primer login exitoso (materialización tardía).
type Identity struct {
	LoginKey     string // email normalizado, clave primaria
	AccountID    string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}
