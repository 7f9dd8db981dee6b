package dto

// AddMemberRequest alta de un empleado (assistant o clerk) por el dueño.
// La credencial queda pre-aprovisionada: el empleado la usa en su primer login.
type AddMemberRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // assistant | clerk
}

// SendNoteRequest nota del dueño a un empleado. Sobreescribe la anterior.
type SendNoteRequest struct {
	Text string `json:"text"`
}
