package dto

import "time"

// RegisterOperatorRequest alta de un operador (password en texto, se hashea en el caso de uso).
type RegisterOperatorRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	BranchCode string `json:"branch_code"`
	Role       string `json:"role"`
}

// OperatorResponse salida de un operador (sin password).
type OperatorResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	BranchCode string    `json:"branch_code"`
	Role       string    `json:"role"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token    string           `json:"token"`
	Operator OperatorResponse `json:"operator"`
}
