package entity

import "time"

// Operator representa a un funcionario que opera la API (pertenece a una sucursal).
type Operator struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca en texto plano
	Name         string
	BranchCode   string
	Role         string // admin, operador, consulta
	State        string // ACTIVE, INACTIVE
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
