package dto

import "time"

// CreatePersonRequest registro de una persona natural.
type CreatePersonRequest struct {
	IdentificationType   string     `json:"identification_type"`
	IdentificationNumber string     `json:"identification_number"`
	Name                 string     `json:"name"`
	Nationality          string     `json:"nationality"`
	Gender               string     `json:"gender"`
	BirthDate            *time.Time `json:"birth_date,omitempty"`
	MaritalStatus        string     `json:"marital_status"`
	EducationLevel       string     `json:"education_level"`
	Email                string     `json:"email"`
}

// UpdatePersonRequest campos demográficos modificables.
type UpdatePersonRequest struct {
	Name           string     `json:"name"`
	Gender         string     `json:"gender"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	MaritalStatus  string     `json:"marital_status"`
	EducationLevel string     `json:"education_level"`
	Email          string     `json:"email"`
	State          string     `json:"state"`
}

// PersonResponse respuesta de persona.
type PersonResponse struct {
	ID                   string     `json:"id"`
	IdentificationType   string     `json:"identification_type"`
	IdentificationNumber string     `json:"identification_number"`
	Name                 string     `json:"name"`
	Nationality          string     `json:"nationality"`
	Gender               string     `json:"gender"`
	BirthDate            *time.Time `json:"birth_date,omitempty"`
	MaritalStatus        string     `json:"marital_status"`
	EducationLevel       string     `json:"education_level"`
	Email                string     `json:"email"`
	State                string     `json:"state"`
	Version              int64      `json:"version"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
