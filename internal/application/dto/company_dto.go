package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest registro de una persona jurídica.
type CreateCompanyRequest struct {
	IdentificationType   string     `json:"identification_type"`
	IdentificationNumber string     `json:"identification_number"`
	TradeName            string     `json:"trade_name"`
	LegalName            string     `json:"legal_name"`
	CompanyType          string     `json:"company_type"`
	IncorporationDate    *time.Time `json:"incorporation_date,omitempty"`
	Email                string     `json:"email"`
	EconomicSector       string     `json:"economic_sector"`
}

// UpdateCompanyRequest campos modificables de la empresa.
type UpdateCompanyRequest struct {
	TradeName      string `json:"trade_name"`
	LegalName      string `json:"legal_name"`
	CompanyType    string `json:"company_type"`
	Email          string `json:"email"`
	EconomicSector string `json:"economic_sector"`
	State          string `json:"state"`
}

// CompanyResponse respuesta de empresa.
type CompanyResponse struct {
	ID                   string                   `json:"id"`
	IdentificationType   string                   `json:"identification_type"`
	IdentificationNumber string                   `json:"identification_number"`
	TradeName            string                   `json:"trade_name"`
	LegalName            string                   `json:"legal_name"`
	CompanyType          string                   `json:"company_type"`
	IncorporationDate    *time.Time               `json:"incorporation_date,omitempty"`
	Email                string                   `json:"email"`
	EconomicSector       string                   `json:"economic_sector"`
	State                string                   `json:"state"`
	Version              int64                    `json:"version"`
	Shareholders         []ShareholderResponse    `json:"shareholders"`
	Representatives      []RepresentativeResponse `json:"representatives"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
}

// AddShareholderRequest alta de accionista.
type AddShareholderRequest struct {
	ParticipantID       string          `json:"participant_id"`
	ParticipantType     string          `json:"participant_type"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage"`
}

// UpdateShareholderRequest cambia la participación.
type UpdateShareholderRequest struct {
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage"`
}

// ShareholderResponse accionista.
type ShareholderResponse struct {
	ParticipantID       string          `json:"participant_id"`
	ParticipantType     string          `json:"participant_type"`
	OwnershipPercentage decimal.Decimal `json:"ownership_percentage"`
	State               string          `json:"state"`
}

// AddRepresentativeRequest alta de representante.
type AddRepresentativeRequest struct {
	ClientID string `json:"client_id"`
	Role     string `json:"role"`
}

// UpdateRepresentativeRequest cambia el rol.
type UpdateRepresentativeRequest struct {
	Role string `json:"role"`
}

// RepresentativeResponse representante.
type RepresentativeResponse struct {
	ClientID   string    `json:"client_id"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
	State      string    `json:"state"`
}
