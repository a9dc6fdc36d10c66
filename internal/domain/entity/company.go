package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles de representante.
const (
	RoleLegalRepresentative = "LEGAL_REPRESENTATIVE"
	RoleAuthorizedSignatory = "AUTHORIZED_SIGNATORY"
	RoleAdministrator       = "ADMINISTRATOR"
	RoleOperator            = "OPERATOR"
)

// IsRepresentativeRole indica si r es un rol conocido.
func IsRepresentativeRole(r string) bool {
	switch r {
	case RoleLegalRepresentative, RoleAuthorizedSignatory, RoleAdministrator, RoleOperator:
		return true
	}
	return false
}

// Company es el agregado de persona jurídica, con accionistas y representantes embebidos.
type Company struct {
	ID                   string
	IdentificationType   string
	IdentificationNumber string
	TradeName            string // nombre comercial
	LegalName            string // razón social
	CompanyType          string
	IncorporationDate    *time.Time
	Email                string
	EconomicSector       string
	State                string
	Version              int64
	Shareholders         []Shareholder
	Representatives      []Representative
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Shareholder es la participación de un cliente (persona o empresa) en la empresa.
type Shareholder struct {
	ParticipantID       string
	ParticipantType     string // PERSON | COMPANY
	OwnershipPercentage decimal.Decimal
	State               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Representative vincula un cliente persona con un rol dentro de la empresa.
type Representative struct {
	ClientID   string
	Role       string
	AssignedAt time.Time
	State      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key devuelve la clave natural de la empresa.
func (c *Company) Key() IdentityKey {
	return IdentityKey{Type: c.IdentificationType, Number: c.IdentificationNumber}
}

func (c *Company) GetVersion() int64   { return c.Version }
func (c *Company) SetVersion(v int64)  { c.Version = v }
func (c *Company) Touch(now time.Time) { c.UpdatedAt = now }
