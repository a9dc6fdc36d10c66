package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientDraftRequest datos comerciales para activar un cliente desde una persona o empresa.
type ClientDraftRequest struct {
	ClientType         string           `json:"client_type"`
	Segment            string           `json:"segment"`
	AffiliationChannel string           `json:"affiliation_channel"`
	Nationality        string           `json:"nationality"`
	Comments           string           `json:"comments"`
	InternalScore      *decimal.Decimal `json:"internal_score"`
}

// UpdateClientRequest campos comerciales modificables.
type UpdateClientRequest struct {
	ClientType         string           `json:"client_type"`
	Segment            string           `json:"segment"`
	AffiliationChannel string           `json:"affiliation_channel"`
	Comments           string           `json:"comments"`
	State              string           `json:"state"`
	InternalScore      *decimal.Decimal `json:"internal_score"`
}

// ClientResponse vista del agregado cliente.
type ClientResponse struct {
	ID                   string                        `json:"id"`
	EntityType           string                        `json:"entity_type"`
	EntityID             string                        `json:"entity_id"`
	Name                 string                        `json:"name"`
	Nationality          string                        `json:"nationality"`
	IdentificationType   string                        `json:"identification_type"`
	IdentificationNumber string                        `json:"identification_number"`
	ClientType           string                        `json:"client_type"`
	Segment              string                        `json:"segment"`
	AffiliationChannel   string                        `json:"affiliation_channel"`
	Comments             string                        `json:"comments"`
	InternalScore        *decimal.Decimal              `json:"internal_score"`
	State                string                        `json:"state"`
	Version              int64                         `json:"version"`
	Phones               []PhoneResponse               `json:"phones"`
	Addresses            []AddressResponse             `json:"addresses"`
	TransactionalContact *TransactionalContactResponse `json:"transactional_contact,omitempty"`
	Branches             []BranchResponse              `json:"branches"`
	CreatedAt            time.Time                     `json:"created_at"`
	UpdatedAt            time.Time                     `json:"updated_at"`
}

// ClientWithAccountResponse cliente recién creado y su cuenta automática.
// Account es nil y AccountError describe la falla cuando la apertura no se completó.
type ClientWithAccountResponse struct {
	Client       *ClientResponse        `json:"client"`
	Account      *ClientAccountResponse `json:"account,omitempty"`
	AccountError string                 `json:"account_error,omitempty"`
}

// ClientListResponse listado paginado.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// AddPhoneRequest alta de teléfono.
type AddPhoneRequest struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// PhoneResponse teléfono; Index es la posición estable en la colección.
type PhoneResponse struct {
	Index     int       `json:"index"`
	Type      string    `json:"type"`
	Number    string    `json:"number"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddAddressRequest alta de dirección.
type AddAddressRequest struct {
	Type         string `json:"type"`
	Line1        string `json:"line1"`
	Line2        string `json:"line2"`
	PostalCode   string `json:"postal_code"`
	ProvinceCode string `json:"province_code"`
	CantonCode   string `json:"canton_code"`
	ParishCode   string `json:"parish_code"`
}

// AddressResponse dirección.
type AddressResponse struct {
	Type         string    `json:"type"`
	Line1        string    `json:"line1"`
	Line2        string    `json:"line2"`
	PostalCode   string    `json:"postal_code"`
	ProvinceCode string    `json:"province_code"`
	CantonCode   string    `json:"canton_code"`
	ParishCode   string    `json:"parish_code,omitempty"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddBranchRequest asociación con sucursal.
type AddBranchRequest struct {
	BranchCode string `json:"branch_code"`
}

// BranchResponse sucursal asociada.
type BranchResponse struct {
	BranchCode string    `json:"branch_code"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TransactionalContactRequest alta o actualización del contacto transaccional.
type TransactionalContactRequest struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// TransactionalContactResponse contacto transaccional.
type TransactionalContactResponse struct {
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
