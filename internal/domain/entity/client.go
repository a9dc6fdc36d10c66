package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	ClientTypeNatural = "PERSONA_NATURAL"
	ClientTypeLegal   = "PERSONA_JURIDICA"
)

// Catálogos comerciales del cliente.
var (
	Segments            = []string{"MASIVO", "PREFERENCIAL", "CORPORATIVO", "EMPRESARIAL", "PYMES", "MICROFINANZAS"}
	AffiliationChannels = []string{"PAGINA_WEB", "AGENCIA", "EXTERNO", "CALL_CENTER"}
	PhoneTypes          = []string{"CELULAR", "RESIDENCIA", "LABORAL"}
	AddressTypes        = []string{"DOMICILIO", "LABORAL"}
)

// Client es la activación bancaria de una Person o Company. Nombre e identificación se copian
// al crearlo y no se resincronizan.
type Client struct {
	ID                   string
	EntityType           string // PERSON | COMPANY
	EntityID             string
	Name                 string
	Nationality          string
	IdentificationType   string
	IdentificationNumber string
	ClientType           string
	Segment              string
	AffiliationChannel   string
	Comments             string
	InternalScore        *decimal.Decimal
	State                string
	Version              int64
	Phones               []Phone
	Addresses            []Address
	TransactionalContact *TransactionalContact
	Branches             []BranchAssociation
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Phone se direcciona por posición; nunca se elimina físicamente.
type Phone struct {
	Type      string
	Number    string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address dirección del cliente con códigos geográficos de GeneralReference.
type Address struct {
	Type         string
	Line1        string
	Line2        string
	PostalCode   string
	ProvinceCode string
	CantonCode   string
	ParishCode   string // reservado
	State        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransactionalContact relación 0..1 con el cliente.
type TransactionalContact struct {
	Phone     string
	Email     string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BranchAssociation sucursal asociada al cliente.
type BranchAssociation struct {
	BranchCode string
	State      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key devuelve la clave natural del cliente.
func (c *Client) Key() IdentityKey {
	return IdentityKey{Type: c.IdentificationType, Number: c.IdentificationNumber}
}

func (c *Client) GetVersion() int64   { return c.Version }
func (c *Client) SetVersion(v int64)  { c.Version = v }
func (c *Client) Touch(now time.Time) { c.UpdatedAt = now }

// Contains indica si v pertenece al catálogo.
func Contains(catalog []string, v string) bool {
	for _, c := range catalog {
		if c == v {
			return true
		}
	}
	return false
}
