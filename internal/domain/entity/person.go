package entity

import "time"

// Catálogos demográficos de Person.
const (
	GenderMale   = "MASCULINO"
	GenderFemale = "FEMENINO"
	GenderOther  = "OTROS"
)

var (
	MaritalStatuses = []string{"SOLTERO", "CASADO", "DIVORCIADO", "VIUDO", "UNION_LIBRE"}
	EducationLevels = []string{"PRIMARIA", "SECUNDARIA", "UNIVERSITARIA", "POSGRADO", "DOCTORADO"}
)

// Person es el agregado de persona natural. El cliente la referencia por ID, nunca la contiene.
type Person struct {
	ID                   string
	IdentificationType   string
	IdentificationNumber string
	Name                 string
	Nationality          string // código de país (GeneralReference)
	Gender               string
	BirthDate            *time.Time
	MaritalStatus        string
	EducationLevel       string
	Email                string
	State                string
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Key devuelve la clave natural de la persona.
func (p *Person) Key() IdentityKey {
	return IdentityKey{Type: p.IdentificationType, Number: p.IdentificationNumber}
}

// GetVersion y SetVersion permiten a los stores tratar cualquier agregado de forma uniforme.
func (p *Person) GetVersion() int64   { return p.Version }
func (p *Person) SetVersion(v int64)  { p.Version = v }
func (p *Person) Touch(now time.Time) { p.UpdatedAt = now }
