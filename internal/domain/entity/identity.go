package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Clientes-api/internal/domain"
)

// Tipos de identificación admitidos.
const (
	IdentificationCedula    = "CEDULA"
	IdentificationPasaporte = "PASAPORTE"
	IdentificationRUC       = "RUC"
)

// IdentityKey es la clave natural (tipo, número) de personas, empresas y clientes.
type IdentityKey struct {
	Type   string
	Number string
}

// NewIdentityKey normaliza espacios y mayúsculas del tipo.
func NewIdentityKey(idType, number string) IdentityKey {
	return IdentityKey{
		Type:   strings.ToUpper(strings.TrimSpace(idType)),
		Number: strings.TrimSpace(number),
	}
}

// Validate verifica que la clave esté completa y que el tipo sea conocido.
func (k IdentityKey) Validate() error {
	if k.Number == "" {
		return fmt.Errorf("%w: número de identificación requerido", domain.ErrInvalidInput)
	}
	switch k.Type {
	case IdentificationCedula, IdentificationPasaporte, IdentificationRUC:
		return nil
	case "":
		return fmt.Errorf("%w: tipo de identificación requerido", domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: tipo de identificación %q no soportado", domain.ErrInvalidInput, k.Type)
	}
}

func (k IdentityKey) String() string {
	return k.Type + "/" + k.Number
}
