package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio. Conjunto cerrado: los adaptadores y casos de uso envuelven con %w
// y la capa HTTP traduce cada tipo a su código de estado.
var (
	ErrNotFound                   = errors.New("recurso no encontrado")
	ErrConflict                   = errors.New("conflicto con el estado actual")
	ErrInvalidInput               = errors.New("entrada inválida")
	ErrConcurrencyConflict        = errors.New("conflicto de concurrencia: la versión del documento cambió")
	ErrInvalidParticipant         = errors.New("el partícipe no es un cliente del tipo declarado")
	ErrInvalidRepresentative      = errors.New("el representante debe ser un cliente de tipo persona")
	ErrExternalServiceUnavailable = errors.New("servicio externo no disponible")
	ErrRemoteNotFound             = errors.New("recurso no encontrado en el servicio remoto")
	ErrRemoteValidationFailed     = errors.New("el servicio remoto rechazó la validación")
	ErrUnauthorized               = errors.New("no autorizado")
	ErrForbidden                  = errors.New("acceso denegado")
)

// ExternalError describe la falla de una operación contra un servicio remoto.
// Kind es uno de ErrExternalServiceUnavailable, ErrRemoteNotFound o ErrRemoteValidationFailed.
type ExternalError struct {
	Kind      error
	Service   string
	Operation string
	Params    map[string]string
	Status    int
	Body      string
	Cause     error
}

func (e *ExternalError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s", e.Service, e.Operation)
	if len(e.Params) > 0 {
		keys := make([]string, 0, len(e.Params))
		for k := range e.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("(")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Params[k])
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ": %v", e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.Status)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap expone el tipo y la causa a errors.Is / errors.As.
func (e *ExternalError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
