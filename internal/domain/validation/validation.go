// Package validation contiene las reglas de negocio locales para clientes y empresas
// que no requieren consultar servicios externos.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	minScore      = decimal.NewFromInt(1)
	maxScore      = decimal.NewFromInt(1000)
	maxPercentage = decimal.NewFromInt(100)
)

// ValidateInternalScore exige un score interno presente y dentro de [1, 1000].
func ValidateInternalScore(score *decimal.Decimal) error {
	if score == nil {
		return fmt.Errorf("%w: el score interno es obligatorio", domain.ErrInvalidInput)
	}
	if score.LessThan(minScore) || score.GreaterThan(maxScore) {
		return fmt.Errorf("%w: el score interno debe estar entre 1 y 1000 (recibido %s)", domain.ErrInvalidInput, score.String())
	}
	return nil
}

// ValidateOptionalScore valida el score solo si está presente.
func ValidateOptionalScore(score *decimal.Decimal) error {
	if score == nil {
		return nil
	}
	return ValidateInternalScore(score)
}

// ValidateOwnershipPercentage exige un porcentaje en (0, 100].
func ValidateOwnershipPercentage(pct decimal.Decimal) error {
	if !pct.IsPositive() || pct.GreaterThan(maxPercentage) {
		return fmt.Errorf("%w: la participación debe ser mayor que 0 y a lo sumo 100 (recibido %s)", domain.ErrInvalidInput, pct.String())
	}
	return nil
}

// ValidateClientDraft verifica los catálogos comerciales de un cliente.
// Los campos vacíos se aceptan; el caso de uso decide cuáles son obligatorios.
func ValidateClientDraft(segment, channel, clientType string) error {
	var errs []error
	if segment != "" && !entity.Contains(entity.Segments, segment) {
		errs = append(errs, fmt.Errorf("segmento %q no soportado", segment))
	}
	if channel != "" && !entity.Contains(entity.AffiliationChannels, channel) {
		errs = append(errs, fmt.Errorf("canal de afiliación %q no soportado", channel))
	}
	if clientType != "" && clientType != entity.ClientTypeNatural && clientType != entity.ClientTypeLegal {
		errs = append(errs, fmt.Errorf("tipo de cliente %q no soportado", clientType))
	}
	return join(errs)
}

// ValidatePhone verifica tipo y número de un teléfono.
func ValidatePhone(phoneType, number string) error {
	var errs []error
	if !entity.Contains(entity.PhoneTypes, phoneType) {
		errs = append(errs, fmt.Errorf("tipo de teléfono %q no soportado", phoneType))
	}
	if strings.TrimSpace(number) == "" {
		errs = append(errs, errors.New("número de teléfono requerido"))
	}
	return join(errs)
}

// ValidateAddress verifica los campos locales de una dirección. La jerarquía geográfica
// la valida GeneralReference.
func ValidateAddress(addressType, line1, provinceCode string) error {
	var errs []error
	if !entity.Contains(entity.AddressTypes, addressType) {
		errs = append(errs, fmt.Errorf("tipo de dirección %q no soportado", addressType))
	}
	if strings.TrimSpace(line1) == "" {
		errs = append(errs, errors.New("línea 1 de la dirección requerida"))
	}
	if strings.TrimSpace(provinceCode) == "" {
		errs = append(errs, errors.New("código de provincia requerido"))
	}
	return join(errs)
}

// ValidateEmail acepta vacío; si viene, debe ser una dirección válida.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: correo %q inválido", domain.ErrInvalidInput, email)
	}
	return nil
}

// Required devuelve ErrInvalidInput si value está vacío.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, field)
	}
	return nil
}

func join(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
}
