package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/validation"
)

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// Score interno: rango cerrado [1, 1000], nulo rechazado.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateInternalScore_Limites(t *testing.T) {
	casos := []struct {
		nombre string
		score  *decimal.Decimal
		ok     bool
	}{
		{"nulo", nil, false},
		{"cero", ptr(decimal.Zero), false},
		{"uno", ptr(decimal.NewFromInt(1)), true},
		{"medio", ptr(decimal.RequireFromString("500.25")), true},
		{"mil", ptr(decimal.NewFromInt(1000)), true},
		{"mil uno", ptr(decimal.NewFromInt(1001)), false},
		{"justo encima de mil", ptr(decimal.RequireFromString("1000.01")), false},
		{"negativo", ptr(decimal.NewFromInt(-5)), false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := validation.ValidateInternalScore(c.score)
			if c.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "debe clasificarse como entrada inválida")
		})
	}
}

func TestValidateOptionalScore_NuloAceptado(t *testing.T) {
	assert.NoError(t, validation.ValidateOptionalScore(nil))
	assert.Error(t, validation.ValidateOptionalScore(ptr(decimal.NewFromInt(2000))))
}

// ──────────────────────────────────────────────────────────────────────────────
// Participación accionaria
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateOwnershipPercentage(t *testing.T) {
	assert.NoError(t, validation.ValidateOwnershipPercentage(decimal.NewFromInt(30)))
	assert.NoError(t, validation.ValidateOwnershipPercentage(decimal.NewFromInt(100)))
	assert.ErrorIs(t, validation.ValidateOwnershipPercentage(decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, validation.ValidateOwnershipPercentage(decimal.RequireFromString("100.5")), domain.ErrInvalidInput)
}

func TestValidateAddress_AcumulaErrores(t *testing.T) {
	err := validation.ValidateAddress("OFICINA", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "tipo de dirección")
	assert.Contains(t, err.Error(), "provincia")
}

func TestValidateClientDraft(t *testing.T) {
	assert.NoError(t, validation.ValidateClientDraft("MASIVO", "AGENCIA", ""))
	assert.ErrorIs(t, validation.ValidateClientDraft("VIP", "", ""), domain.ErrInvalidInput)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validation.ValidateEmail(""))
	assert.NoError(t, validation.ValidateEmail("ana@banco.ec"))
	assert.ErrorIs(t, validation.ValidateEmail("no-es-correo"), domain.ErrInvalidInput)
}
