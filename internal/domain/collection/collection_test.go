package collection_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/collection"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func phones(t *testing.T, numbers ...string) []entity.Phone {
	t.Helper()
	var out []entity.Phone
	for _, n := range numbers {
		var err error
		out, err = collection.AddUnique(out, entity.Phone{Type: "CELULAR", Number: n}, collection.Phones, t0)
		require.NoError(t, err)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AddUnique
// ──────────────────────────────────────────────────────────────────────────────

func TestAddUnique_AgregaActivoConMarcas(t *testing.T) {
	got := phones(t, "0991112222")

	require.Len(t, got, 1)
	assert.Equal(t, entity.StateActive, got[0].State)
	assert.Equal(t, t0, got[0].CreatedAt)
	assert.Equal(t, t0, got[0].UpdatedAt)
}

func TestAddUnique_RechazaDuplicadoActivo(t *testing.T) {
	items := phones(t, "0991112222")

	_, err := collection.AddUnique(items, entity.Phone{Type: "LABORAL", Number: "0991112222"}, collection.Phones, t1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, collection.ErrDuplicateSubEntity))
	assert.True(t, errors.Is(err, domain.ErrConflict), "duplicado debe ser un conflicto")
}

func TestAddUnique_PermiteReagregarInactivo(t *testing.T) {
	items := phones(t, "A")
	items, err := collection.TransitionAt(items, 0, entity.StateInactive, collection.Phones, t1)
	require.NoError(t, err)

	items, err = collection.AddUnique(items, entity.Phone{Type: "CELULAR", Number: "A"}, collection.Phones, t1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	found, err := collection.FindByKey(items, "A", collection.Phones)
	require.NoError(t, err)
	assert.Equal(t, entity.StateActive, found.State, "la búsqueda prefiere el elemento vivo")
}

func TestAddUnique_NoModificaEntrada(t *testing.T) {
	items := make([]entity.Phone, 1, 4)
	items[0] = entity.Phone{Number: "A", State: entity.StateActive}

	out, err := collection.AddUnique(items, entity.Phone{Number: "B"}, collection.Phones, t0)
	require.NoError(t, err)

	assert.Len(t, items, 1)
	assert.Len(t, out, 2)
	out[0].Number = "Z"
	assert.Equal(t, "A", items[0].Number, "la salida no comparte el arreglo subyacente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja lógica: la longitud no cambia y solo el elemento indicado pasa a INACTIVE.
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionAt_BajaLogica(t *testing.T) {
	items := phones(t, "A", "B", "C")

	out, err := collection.TransitionAt(items, 1, entity.StateInactive, collection.Phones, t1)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, items[0], out[0])
	assert.Equal(t, items[2], out[2])
	assert.Equal(t, "B", out[1].Number)
	assert.Equal(t, entity.StateInactive, out[1].State)
	assert.Equal(t, t1, out[1].UpdatedAt)
	assert.Equal(t, t0, out[1].CreatedAt)
	assert.Equal(t, entity.StateActive, items[1].State, "la entrada original no cambia")
}

func TestTransitionAt_IndiceFueraDeRango(t *testing.T) {
	items := phones(t, "A")

	for _, idx := range []int{-1, 1, 7} {
		_, err := collection.TransitionAt(items, idx, entity.StateInactive, collection.Phones, t1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// FindByKey / TransitionState / Update / FilterByState
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionState_PorClave(t *testing.T) {
	var items []entity.Shareholder
	items, err := collection.AddUnique(items, entity.Shareholder{ParticipantID: "c1", ParticipantType: entity.EntityPerson, OwnershipPercentage: decimal.NewFromInt(30)}, collection.Shareholders, t0)
	require.NoError(t, err)
	items, err = collection.AddUnique(items, entity.Shareholder{ParticipantID: "c2", ParticipantType: entity.EntityCompany, OwnershipPercentage: decimal.NewFromInt(70)}, collection.Shareholders, t0)
	require.NoError(t, err)

	out, err := collection.TransitionState(items, "c2", entity.StateInactive, collection.Shareholders, t1)
	require.NoError(t, err)

	assert.Equal(t, entity.StateActive, out[0].State)
	assert.Equal(t, entity.StateInactive, out[1].State)

	_, err = collection.TransitionState(items, "nadie", entity.StateInactive, collection.Shareholders, t1)
	assert.ErrorIs(t, err, collection.ErrSubEntityNotFound)
}

func TestFindByKey_PrimeraCoincidencia(t *testing.T) {
	items := []entity.BranchAssociation{
		{BranchCode: "S1", State: entity.StateActive, CreatedAt: t0},
		{BranchCode: "S1", State: entity.StateActive, CreatedAt: t1},
	}

	found, err := collection.FindByKey(items, "S1", collection.Branches)
	require.NoError(t, err)
	assert.Equal(t, t0, found.CreatedAt)
}

func TestFindByKey_PrefiereActivoSobreInactivo(t *testing.T) {
	items := []entity.BranchAssociation{
		{BranchCode: "S1", State: entity.StateInactive, CreatedAt: t0},
		{BranchCode: "S1", State: entity.StateActive, CreatedAt: t1},
	}

	found, err := collection.FindByKey(items, "S1", collection.Branches)
	require.NoError(t, err)
	assert.Equal(t, t1, found.CreatedAt)

	out, err := collection.TransitionState(items, "S1", entity.StateInactive, collection.Branches, t1)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInactive, out[1].State, "se da de baja la entrada activa")

	// todas inactivas: gana la primera
	found, err = collection.FindByKey(out, "S1", collection.Branches)
	require.NoError(t, err)
	assert.Equal(t, t0, found.CreatedAt)
}

func TestUpdate_ConservaPosicion(t *testing.T) {
	var items []entity.Representative
	items = collection.Append(items, entity.Representative{ClientID: "r1", Role: entity.RoleOperator}, collection.Representatives, t0)
	items = collection.Append(items, entity.Representative{ClientID: "r2", Role: entity.RoleOperator}, collection.Representatives, t0)
	assert.Equal(t, t0, items[0].AssignedAt)

	out, err := collection.Update(items, "r1", func(r entity.Representative) entity.Representative {
		r.Role = entity.RoleLegalRepresentative
		return r
	}, collection.Representatives, t1)
	require.NoError(t, err)

	assert.Equal(t, "r1", out[0].ClientID)
	assert.Equal(t, entity.RoleLegalRepresentative, out[0].Role)
	assert.Equal(t, entity.StateActive, out[0].State)
	assert.Equal(t, t1, out[0].UpdatedAt)
	assert.Equal(t, entity.RoleOperator, items[0].Role)
}

func TestFilterByState_VacioNoNil(t *testing.T) {
	got := collection.FilterByState([]entity.Shareholder(nil), entity.StateActive, collection.Shareholders)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
