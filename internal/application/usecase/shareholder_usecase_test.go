package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Accionistas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddShareholder_ParticipanteInexistenteNoModificaEmpresa(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")

	_, err := e.shareholders.AddShareholder(ctx, company.ID, dto.AddShareholderRequest{
		ParticipantID:       "clientX",
		ParticipantType:     entity.EntityPerson,
		OwnershipPercentage: decimal.NewFromInt(30),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidParticipant)
	stored, err := e.companies.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Shareholders)
	assert.Equal(t, company.Version, stored.Version)
}

func TestAddShareholder_TipoDeclaradoDistintoEsParticipanteInvalido(t *testing.T) {
	e := newEnv(t)
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")
	personClient := e.personClient(t, "0102030405", "Ana")

	_, err := e.shareholders.AddShareholder(context.Background(), company.ID, dto.AddShareholderRequest{
		ParticipantID:       personClient.ID,
		ParticipantType:     entity.EntityCompany,
		OwnershipPercentage: decimal.NewFromInt(30),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidParticipant)
}

func TestAddShareholder_AgregaYRechazaDuplicadoSinImportarPorcentaje(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")
	personClient := e.personClient(t, "0102030405", "Ana")

	out, err := e.shareholders.AddShareholder(ctx, company.ID, dto.AddShareholderRequest{
		ParticipantID:       personClient.ID,
		ParticipantType:     entity.EntityPerson,
		OwnershipPercentage: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	require.Len(t, out.Shareholders, 1)
	assert.Equal(t, entity.StateActive, out.Shareholders[0].State)
	assert.Equal(t, company.Version+1, out.Version)

	_, err = e.shareholders.AddShareholder(ctx, company.ID, dto.AddShareholderRequest{
		ParticipantID:       personClient.ID,
		ParticipantType:     entity.EntityPerson,
		OwnershipPercentage: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddShareholder_EmpresaComoAccionista(t *testing.T) {
	e := newEnv(t)
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")
	holding := e.companyClient(t, "1790099999001", "Holding S.A.")

	out, err := e.shareholders.AddShareholder(context.Background(), company.ID, dto.AddShareholderRequest{
		ParticipantID:       holding.ID,
		ParticipantType:     entity.EntityCompany,
		OwnershipPercentage: decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.EntityCompany, out.Shareholders[0].ParticipantType)
}

func TestAddShareholder_PorcentajeFueraDeRango(t *testing.T) {
	e := newEnv(t)
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")

	for _, pct := range []int64{0, -5, 101} {
		_, err := e.shareholders.AddShareholder(context.Background(), company.ID, dto.AddShareholderRequest{
			ParticipantID:       "c1",
			ParticipantType:     entity.EntityPerson,
			OwnershipPercentage: decimal.NewFromInt(pct),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "porcentaje %d", pct)
	}
}

func TestAddShareholder_EmpresaInexistenteTienePrioridad(t *testing.T) {
	e := newEnv(t)

	_, err := e.shareholders.AddShareholder(context.Background(), "no-existe", dto.AddShareholderRequest{
		ParticipantID:       "tampoco",
		ParticipantType:     entity.EntityPerson,
		OwnershipPercentage: decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidParticipant)
}

func TestShareholder_ActualizarInactivarYListar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")
	a := e.personClient(t, "0102030405", "Ana")
	b := e.personClient(t, "0102030406", "Beatriz")
	for _, id := range []string{a.ID, b.ID} {
		_, err := e.shareholders.AddShareholder(ctx, company.ID, dto.AddShareholderRequest{
			ParticipantID: id, ParticipantType: entity.EntityPerson, OwnershipPercentage: decimal.NewFromInt(50),
		})
		require.NoError(t, err)
	}

	_, err := e.shareholders.UpdateShareholder(ctx, company.ID, a.ID, dto.UpdateShareholderRequest{OwnershipPercentage: decimal.NewFromInt(60)})
	require.NoError(t, err)
	out, err := e.shareholders.ChangeShareholderState(ctx, company.ID, b.ID, entity.StateInactive)
	require.NoError(t, err)
	assert.Len(t, out.Shareholders, 2)

	active, err := e.shareholders.ListActiveShareholders(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ParticipantID)
	assert.True(t, active[0].OwnershipPercentage.Equal(decimal.NewFromInt(60)))

	got, err := e.shareholders.GetShareholder(ctx, company.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateInactive, got.State)

	_, err = e.shareholders.ChangeShareholderState(ctx, company.ID, a.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.shareholders.GetShareholder(ctx, company.ID, "otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Representantes
// ──────────────────────────────────────────────────────────────────────────────

func TestAddRepresentative_SoloClientesPersona(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")
	other := e.companyClient(t, "1790099999001", "Holding S.A.")

	_, err := e.shareholders.AddRepresentative(ctx, company.ID, dto.AddRepresentativeRequest{ClientID: other.ID, Role: entity.RoleAdministrator})
	assert.ErrorIs(t, err, domain.ErrInvalidRepresentative)

	_, err = e.shareholders.AddRepresentative(ctx, company.ID, dto.AddRepresentativeRequest{ClientID: "nadie", Role: entity.RoleAdministrator})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.shareholders.AddRepresentative(ctx, company.ID, dto.AddRepresentativeRequest{ClientID: other.ID, Role: "GERENTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRepresentative_CicloCompleto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	company := e.registerCompany(t, "1790012345001", "Andina S.A.")
	ana := e.personClient(t, "0102030405", "Ana")

	out, err := e.shareholders.AddRepresentative(ctx, company.ID, dto.AddRepresentativeRequest{ClientID: ana.ID, Role: entity.RoleLegalRepresentative})
	require.NoError(t, err)
	require.Len(t, out.Representatives, 1)
	assert.False(t, out.Representatives[0].AssignedAt.IsZero())

	_, err = e.shareholders.AddRepresentative(ctx, company.ID, dto.AddRepresentativeRequest{ClientID: ana.ID, Role: entity.RoleOperator})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.shareholders.UpdateRepresentative(ctx, company.ID, ana.ID, dto.UpdateRepresentativeRequest{Role: entity.RoleAuthorizedSignatory})
	require.NoError(t, err)
	got, err := e.shareholders.GetRepresentative(ctx, company.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuthorizedSignatory, got.Role)

	_, err = e.shareholders.ChangeRepresentativeState(ctx, company.ID, ana.ID, entity.StateInactive)
	require.NoError(t, err)
	active, err := e.shareholders.ListActiveRepresentatives(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.NotNil(t, active)
}
