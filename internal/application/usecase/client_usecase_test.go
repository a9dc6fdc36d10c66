package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/collection"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/gateway"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Alta de cliente desde persona
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFromPerson_CreaClienteYPideCuentaMaestra27(t *testing.T) {
	e := newEnv(t)
	person := e.registerPerson(t, "0102030405", "María  Pérez")

	out, err := e.clientUC.CreateFromPerson(context.Background(), cedula("0102030405"), dto.ClientDraftRequest{
		Segment:       "MASIVO",
		InternalScore: score(700),
	})

	require.NoError(t, err)
	require.NotNil(t, out.Client)
	assert.Equal(t, entity.EntityPerson, out.Client.EntityType)
	assert.Equal(t, person.ID, out.Client.EntityID)
	assert.Equal(t, entity.StateActive, out.Client.State)
	assert.Equal(t, entity.ClientTypeNatural, out.Client.ClientType)
	assert.Equal(t, "María Pérez", out.Client.Name)
	assert.Equal(t, int64(1), out.Client.Version)
	require.NotNil(t, out.Account)
	assert.Equal(t, 27, out.Account.MasterAccountID)

	assert.Equal(t, []accountCall{{MasterAccountID: 27, Identification: "0102030405"}}, e.remote.calls())
	assert.Equal(t, []string{"EC"}, e.remote.countries)
}

func TestCreateFromPerson_PersonaInexistenteEsNotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.clientUC.CreateFromPerson(context.Background(), cedula("0999999999"), dto.ClientDraftRequest{InternalScore: score(10)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, e.remote.calls())
}

func TestCreateFromPerson_ClienteExistenteEsConflicto(t *testing.T) {
	e := newEnv(t)
	e.personClient(t, "0102030405", "Ana")

	_, err := e.clientUC.CreateFromPerson(context.Background(), cedula("0102030405"), dto.ClientDraftRequest{InternalScore: score(10)})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, e.remote.calls(), 1)
}

func TestCreateFromPerson_ScoreFueraDeRango(t *testing.T) {
	e := newEnv(t)
	e.registerPerson(t, "0102030405", "Ana")

	for _, s := range []*int64{nil, ptr(int64(0)), ptr(int64(1001))} {
		in := dto.ClientDraftRequest{}
		if s != nil {
			in.InternalScore = score(*s)
		}
		_, err := e.clientUC.CreateFromPerson(context.Background(), cedula("0102030405"), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	exists, err := e.clients.ExistsByKey(context.Background(), cedula("0102030405"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateFromPerson_PaisRechazadoNoPersiste(t *testing.T) {
	e := newEnv(t)
	e.registerPerson(t, "0102030405", "Ana")
	e.remote.countryErr = &domain.ExternalError{Kind: domain.ErrRemoteValidationFailed, Service: "general", Operation: "validateCountry", Status: 400}

	_, err := e.clientUC.CreateFromPerson(context.Background(), cedula("0102030405"), dto.ClientDraftRequest{
		Nationality:   "ZZ",
		InternalScore: score(100),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrRemoteValidationFailed)
	assert.Equal(t, []string{"ZZ"}, e.remote.countries)
	exists, _ := e.clients.ExistsByKey(context.Background(), cedula("0102030405"))
	assert.False(t, exists)
	assert.Empty(t, e.remote.calls())
}

// Escenario completo contra un servicio de catálogos real que responde 400.
func TestCreateFromPerson_Pais400DelGatewayEsValidacion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/externo/paises/") {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"mensaje":"país no existe"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cfg := gateway.DefaultConfig()
	cfg.AccountsBaseURL = srv.URL
	cfg.GeneralBaseURL = srv.URL
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = time.Millisecond
	remote := gateway.NewHTTPRemoteClient(cfg, logger.Nop(), nil)

	e := newEnv(t)
	uc := usecase.NewClientUseCase(e.clients, e.persons, e.companies, remote, remote,
		usecase.ClientConfig{MasterAccountID: 27}, logger.Nop())
	e.registerPerson(t, "0102030405", "Ana")

	_, err := uc.CreateFromPerson(context.Background(), cedula("0102030405"), dto.ClientDraftRequest{
		Nationality:   "ZZ",
		InternalScore: score(100),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, errors.Is(err, domain.ErrExternalServiceUnavailable))
	exists, _ := e.clients.ExistsByKey(context.Background(), cedula("0102030405"))
	assert.False(t, exists)
}

func TestCreateFromPerson_FallaDeCuentaDevuelveClientePersistido(t *testing.T) {
	e := newEnv(t)
	e.registerPerson(t, "0102030405", "Ana")
	e.remote.accountErr = &domain.ExternalError{Kind: domain.ErrRemoteValidationFailed, Service: "accounts", Operation: "createDependentAccount", Status: 422}

	out, err := e.clientUC.CreateFromPerson(context.Background(), cedula("0102030405"), dto.ClientDraftRequest{InternalScore: score(100)})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalServiceUnavailable)
	require.NotNil(t, out)
	require.NotNil(t, out.Client)
	assert.Nil(t, out.Account)
	assert.NotEmpty(t, out.AccountError)
	stored, ferr := e.clients.FindByID(context.Background(), out.Client.ID)
	require.NoError(t, ferr)
	assert.Equal(t, entity.StateActive, stored.State)
}

// cancelOnSave cancela el contexto del llamador justo después de confirmar el guardado.
type cancelOnSave struct {
	*memory.ClientStore
	cancel context.CancelFunc
}

func (c cancelOnSave) Save(ctx context.Context, client *entity.Client) error {
	err := c.ClientStore.Save(ctx, client)
	c.cancel()
	return err
}

func TestCreateFromPerson_CuentaNoSeCancelaConElLlamador(t *testing.T) {
	e := newEnv(t)
	e.registerPerson(t, "0102030405", "Ana")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := usecase.NewClientUseCase(cancelOnSave{ClientStore: e.clients, cancel: cancel}, e.persons, e.companies,
		e.remote, e.remote, usecase.ClientConfig{MasterAccountID: 27}, logger.Nop())

	out, err := uc.CreateFromPerson(ctx, cedula("0102030405"), dto.ClientDraftRequest{InternalScore: score(100)})

	require.NoError(t, err)
	require.NotNil(t, out.Account)
	assert.Error(t, ctx.Err())
	assert.NoError(t, e.remote.ctxErrOnCall)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de cliente desde empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFromCompany_UsaRazonSocialYNoValidaPais(t *testing.T) {
	e := newEnv(t)
	e.registerCompany(t, "1790012345001", "Comercial Andina S.A.")

	out, err := e.clientUC.CreateFromCompany(context.Background(), ruc("1790012345001"), dto.ClientDraftRequest{Segment: "CORPORATIVO"})

	require.NoError(t, err)
	assert.Equal(t, entity.EntityCompany, out.Client.EntityType)
	assert.Equal(t, entity.ClientTypeLegal, out.Client.ClientType)
	assert.Equal(t, "Comercial Andina S.A.", out.Client.Name)
	assert.Nil(t, out.Client.InternalScore)
	assert.Empty(t, e.remote.countries)
	assert.Equal(t, []accountCall{{MasterAccountID: 27, Identification: "1790012345001"}}, e.remote.calls())
}

func TestCreateFromCompany_ScorePresenteSeValida(t *testing.T) {
	e := newEnv(t)
	e.registerCompany(t, "1790012345001", "Comercial Andina S.A.")

	_, err := e.clientUC.CreateFromCompany(context.Background(), ruc("1790012345001"), dto.ClientDraftRequest{InternalScore: score(2000)})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subcolecciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRemovePhone_MarcaInactivoYConservaLongitud(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.personClient(t, "0102030405", "Ana")
	key := cedula("0102030405")
	_, err := e.clientUC.AddPhone(ctx, key, dto.AddPhoneRequest{Type: "CELULAR", Number: "0991111111"})
	require.NoError(t, err)
	before, err := e.clientUC.AddPhone(ctx, key, dto.AddPhoneRequest{Type: "LABORAL", Number: "022222222"})
	require.NoError(t, err)

	after, err := e.clientUC.RemovePhone(ctx, key, 1)

	require.NoError(t, err)
	require.Len(t, after.Phones, 2)
	assert.Equal(t, entity.StateActive, after.Phones[0].State)
	assert.Equal(t, "0991111111", after.Phones[0].Number)
	assert.Equal(t, entity.StateInactive, after.Phones[1].State)
	assert.Equal(t, before.Version+1, after.Version)
}

func TestRemovePhone_IndiceFueraDeRango(t *testing.T) {
	e := newEnv(t)
	e.personClient(t, "0102030405", "Ana")

	_, err := e.clientUC.RemovePhone(context.Background(), cedula("0102030405"), 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPhone_NumeroActivoDuplicadoEsConflicto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.personClient(t, "0102030405", "Ana")
	key := cedula("0102030405")
	_, err := e.clientUC.AddPhone(ctx, key, dto.AddPhoneRequest{Type: "CELULAR", Number: "0991111111"})
	require.NoError(t, err)

	_, err = e.clientUC.AddPhone(ctx, key, dto.AddPhoneRequest{Type: "CELULAR", Number: "0991111111"})
	assert.ErrorIs(t, err, collection.ErrDuplicateSubEntity)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// dado de baja, el número puede volver a registrarse
	_, err = e.clientUC.RemovePhone(ctx, key, 0)
	require.NoError(t, err)
	out, err := e.clientUC.AddPhone(ctx, key, dto.AddPhoneRequest{Type: "CELULAR", Number: "0991111111"})
	require.NoError(t, err)
	assert.Len(t, out.Phones, 2)
}

func TestAddAddress_ValidaUbicacionAntesDeGuardar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := e.personClient(t, "0102030405", "Ana")
	e.remote.locationErr = &domain.ExternalError{Kind: domain.ErrRemoteValidationFailed, Service: "general", Operation: "validateLocation"}

	_, err := e.clientUC.AddAddress(ctx, cedula("0102030405"), dto.AddAddressRequest{
		Type: "DOMICILIO", Line1: "Av. Amazonas N34", ProvinceCode: "17", CantonCode: "01",
	})

	assert.ErrorIs(t, err, domain.ErrRemoteValidationFailed)
	stored, _ := e.clients.FindByID(ctx, c.ID)
	assert.Empty(t, stored.Addresses)
	assert.Equal(t, c.Version, stored.Version)
}

func TestAddAddress_ProvinciaObligatoriaCantonOpcional(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.personClient(t, "0102030405", "Ana")
	key := cedula("0102030405")

	_, err := e.clientUC.AddAddress(ctx, key, dto.AddAddressRequest{Type: "DOMICILIO", Line1: "Calle 1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := e.clientUC.AddAddress(ctx, key, dto.AddAddressRequest{Type: "DOMICILIO", Line1: "Calle 1", ProvinceCode: "17"})
	require.NoError(t, err)
	require.Len(t, out.Addresses, 1)
	assert.Equal(t, entity.StateActive, out.Addresses[0].State)
	assert.Equal(t, [3]string{"17", "", ""}, e.remote.locations[0])
}

func TestAddBranch_SucursalRechazada(t *testing.T) {
	e := newEnv(t)
	e.personClient(t, "0102030405", "Ana")
	e.remote.branchErr = &domain.ExternalError{Kind: domain.ErrRemoteNotFound, Service: "general", Operation: "validateBranch"}

	_, err := e.clientUC.AddBranch(context.Background(), cedula("0102030405"), dto.AddBranchRequest{BranchCode: "X99"})

	assert.ErrorIs(t, err, domain.ErrRemoteNotFound)
}

func TestAddBranch_AgregaSinUnicidad(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.personClient(t, "0102030405", "Ana")
	key := cedula("0102030405")

	_, err := e.clientUC.AddBranch(ctx, key, dto.AddBranchRequest{BranchCode: "001"})
	require.NoError(t, err)
	out, err := e.clientUC.AddBranch(ctx, key, dto.AddBranchRequest{BranchCode: "001"})

	require.NoError(t, err)
	assert.Len(t, out.Branches, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y actualización
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ValidaCatalogosYEstado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.personClient(t, "0102030405", "Ana")
	key := cedula("0102030405")

	_, err := e.clientUC.Update(ctx, key, dto.UpdateClientRequest{Segment: "VIP"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.clientUC.Update(ctx, key, dto.UpdateClientRequest{State: "PROSPECT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := e.clientUC.Update(ctx, key, dto.UpdateClientRequest{Segment: "PREFERENCIAL", State: entity.StateSuspended, InternalScore: score(900)})
	require.NoError(t, err)
	assert.Equal(t, "PREFERENCIAL", out.Segment)
	assert.Equal(t, entity.StateSuspended, out.State)
	assert.True(t, out.InternalScore.Equal(*score(900)))
}

func TestSearch_TerminoVacioEsInvalido(t *testing.T) {
	e := newEnv(t)

	_, err := e.clientUC.Search(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_IgnoraTildes(t *testing.T) {
	e := newEnv(t)
	e.personClient(t, "0102030405", "José Núñez")
	e.personClient(t, "0102030406", "Ana López")

	out, err := e.clientUC.Search(context.Background(), "jose nunez")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "José Núñez", out[0].Name)
}

func TestListByEntityType_PaginaYCuenta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.personClient(t, "0102030405", "Ana")
	e.personClient(t, "0102030406", "Beatriz")
	e.companyClient(t, "1790012345001", "Andina S.A.")

	page, err := e.clientUC.ListByEntityType(ctx, entity.EntityPerson, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Page.Total)

	count, err := e.clientUC.CountByIdentificationType(ctx, "ruc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Total)

	_, err = e.clientUC.ListByEntityType(ctx, "OTRO", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func ptr[T any](v T) *T { return &v }
