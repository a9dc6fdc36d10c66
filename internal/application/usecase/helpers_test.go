package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble del servicio remoto
// ──────────────────────────────────────────────────────────────────────────────

type accountCall struct {
	MasterAccountID int
	Identification  string
}

// fakeRemote implementa ports.RemoteClient registrando las llamadas recibidas.
type fakeRemote struct {
	mu           sync.Mutex
	countryErr   error
	locationErr  error
	branchErr    error
	accountErr   error
	accountCalls []accountCall
	countries    []string
	locations    [][3]string
	ctxErrOnCall error
}

func (f *fakeRemote) ValidateBranch(_ context.Context, code string) error {
	return f.branchErr
}

func (f *fakeRemote) ValidateCountry(_ context.Context, code string) error {
	f.mu.Lock()
	f.countries = append(f.countries, code)
	f.mu.Unlock()
	return f.countryErr
}

func (f *fakeRemote) ValidateLocation(_ context.Context, province, canton, parish string) error {
	f.mu.Lock()
	f.locations = append(f.locations, [3]string{province, canton, parish})
	f.mu.Unlock()
	return f.locationErr
}

func (f *fakeRemote) CreateDependentAccount(ctx context.Context, masterID int, ident string) (*entity.ClientAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls = append(f.accountCalls, accountCall{MasterAccountID: masterID, Identification: ident})
	f.ctxErrOnCall = ctx.Err()
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return &entity.ClientAccount{
		ID:                   len(f.accountCalls),
		MasterAccountID:      masterID,
		ClientIdentification: ident,
		AccountNumber:        "2200" + ident,
		AvailableBalance:     decimal.Zero,
		BookBalance:          decimal.Zero,
		State:                entity.StateActive,
	}, nil
}

func (f *fakeRemote) FetchAccount(_ context.Context, id int) (*entity.Account, error) {
	if id == 404 {
		return nil, &domain.ExternalError{Kind: domain.ErrRemoteNotFound, Service: "accounts", Operation: "fetchAccount"}
	}
	return &entity.Account{ID: id, Code: "AHO", Name: "Ahorros", State: entity.StateActive}, nil
}

func (f *fakeRemote) FetchClientAccount(_ context.Context, id int) (*entity.ClientAccount, error) {
	return &entity.ClientAccount{ID: id, MasterAccountID: 27, AccountNumber: "2200001", State: entity.StateActive}, nil
}

func (f *fakeRemote) calls() []accountCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]accountCall(nil), f.accountCalls...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de casos de uso sobre almacenes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	persons      *memory.PersonStore
	companies    *memory.CompanyStore
	clients      *memory.ClientStore
	remote       *fakeRemote
	personUC     *usecase.PersonUseCase
	companyUC    *usecase.CompanyUseCase
	clientUC     *usecase.ClientUseCase
	shareholders *usecase.ShareholderUseCase
	contacts     *usecase.ContactUseCase
	accounts     *usecase.AccountUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		persons:   memory.NewPersonStore(),
		companies: memory.NewCompanyStore(),
		clients:   memory.NewClientStore(),
		remote:    &fakeRemote{},
	}
	e.personUC = usecase.NewPersonUseCase(e.persons)
	e.companyUC = usecase.NewCompanyUseCase(e.companies)
	e.clientUC = usecase.NewClientUseCase(e.clients, e.persons, e.companies, e.remote, e.remote,
		usecase.ClientConfig{MasterAccountID: 27}, logger.Nop())
	e.shareholders = usecase.NewShareholderUseCase(e.companies, e.clients)
	e.contacts = usecase.NewContactUseCase(e.clients)
	e.accounts = usecase.NewAccountUseCase(e.clients, e.remote, 27)
	return e
}

func score(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func cedula(number string) entity.IdentityKey {
	return entity.NewIdentityKey(entity.IdentificationCedula, number)
}

func ruc(number string) entity.IdentityKey {
	return entity.NewIdentityKey(entity.IdentificationRUC, number)
}

func (e *env) registerPerson(t *testing.T, number, name string) *dto.PersonResponse {
	t.Helper()
	p, err := e.personUC.Create(context.Background(), dto.CreatePersonRequest{
		IdentificationType:   entity.IdentificationCedula,
		IdentificationNumber: number,
		Name:                 name,
		Nationality:          "EC",
	})
	require.NoError(t, err)
	return p
}

func (e *env) registerCompany(t *testing.T, number, legalName string) *dto.CompanyResponse {
	t.Helper()
	c, err := e.companyUC.Create(context.Background(), dto.CreateCompanyRequest{
		IdentificationType:   entity.IdentificationRUC,
		IdentificationNumber: number,
		LegalName:            legalName,
		TradeName:            legalName,
	})
	require.NoError(t, err)
	return c
}

func (e *env) personClient(t *testing.T, number, name string) *dto.ClientResponse {
	t.Helper()
	e.registerPerson(t, number, name)
	out, err := e.clientUC.CreateFromPerson(context.Background(), cedula(number), dto.ClientDraftRequest{
		Segment:       "MASIVO",
		InternalScore: score(500),
	})
	require.NoError(t, err)
	return out.Client
}

func (e *env) companyClient(t *testing.T, number, legalName string) *dto.ClientResponse {
	t.Helper()
	e.registerCompany(t, number, legalName)
	out, err := e.clientUC.CreateFromCompany(context.Background(), ruc(number), dto.ClientDraftRequest{Segment: "CORPORATIVO"})
	require.NoError(t, err)
	return out.Client
}
