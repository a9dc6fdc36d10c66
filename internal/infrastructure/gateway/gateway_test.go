package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/gateway"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testConfig(url string) gateway.Config {
	cfg := gateway.DefaultConfig()
	cfg.AccountsBaseURL = url
	cfg.GeneralBaseURL = url
	cfg.InitialBackoff = 5 * time.Millisecond
	cfg.MaxBackoff = 10 * time.Millisecond
	cfg.ReadTimeout = 200 * time.Millisecond
	cfg.ConnectTimeout = 200 * time.Millisecond
	cfg.BreakerFailures = 100
	return cfg
}

// countingServer responde con handler y cuenta las peticiones por ruta.
type countingServer struct {
	*httptest.Server
	mu    sync.Mutex
	calls map[string]int
}

func newServer(t *testing.T, handler http.HandlerFunc) *countingServer {
	t.Helper()
	s := &countingServer{calls: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		s.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *countingServer) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func asExternal(t *testing.T, err error) *domain.ExternalError {
	t.Helper()
	var ext *domain.ExternalError
	require.True(t, errors.As(err, &ext), "se esperaba *domain.ExternalError, se obtuvo %T: %v", err, err)
	return ext
}

// ──────────────────────────────────────────────────────────────────────────────
// Decodificación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCountry_400EsValidacionRemota(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"mensaje":"país desconocido"}`))
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	err := c.ValidateCountry(context.Background(), "ZZ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteValidationFailed))
	assert.False(t, errors.Is(err, domain.ErrExternalServiceUnavailable))
	ext := asExternal(t, err)
	assert.Equal(t, "validateCountry", ext.Operation)
	assert.Equal(t, "ZZ", ext.Params["countryCode"])
	assert.Equal(t, "país desconocido", ext.Body)
	assert.Equal(t, 1, srv.count("/api/externo/paises/ZZ"), "los rechazos no se reintentan")
}

func TestFetchAccount_404EsNoEncontradoRemoto(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	_, err := c.FetchAccount(context.Background(), 99)

	assert.True(t, errors.Is(err, domain.ErrRemoteNotFound))
	assert.False(t, errors.Is(err, domain.ErrNotFound), "se distingue del NotFound local")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos: solo llamadas idempotentes
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateBranch_ReintentaYRecupera(t *testing.T) {
	var n atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	reg := prometheus.NewRegistry()
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), gateway.NewMetrics(reg))

	err := c.ValidateBranch(context.Background(), "S001")

	require.NoError(t, err)
	assert.Equal(t, 3, srv.count("/api/externo/sucursales/S001"))
	series, err := testutil.GatherAndCount(reg, "clientes_remote_retries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestValidateBranch_ReintentosAgotadosUsaFallback(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	err := c.ValidateBranch(context.Background(), "S001")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalServiceUnavailable))
	ext := asExternal(t, err)
	assert.Equal(t, "general", ext.Service)
	assert.Equal(t, "validateBranch", ext.Operation)
	assert.Equal(t, "S001", ext.Params["branchCode"])
	assert.Equal(t, 3, srv.count("/api/externo/sucursales/S001"))
}

func TestValidateBranch_4xxNoSeReintenta(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusConflict} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})
			c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

			err := c.ValidateBranch(context.Background(), "S001")

			require.Error(t, err)
			assert.Equal(t, status, asExternal(t, err).Status)
			assert.Equal(t, 1, srv.count("/api/externo/sucursales/S001"), "un 4xx se devuelve sin reintentar")
		})
	}
}

func TestValidateBranch_429SeReintenta(t *testing.T) {
	var n atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	require.NoError(t, c.ValidateBranch(context.Background(), "S001"))
	assert.Equal(t, 2, srv.count("/api/externo/sucursales/S001"))
}

func TestCallBudget_CubreTodosLosIntentos(t *testing.T) {
	cfg := gateway.DefaultConfig()
	assert.Equal(t, 3*15*time.Second+2*2*time.Second, cfg.CallBudget())
}

func TestCreateDependentAccount_NoSeReintenta(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	_, err := c.CreateDependentAccount(context.Background(), 27, "0102030405")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalServiceUnavailable))
	ext := asExternal(t, err)
	assert.Equal(t, "createDependentAccount", ext.Operation)
	assert.Equal(t, "27", ext.Params["masterAccountId"])
	assert.Equal(t, "0102030405", ext.Params["clientIdentification"])
	assert.Equal(t, 1, srv.count("/v1/cuentas-clientes"))
}

func TestCreateDependentAccount_Exito(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 27, body["idCuenta"])
		assert.Equal(t, "0102030405", body["idCliente"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 501,
			"idCuenta": {"id": 27, "codigoCuenta": "AHO-01", "nombre": "Ahorro"},
			"idCliente": "0102030405",
			"numeroCuenta": "2200001234",
			"saldoDisponible": 0,
			"saldoContable": "0.00",
			"fechaApertura": "2024-05-10T08:00:00Z",
			"estado": "ACTIVO",
			"version": 1
		}`))
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	acc, err := c.CreateDependentAccount(context.Background(), 27, "0102030405")

	require.NoError(t, err)
	assert.Equal(t, 501, acc.ID)
	assert.Equal(t, 27, acc.MasterAccountID)
	assert.Equal(t, "2200001234", acc.AccountNumber)
	assert.True(t, acc.BookBalance.IsZero())
	require.NotNil(t, acc.OpeningDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Timeouts y transporte
// ──────────────────────────────────────────────────────────────────────────────

func TestFetchClientAccount_TimeoutDeLectura(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	})
	defer close(release)
	cfg := testConfig(srv.URL)
	cfg.ReadTimeout = 30 * time.Millisecond
	cfg.MaxAttempts = 2
	c := gateway.NewHTTPRemoteClient(cfg, logger.Nop(), nil)

	_, err := c.FetchClientAccount(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalServiceUnavailable))
	assert.Equal(t, 2, srv.count("/api/v1/cuentas-clientes/7"))
}

func TestValidateLocation_FalseEsRechazo(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "17", r.URL.Query().Get("codigoProvincia"))
		assert.Equal(t, "", r.URL.Query().Get("codigoParroquia"))
		_, _ = w.Write([]byte(`false`))
	})
	c := gateway.NewHTTPRemoteClient(testConfig(srv.URL), logger.Nop(), nil)

	err := c.ValidateLocation(context.Background(), "17", "1701", "")

	assert.True(t, errors.Is(err, domain.ErrRemoteValidationFailed))
}

func TestCircuitBreaker_AbiertoFallaSinLlamar(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	cfg := testConfig(srv.URL)
	cfg.MaxAttempts = 1
	cfg.BreakerFailures = 2
	cfg.BreakerOpenFor = time.Minute
	c := gateway.NewHTTPRemoteClient(cfg, logger.Nop(), nil)
	ctx := context.Background()

	_ = c.ValidateCountry(ctx, "EC")
	_ = c.ValidateCountry(ctx, "EC")
	err := c.ValidateCountry(ctx, "EC")

	assert.True(t, errors.Is(err, domain.ErrExternalServiceUnavailable))
	assert.Equal(t, 2, srv.count("/api/externo/paises/EC"), "con el circuito abierto no se llama al servicio")
}

// ──────────────────────────────────────────────────────────────────────────────
// FailFast y fábrica
// ──────────────────────────────────────────────────────────────────────────────

func TestFailFastRemoteClient(t *testing.T) {
	c := gateway.FailFastRemoteClient{}
	ctx := context.Background()

	_, err := c.CreateDependentAccount(ctx, 27, "0102030405")
	ext := asExternal(t, err)
	assert.Equal(t, domain.ErrExternalServiceUnavailable, ext.Kind)
	assert.Equal(t, "createDependentAccount", ext.Operation)
	assert.Equal(t, "27", ext.Params["masterAccountId"])

	assert.ErrorIs(t, c.ValidateCountry(ctx, "EC"), domain.ErrExternalServiceUnavailable)
	assert.ErrorIs(t, c.ValidateBranch(ctx, "S1"), domain.ErrExternalServiceUnavailable)
	assert.ErrorIs(t, c.ValidateLocation(ctx, "17", "", ""), domain.ErrExternalServiceUnavailable)
	_, err = c.FetchAccount(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrExternalServiceUnavailable)
}

func TestNew_EligeImplementacion(t *testing.T) {
	cfg := gateway.DefaultConfig()
	_, isFailFast := gateway.New(cfg, logger.Nop(), nil).(gateway.FailFastRemoteClient)
	assert.True(t, isFailFast, "sin URLs debe usar fail-fast")

	cfg.AccountsBaseURL = "http://cuentas"
	cfg.GeneralBaseURL = "http://general"
	_, isHTTP := gateway.New(cfg, logger.Nop(), nil).(*gateway.HTTPRemoteClient)
	assert.True(t, isHTTP)

	cfg.Enabled = false
	_, isFailFast = gateway.New(cfg, logger.Nop(), nil).(gateway.FailFastRemoteClient)
	assert.True(t, isFailFast)
}
