package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

var _ ports.RemoteClient = (*HTTPRemoteClient)(nil)

const maxResponseBody = 256 * 1024

var tracer = otel.Tracer("github.com/jhoicas/Clientes-api/internal/infrastructure/gateway")

// remoteService agrupa URL base y breaker de un servicio remoto.
type remoteService struct {
	name    string
	baseURL string
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// HTTPRemoteClient implementación HTTP de ports.RemoteClient.
type HTTPRemoteClient struct {
	cfg      Config
	http     *http.Client
	accounts *remoteService
	general  *remoteService
	log      *logger.Logger
	metrics  *Metrics
	fallback fallback
}

// NewHTTPRemoteClient construye el cliente con timeouts de conexión y lectura separados.
func NewHTTPRemoteClient(cfg Config, log *logger.Logger, metrics *Metrics) *HTTPRemoteClient {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("gateway")

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
	}

	c := &HTTPRemoteClient{
		cfg: cfg,
		http: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		},
		log:      log,
		metrics:  metrics,
		fallback: fallback{log: log, metrics: metrics},
	}
	c.accounts = c.newService(serviceAccounts, cfg.AccountsBaseURL)
	c.general = c.newService(serviceGeneral, cfg.GeneralBaseURL)
	return c
}

func (c *HTTPRemoteClient) newService(name, baseURL string) *remoteService {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     c.cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.cfg.BreakerFailures
		},
		// Un 404 o 400 es una respuesta sana del servicio; no abre el circuito.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrRemoteNotFound) || errors.Is(err, domain.ErrRemoteValidationFailed)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("service", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker cambió de estado")
			c.metrics.breakerState(name, float64(to))
		},
	}
	return &remoteService{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// call describe una operación remota.
type call struct {
	service    *remoteService
	op         string
	method     string
	path       string
	query      map[string]string
	body       any
	params     map[string]string
	idempotent bool
}

// execute corre la operación con breaker, reintentos (solo idempotentes), métricas, traza y fallback.
// out recibe el JSON de la respuesta 2xx; puede ser nil.
func (c *HTTPRemoteClient) execute(ctx context.Context, k call, out any) error {
	ctx, span := tracer.Start(ctx, k.service.name+"."+k.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	for name, v := range k.params {
		span.SetAttributes(attribute.String("remote.param."+name, v))
	}

	start := time.Now()
	_, attempts, err := withRetry(ctx, c.cfg.retryPolicy(k.idempotent), c.log, k.op,
		func() { c.metrics.retry(k.service.name, k.op) },
		func(ctx context.Context) (struct{}, error) {
			return k.service.breaker.Execute(func() (struct{}, error) {
				return struct{}{}, c.roundTrip(ctx, k, out)
			})
		},
	)
	span.SetAttributes(attribute.Int("remote.attempts", attempts))

	if err == nil {
		c.metrics.observe(k.service.name, k.op, "ok", time.Since(start))
		return nil
	}

	err = c.fallback.handle(k.service.name, k.op, k.params, attempts, err)
	outcome := "unavailable"
	switch {
	case errors.Is(err, domain.ErrRemoteNotFound):
		outcome = "not_found"
	case errors.Is(err, domain.ErrRemoteValidationFailed):
		outcome = "rejected"
	}
	c.metrics.observe(k.service.name, k.op, outcome, time.Since(start))
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	return err
}

func (c *HTTPRemoteClient) roundTrip(ctx context.Context, k call, out any) error {
	if k.service.baseURL == "" {
		return fmt.Errorf("%s: URL base no configurada", k.service.name)
	}

	var reader io.Reader
	if k.body != nil {
		payload, err := json.Marshal(k.body)
		if err != nil {
			return fmt.Errorf("%s: serializar request: %w", k.service.name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, k.method, k.service.baseURL+k.path, reader)
	if err != nil {
		return fmt.Errorf("%s: crear HTTP request: %w", k.service.name, err)
	}
	if len(k.query) > 0 {
		q := req.URL.Query()
		for name, v := range k.query {
			if v != "" {
				q.Set(name, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: timeout o cancelación: %w", k.service.name, ctx.Err())
		}
		return fmt.Errorf("%s: llamada HTTP fallida: %w", k.service.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%s: leer respuesta: %w", k.service.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(k.service.name, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: deserializar respuesta: %w", k.service.name, err)
	}
	return nil
}
