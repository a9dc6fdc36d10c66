package gateway

import (
	"errors"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// fallback convierte cualquier falla de una operación remota en un *domain.ExternalError con
// la operación y sus parámetros. Los rechazos decodificados (404/400) conservan su tipo; todo lo
// demás (transporte, timeout, breaker abierto, reintentos agotados) pasa a ErrExternalServiceUnavailable.
type fallback struct {
	log     *logger.Logger
	metrics *Metrics
}

func (f fallback) handle(service, op string, params map[string]string, attempts int, err error) error {
	var ext *domain.ExternalError
	if errors.As(err, &ext) {
		out := *ext
		out.Service = service
		out.Operation = op
		out.Params = params
		if out.Kind != domain.ErrExternalServiceUnavailable {
			f.log.Info().
				Str("service", service).
				Str("operation", op).
				Interface("params", params).
				Int("status", out.Status).
				Str("body", out.Body).
				Msg("servicio remoto rechazó la solicitud")
			return &out
		}
		err = ext
	}

	f.metrics.fallback(service, op)
	f.log.Warn().
		Str("service", service).
		Str("operation", op).
		Interface("params", params).
		Int("attempts", attempts).
		Err(err).
		Msg("servicio remoto no disponible, aplicando fallback")

	return &domain.ExternalError{
		Kind:      domain.ErrExternalServiceUnavailable,
		Service:   service,
		Operation: op,
		Params:    params,
		Status:    statusOf(err),
		Cause:     err,
	}
}

func statusOf(err error) int {
	var ext *domain.ExternalError
	if errors.As(err, &ext) {
		return ext.Status
	}
	return 0
}
