package gateway

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

type retryPolicy struct {
	maxAttempts int
	initial     time.Duration
	max         time.Duration
	multiplier  float64
}

func (c Config) retryPolicy(idempotent bool) retryPolicy {
	p := retryPolicy{maxAttempts: 1, initial: c.InitialBackoff, max: c.MaxBackoff, multiplier: c.BackoffMultiplier}
	if idempotent && c.MaxAttempts > 1 {
		p.maxAttempts = c.MaxAttempts
	}
	if p.multiplier < 1 {
		p.multiplier = 1
	}
	return p
}

// backoff devuelve la espera previa al intento attempt+1 (attempt empieza en 1).
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := time.Duration(float64(p.initial) * math.Pow(p.multiplier, float64(attempt-1)))
	if p.max > 0 && d > p.max {
		d = p.max
	}
	return d
}

// retryable indica si vale la pena repetir la llamada: solo fallas de transporte, 5xx y 429.
// Las demás respuestas 4xx y el breaker abierto no se reintentan.
func retryable(err error) bool {
	var ext *domain.ExternalError
	if errors.As(err, &ext) && ext.Status >= 400 && ext.Status < 500 && ext.Status != http.StatusTooManyRequests {
		return false
	}
	switch {
	case errors.Is(err, domain.ErrRemoteNotFound), errors.Is(err, domain.ErrRemoteValidationFailed):
		return false
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	case errors.Is(err, context.Canceled):
		return false
	}
	return true
}

// withRetry ejecuta fn hasta maxAttempts veces. onRetry se invoca antes de cada espera.
func withRetry[T any](ctx context.Context, p retryPolicy, log *logger.Logger, op string, onRetry func(), fn func(context.Context) (T, error)) (T, int, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, attempt - 1, lastErr
			}
			return zero, attempt - 1, err
		}

		v, err := fn(ctx)
		if err == nil {
			return v, attempt, nil
		}
		lastErr = err
		if attempt == p.maxAttempts || !retryable(err) {
			return zero, attempt, err
		}

		wait := p.backoff(attempt)
		log.Debug().
			Str("operation", op).
			Int("attempt", attempt).
			Int("max_attempts", p.maxAttempts).
			Dur("backoff", wait).
			Err(err).
			Msg("llamada remota fallida, reintentando")
		if onRetry != nil {
			onRetry()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, attempt, lastErr
		case <-timer.C:
		}
	}
	return zero, p.maxAttempts, lastErr
}
