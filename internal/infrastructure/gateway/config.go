// Package gateway implementa el acceso resiliente a los servicios remotos de cuentas y de
// catálogos generales: timeouts fijos, reintentos acotados solo para llamadas idempotentes,
// circuit breaker por servicio, decodificación de errores HTTP y fallback tipado.
package gateway

import (
	"time"

	"github.com/jhoicas/Clientes-api/pkg/config"
)

const (
	serviceAccounts = "accounts"
	serviceGeneral  = "general"
)

// Config parámetros explícitos del gateway. No hay valores implícitos fuera de DefaultConfig.
type Config struct {
	Enabled           bool
	AccountsBaseURL   string
	GeneralBaseURL    string
	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	BreakerFailures   uint32
	BreakerOpenFor    time.Duration
}

// DefaultConfig 5s de conexión, 10s de lectura y 3 intentos con espera de 1 a 2 segundos.
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		ConnectTimeout:    5 * time.Second,
		ReadTimeout:       10 * time.Second,
		MaxAttempts:       3,
		InitialBackoff:    time.Second,
		MaxBackoff:        2 * time.Second,
		BackoffMultiplier: 1.5,
		BreakerFailures:   5,
		BreakerOpenFor:    30 * time.Second,
	}
}

// ConfigFrom construye la configuración del gateway a partir de la configuración de la aplicación.
func ConfigFrom(cfg *config.Config) Config {
	c := DefaultConfig()
	c.Enabled = cfg.Gateway.Enabled
	c.AccountsBaseURL = cfg.Accounts.BaseURL
	c.GeneralBaseURL = cfg.General.BaseURL
	c.ConnectTimeout = cfg.Gateway.ConnectTimeout
	c.ReadTimeout = cfg.Gateway.ReadTimeout
	c.MaxAttempts = cfg.Gateway.RetryMaxAttempts
	c.InitialBackoff = cfg.Gateway.RetryInitialBackoff
	c.MaxBackoff = cfg.Gateway.RetryMaxBackoff
	if cfg.Gateway.BreakerFailures > 0 {
		c.BreakerFailures = uint32(cfg.Gateway.BreakerFailures)
	}
	c.BreakerOpenFor = cfg.Gateway.BreakerOpenTimeout
	return c
}

// CallBudget tiempo máximo de una llamada idempotente con todos sus reintentos.
func (c Config) CallBudget() time.Duration {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts)*(c.ConnectTimeout+c.ReadTimeout) + time.Duration(attempts-1)*c.MaxBackoff
}
