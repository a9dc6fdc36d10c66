package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ReferenceCache guarda validaciones positivas de catálogos.
type ReferenceCache interface {
	Has(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, ttl time.Duration) error
}

// NewRedisClient abre la conexión a Redis. Devuelve nil sin error cuando la URL está vacía.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisReferenceCache implementación de ReferenceCache sobre Redis.
type RedisReferenceCache struct {
	client *redis.Client
	prefix string
}

// NewRedisReferenceCache construye la caché con el prefijo de claves dado.
func NewRedisReferenceCache(client *redis.Client, prefix string) *RedisReferenceCache {
	return &RedisReferenceCache{client: client, prefix: prefix}
}

func (c *RedisReferenceCache) Has(ctx context.Context, key string) (bool, error) {
	err := c.client.Get(ctx, c.prefix+key).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisReferenceCache) Put(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, "1", ttl).Err()
}

var _ ports.ReferenceValidator = (*CachedReferenceValidator)(nil)

// CachedReferenceValidator decora un validador remoto: las validaciones aceptadas se recuerdan
// durante ttl y las consultas concurrentes idénticas comparten una sola llamada. Los rechazos y
// las fallas nunca se guardan. Si la caché falla se consulta directamente al servicio.
type CachedReferenceValidator struct {
	next        ports.ReferenceValidator
	cache       ReferenceCache
	ttl         time.Duration
	callTimeout time.Duration
	group       singleflight.Group
	log         *logger.Logger
}

const defaultSharedCallTimeout = 30 * time.Second

// CacheOption ajusta el CachedReferenceValidator.
type CacheOption func(*CachedReferenceValidator)

// WithCallTimeout acota la llamada compartida entre solicitudes concurrentes.
func WithCallTimeout(d time.Duration) CacheOption {
	return func(v *CachedReferenceValidator) {
		if d > 0 {
			v.callTimeout = d
		}
	}
}

// NewCachedReferenceValidator construye el decorador. cache puede ser nil (solo deduplicación).
func NewCachedReferenceValidator(next ports.ReferenceValidator, cache ReferenceCache, ttl time.Duration, log *logger.Logger, opts ...CacheOption) *CachedReferenceValidator {
	if log == nil {
		log = logger.Nop()
	}
	v := &CachedReferenceValidator{
		next:        next,
		cache:       cache,
		ttl:         ttl,
		callTimeout: defaultSharedCallTimeout,
		log:         log.Component("reference-cache"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *CachedReferenceValidator) ValidateBranch(ctx context.Context, code string) error {
	return v.validate(ctx, "branch:"+code, func(ctx context.Context) error { return v.next.ValidateBranch(ctx, code) })
}

func (v *CachedReferenceValidator) ValidateCountry(ctx context.Context, code string) error {
	return v.validate(ctx, "country:"+code, func(ctx context.Context) error { return v.next.ValidateCountry(ctx, code) })
}

func (v *CachedReferenceValidator) ValidateLocation(ctx context.Context, province, canton, parish string) error {
	key := "location:" + strings.Join([]string{province, canton, parish}, "/")
	return v.validate(ctx, key, func(ctx context.Context) error { return v.next.ValidateLocation(ctx, province, canton, parish) })
}

func (v *CachedReferenceValidator) validate(ctx context.Context, key string, fn func(context.Context) error) error {
	if v.cache != nil {
		hit, err := v.cache.Has(ctx, key)
		if err != nil {
			v.log.Warn().Err(err).Str("key", key).Msg("caché de catálogos no disponible")
		} else if hit {
			return nil
		}
	}

	// La llamada compartida no hereda la cancelación de quien la inició; cada solicitud
	// deja de esperar cuando se cancela su propio contexto.
	ch := v.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), v.callTimeout)
		defer cancel()
		return nil, fn(shared)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
	}

	if v.cache != nil {
		if err := v.cache.Put(ctx, key, v.ttl); err != nil {
			v.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la validación en caché")
		}
	}
	return nil
}
