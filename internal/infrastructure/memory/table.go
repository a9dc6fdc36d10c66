// Package memory implementa los repositorios de agregados en memoria. Cada lectura y escritura
// trabaja sobre copias profundas, de modo que los casos de uso nunca comparten estado con el store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

type aggregate interface {
	Key() entity.IdentityKey
	GetVersion() int64
	SetVersion(int64)
	Touch(time.Time)
}

type document[T aggregate] struct {
	id    func(T) string
	name  func(T) string
	clone func(T) T
}

// table guarda documentos por ID con un índice único por clave natural.
type table[T aggregate] struct {
	mu    sync.RWMutex
	doc   document[T]
	byID  map[string]T
	byKey map[entity.IdentityKey]string
	now   func() time.Time
}

func newTable[T aggregate](doc document[T], now func() time.Time) *table[T] {
	if now == nil {
		now = time.Now
	}
	return &table[T]{doc: doc, byID: make(map[string]T), byKey: make(map[entity.IdentityKey]string), now: now}
}

func (t *table[T]) findByID(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.byID[id]
	if !ok {
		return zero, fmt.Errorf("id %s: %w", id, domain.ErrNotFound)
	}
	return t.doc.clone(v), nil
}

func (t *table[T]) findByKey(ctx context.Context, key entity.IdentityKey) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byKey[key]
	if !ok {
		return zero, fmt.Errorf("clave %s: %w", key, domain.ErrNotFound)
	}
	return t.doc.clone(t.byID[id]), nil
}

func (t *table[T]) exists(ctx context.Context, key entity.IdentityKey) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byKey[key]
	return ok, nil
}

// save aplica la misma regla que el store PostgreSQL: versión 0 inserta, cualquier otra
// debe coincidir con la almacenada.
func (t *table[T]) save(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := t.doc.id(v)
	if id == "" {
		return fmt.Errorf("%w: el agregado no tiene ID", domain.ErrInvalidInput)
	}
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	stored, exists := t.byID[id]
	if v.GetVersion() == 0 {
		if exists {
			return fmt.Errorf("id %s ya existe: %w", id, domain.ErrConflict)
		}
		if _, dup := t.byKey[v.Key()]; dup {
			return fmt.Errorf("clave %s ya registrada: %w", v.Key(), domain.ErrConflict)
		}
	} else {
		if !exists {
			return fmt.Errorf("id %s: %w", id, domain.ErrNotFound)
		}
		if stored.GetVersion() != v.GetVersion() {
			return fmt.Errorf("id %s versión %d (almacenada %d): %w", id, v.GetVersion(), stored.GetVersion(), domain.ErrConcurrencyConflict)
		}
		if stored.Key() != v.Key() {
			if other, dup := t.byKey[v.Key()]; dup && other != id {
				return fmt.Errorf("clave %s ya registrada: %w", v.Key(), domain.ErrConflict)
			}
			delete(t.byKey, stored.Key())
		}
	}

	v.SetVersion(v.GetVersion() + 1)
	v.Touch(now)
	t.byID[id] = t.doc.clone(v)
	t.byKey[v.Key()] = id
	return nil
}

// filter devuelve copias ordenadas por nombre de los documentos que cumplen match.
func (t *table[T]) filter(ctx context.Context, match func(T) bool, limit, offset int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	out := make([]T, 0)
	for _, v := range t.byID {
		if match(v) {
			out = append(out, t.doc.clone(v))
		}
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ni, nj := t.doc.name(out[i]), t.doc.name(out[j])
		if ni != nj {
			return ni < nj
		}
		return t.doc.id(out[i]) < t.doc.id(out[j])
	})
	if offset > len(out) {
		return []T{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *table[T]) count(ctx context.Context, match func(T) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	var n int64
	for _, v := range t.byID {
		if match(v) {
			n++
		}
	}
	return n, nil
}
