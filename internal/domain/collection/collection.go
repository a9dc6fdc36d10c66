// Package collection implementa la edición de subcolecciones embebidas en un agregado
// como transformaciones puras: cada función devuelve un slice nuevo y nunca modifica la entrada.
// Ningún elemento se elimina; la baja es una transición a INACTIVE.
package collection

import (
	"fmt"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

var (
	ErrDuplicateSubEntity = fmt.Errorf("%w: subentidad duplicada", domain.ErrConflict)
	ErrSubEntityNotFound  = fmt.Errorf("%w: subentidad no encontrada", domain.ErrNotFound)
)

// Accessor describe cómo leer la clave y el estado de un elemento y cómo producir una copia
// con estado y marcas de tiempo nuevas.
type Accessor[T any, K comparable] struct {
	Key   func(T) K
	State func(T) string
	// Stamp devuelve una copia de item con el estado indicado. created es true cuando el elemento
	// se está agregando a la colección.
	Stamp func(item T, state string, at time.Time, created bool) T
}

func terminal(state string) bool { return state == entity.StateInactive }

// AddUnique agrega item en estado ACTIVE si no existe otro con la misma clave en estado no terminal.
func AddUnique[T any, K comparable](items []T, item T, a Accessor[T, K], now time.Time) ([]T, error) {
	key := a.Key(item)
	for _, it := range items {
		if a.Key(it) == key && !terminal(a.State(it)) {
			return nil, fmt.Errorf("%w: clave %v", ErrDuplicateSubEntity, key)
		}
	}
	return Append(items, item, a, now), nil
}

// Append agrega item en estado ACTIVE sin verificar unicidad.
func Append[T any, K comparable](items []T, item T, a Accessor[T, K], now time.Time) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, a.Stamp(item, entity.StateActive, now, true))
}

// IndexOf devuelve la posición del primer elemento con la clave dada. Prefiere elementos
// en estado no terminal; si todos están inactivos devuelve el primero que coincida.
func IndexOf[T any, K comparable](items []T, key K, a Accessor[T, K]) int {
	first := -1
	for i, it := range items {
		if a.Key(it) != key {
			continue
		}
		if !terminal(a.State(it)) {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// FindByKey devuelve una copia del elemento con la clave dada.
// Con claves repetidas gana el primero no INACTIVE; si no hay, el primero (ver IndexOf).
func FindByKey[T any, K comparable](items []T, key K, a Accessor[T, K]) (T, error) {
	i := IndexOf(items, key, a)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: clave %v", ErrSubEntityNotFound, key)
	}
	return items[i], nil
}

// TransitionState cambia el estado del elemento con la clave dada.
// Con claves repetidas afecta al primero no INACTIVE; si no hay, al primero (ver IndexOf).
func TransitionState[T any, K comparable](items []T, key K, state string, a Accessor[T, K], now time.Time) ([]T, error) {
	i := IndexOf(items, key, a)
	if i < 0 {
		return nil, fmt.Errorf("%w: clave %v", ErrSubEntityNotFound, key)
	}
	return TransitionAt(items, i, state, a, now)
}

// TransitionAt cambia el estado del elemento en la posición index.
func TransitionAt[T any, K comparable](items []T, index int, state string, a Accessor[T, K], now time.Time) ([]T, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: índice %d fuera de rango (0..%d)", ErrSubEntityNotFound, index, len(items)-1)
	}
	return Replace(items, index, a.Stamp(items[index], state, now, false)), nil
}

// Update aplica fn al elemento con la clave dada y conserva su posición.
func Update[T any, K comparable](items []T, key K, fn func(T) T, a Accessor[T, K], now time.Time) ([]T, error) {
	i := IndexOf(items, key, a)
	if i < 0 {
		return nil, fmt.Errorf("%w: clave %v", ErrSubEntityNotFound, key)
	}
	updated := fn(items[i])
	return Replace(items, i, a.Stamp(updated, a.State(updated), now, false)), nil
}

// Replace devuelve una copia de items con item en la posición index.
func Replace[T any](items []T, index int, item T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[index] = item
	return out
}

// FilterByState devuelve los elementos con el estado dado. Nunca devuelve nil.
func FilterByState[T any, K comparable](items []T, state string, a Accessor[T, K]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if a.State(it) == state {
			out = append(out, it)
		}
	}
	return out
}
