package repository

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// PersonRepository puerto de persistencia del agregado Person.
type PersonRepository interface {
	FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Person, error)
	FindByID(ctx context.Context, id string) (*entity.Person, error)
	ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error)
	// Save inserta cuando Version == 0; si no, exige que la versión almacenada coincida
	// y la incrementa en 1 (ErrConcurrencyConflict en caso contrario).
	Save(ctx context.Context, p *entity.Person) error
	SearchByName(ctx context.Context, name string, limit int) ([]*entity.Person, error)
}
