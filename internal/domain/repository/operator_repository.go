package repository

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// OperatorRepository define el puerto de persistencia para Operator.
type OperatorRepository interface {
	// Create devuelve domain.ErrConflict si el username ya existe.
	Create(ctx context.Context, op *entity.Operator) error
	// FindByUsername devuelve domain.ErrNotFound si no existe.
	FindByUsername(ctx context.Context, username string) (*entity.Operator, error)
}
