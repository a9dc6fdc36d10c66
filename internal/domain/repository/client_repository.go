package repository

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia del agregado Client.
type ClientRepository interface {
	FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Client, error)
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error)
	Save(ctx context.Context, c *entity.Client) error
	SearchByName(ctx context.Context, name string, limit int) ([]*entity.Client, error)
	ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]*entity.Client, error)
	CountByEntityType(ctx context.Context, entityType string) (int64, error)
	ListByIdentificationType(ctx context.Context, idType string, limit, offset int) ([]*entity.Client, error)
	CountByIdentificationType(ctx context.Context, idType string) (int64, error)
}
