package repository

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia del agregado Company (incluye accionistas y representantes).
type CompanyRepository interface {
	FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Company, error)
	FindByID(ctx context.Context, id string) (*entity.Company, error)
	ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error)
	Save(ctx context.Context, c *entity.Company) error
	SearchByLegalName(ctx context.Context, name string, limit int) ([]*entity.Company, error)
	SearchByTradeName(ctx context.Context, name string, limit int) ([]*entity.Company, error)
}
