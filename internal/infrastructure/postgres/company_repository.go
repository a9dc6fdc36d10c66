package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/textnorm"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository; accionistas y representantes viajan dentro del documento.
type CompanyRepo struct {
	q   Querier
	now func() time.Time
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q, now: time.Now}
}

func (r *CompanyRepo) FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Company, error) {
	var c entity.Company
	v, err := loadDocument(ctx, r.q, "companies", "identification_type = $1 AND identification_number = $2", &c, key.Type, key.Number)
	if err != nil {
		return nil, fmt.Errorf("empresa %s: %w", key, err)
	}
	c.Version = v
	return &c, nil
}

func (r *CompanyRepo) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	var c entity.Company
	v, err := loadDocument(ctx, r.q, "companies", "id = $1", &c, id)
	if err != nil {
		return nil, fmt.Errorf("empresa %s: %w", id, err)
	}
	c.Version = v
	return &c, nil
}

func (r *CompanyRepo) ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error) {
	return existsByKey(ctx, r.q, "companies", key.Type, key.Number)
}

func (r *CompanyRepo) Save(ctx context.Context, c *entity.Company) error {
	now := r.now()
	doc := *c
	doc.UpdatedAt = now
	v, err := saveDocument(ctx, r.q, docWrite{
		table:   "companies",
		id:      c.ID,
		version: c.Version,
		columns: []string{"identification_type", "identification_number", "name", "search_name", "search_trade_name"},
		values: []any{
			c.IdentificationType, c.IdentificationNumber, c.LegalName,
			textnorm.Fold(c.LegalName), textnorm.Fold(c.TradeName),
		},
		doc:       doc,
		createdAt: c.CreatedAt,
		updatedAt: now,
	})
	if err != nil {
		return err
	}
	c.Version = v
	c.UpdatedAt = now
	return nil
}

func (r *CompanyRepo) SearchByLegalName(ctx context.Context, name string, limit int) ([]*entity.Company, error) {
	return r.search(ctx, "search_name", name, limit)
}

func (r *CompanyRepo) SearchByTradeName(ctx context.Context, name string, limit int) ([]*entity.Company, error) {
	return r.search(ctx, "search_trade_name", name, limit)
}

func (r *CompanyRepo) search(ctx context.Context, column, name string, limit int) ([]*entity.Company, error) {
	query := fmt.Sprintf(`SELECT data, version FROM companies WHERE %s LIKE $1 ORDER BY name LIMIT $2`, column)
	out, err := listDocuments(ctx, r.q, query, decodeCompany, likePattern(textnorm.Fold(name)), limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	return out, nil
}

func decodeCompany(data []byte, version int64) (*entity.Company, error) {
	var c entity.Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.Version = version
	return &c, nil
}
