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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository. Teléfonos, direcciones, sucursales y contacto
// transaccional se guardan embebidos en data.
type ClientRepo struct {
	q   Querier
	now func() time.Time
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q, now: time.Now}
}

func (r *ClientRepo) FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Client, error) {
	var c entity.Client
	v, err := loadDocument(ctx, r.q, "clients", "identification_type = $1 AND identification_number = $2", &c, key.Type, key.Number)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", key, err)
	}
	c.Version = v
	return &c, nil
}

func (r *ClientRepo) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	var c entity.Client
	v, err := loadDocument(ctx, r.q, "clients", "id = $1", &c, id)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", id, err)
	}
	c.Version = v
	return &c, nil
}

func (r *ClientRepo) ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error) {
	return existsByKey(ctx, r.q, "clients", key.Type, key.Number)
}

// Save persiste el cliente; internal_score se replica en una columna NUMERIC para consultas.
func (r *ClientRepo) Save(ctx context.Context, c *entity.Client) error {
	now := r.now()
	doc := *c
	doc.UpdatedAt = now
	v, err := saveDocument(ctx, r.q, docWrite{
		table:   "clients",
		id:      c.ID,
		version: c.Version,
		columns: []string{"identification_type", "identification_number", "name", "search_name", "entity_type", "entity_id", "internal_score"},
		values: []any{
			c.IdentificationType, c.IdentificationNumber, c.Name, textnorm.Fold(c.Name),
			c.EntityType, c.EntityID, c.InternalScore,
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

func (r *ClientRepo) SearchByName(ctx context.Context, name string, limit int) ([]*entity.Client, error) {
	query := `SELECT data, version FROM clients WHERE search_name LIKE $1 ORDER BY name LIMIT $2`
	return r.list(ctx, query, likePattern(textnorm.Fold(name)), limit)
}

func (r *ClientRepo) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT data, version FROM clients WHERE entity_type = $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, entityType, limit, offset)
}

func (r *ClientRepo) CountByEntityType(ctx context.Context, entityType string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM clients WHERE entity_type = $1`, entityType)
}

func (r *ClientRepo) ListByIdentificationType(ctx context.Context, idType string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT data, version FROM clients WHERE identification_type = $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, idType, limit, offset)
}

func (r *ClientRepo) CountByIdentificationType(ctx context.Context, idType string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM clients WHERE identification_type = $1`, idType)
}

func (r *ClientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	out, err := listDocuments(ctx, r.q, query, decodeClient, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

func (r *ClientRepo) count(ctx context.Context, query string, arg string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func decodeClient(data []byte, version int64) (*entity.Client, error) {
	var c entity.Client
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.Version = version
	return &c, nil
}
