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

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación de PersonRepository sobre PostgreSQL (usable con pool o tx).
type PersonRepo struct {
	q   Querier
	now func() time.Time
}

// NewPersonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q, now: time.Now}
}

func (r *PersonRepo) FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Person, error) {
	var p entity.Person
	v, err := loadDocument(ctx, r.q, "persons", "identification_type = $1 AND identification_number = $2", &p, key.Type, key.Number)
	if err != nil {
		return nil, fmt.Errorf("persona %s: %w", key, err)
	}
	p.Version = v
	return &p, nil
}

func (r *PersonRepo) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	var p entity.Person
	v, err := loadDocument(ctx, r.q, "persons", "id = $1", &p, id)
	if err != nil {
		return nil, fmt.Errorf("persona %s: %w", id, err)
	}
	p.Version = v
	return &p, nil
}

func (r *PersonRepo) ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error) {
	return existsByKey(ctx, r.q, "persons", key.Type, key.Number)
}

// Save persiste la persona con control de versión y actualiza Version y UpdatedAt en p.
func (r *PersonRepo) Save(ctx context.Context, p *entity.Person) error {
	now := r.now()
	doc := *p
	doc.UpdatedAt = now
	v, err := saveDocument(ctx, r.q, docWrite{
		table:     "persons",
		id:        p.ID,
		version:   p.Version,
		columns:   []string{"identification_type", "identification_number", "name", "search_name"},
		values:    []any{p.IdentificationType, p.IdentificationNumber, p.Name, textnorm.Fold(p.Name)},
		doc:       doc,
		createdAt: p.CreatedAt,
		updatedAt: now,
	})
	if err != nil {
		return err
	}
	p.Version = v
	p.UpdatedAt = now
	return nil
}

func (r *PersonRepo) SearchByName(ctx context.Context, name string, limit int) ([]*entity.Person, error) {
	query := `SELECT data, version FROM persons WHERE search_name LIKE $1 ORDER BY name LIMIT $2`
	out, err := listDocuments(ctx, r.q, query, decodePerson, likePattern(textnorm.Fold(name)), limit)
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	return out, nil
}

func decodePerson(data []byte, version int64) (*entity.Person, error) {
	var p entity.Person
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	p.Version = version
	return &p, nil
}
