package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/textnorm"
)

var (
	_ repository.PersonRepository  = (*PersonStore)(nil)
	_ repository.CompanyRepository = (*CompanyStore)(nil)
	_ repository.ClientRepository  = (*ClientStore)(nil)
)

// Option ajusta los stores en memoria.
type Option func(*options)

type options struct{ now func() time.Time }

// WithClock fija el reloj usado para marcar UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func apply(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// PersonStore repositorio de personas en memoria.
type PersonStore struct{ t *table[*entity.Person] }

// NewPersonStore construye un PersonStore vacío.
func NewPersonStore(opts ...Option) *PersonStore {
	o := apply(opts)
	return &PersonStore{t: newTable(document[*entity.Person]{
		id:    func(p *entity.Person) string { return p.ID },
		name:  func(p *entity.Person) string { return p.Name },
		clone: clonePerson,
	}, o.now)}
}

func (s *PersonStore) FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Person, error) {
	return s.t.findByKey(ctx, key)
}

func (s *PersonStore) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	return s.t.findByID(ctx, id)
}

func (s *PersonStore) ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error) {
	return s.t.exists(ctx, key)
}

func (s *PersonStore) Save(ctx context.Context, p *entity.Person) error { return s.t.save(ctx, p) }

func (s *PersonStore) SearchByName(ctx context.Context, name string, limit int) ([]*entity.Person, error) {
	return s.t.filter(ctx, func(p *entity.Person) bool { return textnorm.Contains(p.Name, name) }, limit, 0)
}

// CompanyStore repositorio de empresas en memoria.
type CompanyStore struct{ t *table[*entity.Company] }

// NewCompanyStore construye un CompanyStore vacío.
func NewCompanyStore(opts ...Option) *CompanyStore {
	o := apply(opts)
	return &CompanyStore{t: newTable(document[*entity.Company]{
		id:    func(c *entity.Company) string { return c.ID },
		name:  func(c *entity.Company) string { return c.LegalName },
		clone: cloneCompany,
	}, o.now)}
}

func (s *CompanyStore) FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Company, error) {
	return s.t.findByKey(ctx, key)
}

func (s *CompanyStore) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return s.t.findByID(ctx, id)
}

func (s *CompanyStore) ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error) {
	return s.t.exists(ctx, key)
}

func (s *CompanyStore) Save(ctx context.Context, c *entity.Company) error { return s.t.save(ctx, c) }

func (s *CompanyStore) SearchByLegalName(ctx context.Context, name string, limit int) ([]*entity.Company, error) {
	return s.t.filter(ctx, func(c *entity.Company) bool { return textnorm.Contains(c.LegalName, name) }, limit, 0)
}

func (s *CompanyStore) SearchByTradeName(ctx context.Context, name string, limit int) ([]*entity.Company, error) {
	return s.t.filter(ctx, func(c *entity.Company) bool { return textnorm.Contains(c.TradeName, name) }, limit, 0)
}

// ClientStore repositorio de clientes en memoria.
type ClientStore struct{ t *table[*entity.Client] }

// NewClientStore construye un ClientStore vacío.
func NewClientStore(opts ...Option) *ClientStore {
	o := apply(opts)
	return &ClientStore{t: newTable(document[*entity.Client]{
		id:    func(c *entity.Client) string { return c.ID },
		name:  func(c *entity.Client) string { return c.Name },
		clone: cloneClient,
	}, o.now)}
}

func (s *ClientStore) FindByKey(ctx context.Context, key entity.IdentityKey) (*entity.Client, error) {
	return s.t.findByKey(ctx, key)
}

func (s *ClientStore) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	return s.t.findByID(ctx, id)
}

func (s *ClientStore) ExistsByKey(ctx context.Context, key entity.IdentityKey) (bool, error) {
	return s.t.exists(ctx, key)
}

func (s *ClientStore) Save(ctx context.Context, c *entity.Client) error { return s.t.save(ctx, c) }

func (s *ClientStore) SearchByName(ctx context.Context, name string, limit int) ([]*entity.Client, error) {
	return s.t.filter(ctx, func(c *entity.Client) bool { return textnorm.Contains(c.Name, name) }, limit, 0)
}

func (s *ClientStore) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]*entity.Client, error) {
	return s.t.filter(ctx, func(c *entity.Client) bool { return c.EntityType == entityType }, limit, offset)
}

func (s *ClientStore) CountByEntityType(ctx context.Context, entityType string) (int64, error) {
	return s.t.count(ctx, func(c *entity.Client) bool { return c.EntityType == entityType })
}

func (s *ClientStore) ListByIdentificationType(ctx context.Context, idType string, limit, offset int) ([]*entity.Client, error) {
	return s.t.filter(ctx, func(c *entity.Client) bool { return c.IdentificationType == idType }, limit, offset)
}

func (s *ClientStore) CountByIdentificationType(ctx context.Context, idType string) (int64, error) {
	return s.t.count(ctx, func(c *entity.Client) bool { return c.IdentificationType == idType })
}
