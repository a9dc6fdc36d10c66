package memory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

func clonePerson(p *entity.Person) *entity.Person {
	c := *p
	if p.BirthDate != nil {
		d := *p.BirthDate
		c.BirthDate = &d
	}
	return &c
}

func cloneCompany(co *entity.Company) *entity.Company {
	c := *co
	if co.IncorporationDate != nil {
		d := *co.IncorporationDate
		c.IncorporationDate = &d
	}
	c.Shareholders = cloneSlice(co.Shareholders)
	c.Representatives = cloneSlice(co.Representatives)
	return &c
}

func cloneClient(cl *entity.Client) *entity.Client {
	c := *cl
	if cl.InternalScore != nil {
		s := decimal.RequireFromString(cl.InternalScore.String())
		c.InternalScore = &s
	}
	if cl.TransactionalContact != nil {
		tc := *cl.TransactionalContact
		c.TransactionalContact = &tc
	}
	c.Phones = cloneSlice(cl.Phones)
	c.Addresses = cloneSlice(cl.Addresses)
	c.Branches = cloneSlice(cl.Branches)
	return &c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
