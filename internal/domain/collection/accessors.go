package collection

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// Shareholders se indexa por participante.
var Shareholders = Accessor[entity.Shareholder, string]{
	Key:   func(s entity.Shareholder) string { return s.ParticipantID },
	State: func(s entity.Shareholder) string { return s.State },
	Stamp: func(s entity.Shareholder, state string, at time.Time, created bool) entity.Shareholder {
		s.State = state
		if created {
			s.CreatedAt = at
		}
		s.UpdatedAt = at
		return s
	},
}

// Representatives se indexa por cliente. La fecha de asignación se fija al agregarlo.
var Representatives = Accessor[entity.Representative, string]{
	Key:   func(r entity.Representative) string { return r.ClientID },
	State: func(r entity.Representative) string { return r.State },
	Stamp: func(r entity.Representative, state string, at time.Time, created bool) entity.Representative {
		r.State = state
		if created {
			r.CreatedAt = at
			r.AssignedAt = at
		}
		r.UpdatedAt = at
		return r
	},
}

// Phones se indexa por número.
var Phones = Accessor[entity.Phone, string]{
	Key:   func(p entity.Phone) string { return p.Number },
	State: func(p entity.Phone) string { return p.State },
	Stamp: func(p entity.Phone, state string, at time.Time, created bool) entity.Phone {
		p.State = state
		if created {
			p.CreatedAt = at
		}
		p.UpdatedAt = at
		return p
	},
}

// Addresses no tiene restricción de unicidad; la clave es la posición lógica (provincia+línea).
var Addresses = Accessor[entity.Address, string]{
	Key:   func(a entity.Address) string { return a.ProvinceCode + "|" + a.Line1 },
	State: func(a entity.Address) string { return a.State },
	Stamp: func(a entity.Address, state string, at time.Time, created bool) entity.Address {
		a.State = state
		if created {
			a.CreatedAt = at
		}
		a.UpdatedAt = at
		return a
	},
}

// Branches se indexa por código de sucursal.
var Branches = Accessor[entity.BranchAssociation, string]{
	Key:   func(b entity.BranchAssociation) string { return b.BranchCode },
	State: func(b entity.BranchAssociation) string { return b.State },
	Stamp: func(b entity.BranchAssociation, state string, at time.Time, created bool) entity.BranchAssociation {
		b.State = state
		if created {
			b.CreatedAt = at
		}
		b.UpdatedAt = at
		return b
	},
}
