package entity

// Estados compartidos por agregados y subentidades.
const (
	StateActive    = "ACTIVE"
	StateInactive  = "INACTIVE"
	StateSuspended = "SUSPENDED"
	StateBlocked   = "BLOCKED"
	StateProspect  = "PROSPECT"
)

// Tipo de entidad que respalda a un cliente o a un accionista.
const (
	EntityPerson  = "PERSON"
	EntityCompany = "COMPANY"
)

// IsPersonState indica si s es un estado válido para Person.
func IsPersonState(s string) bool {
	switch s {
	case StateActive, StateInactive, StateSuspended, StateBlocked, StateProspect:
		return true
	}
	return false
}

// IsClientState indica si s es un estado válido para Client y Company.
func IsClientState(s string) bool {
	switch s {
	case StateActive, StateInactive, StateSuspended, StateBlocked:
		return true
	}
	return false
}

// IsGeneralState indica si s es un estado válido para subentidades embebidas.
func IsGeneralState(s string) bool {
	return s == StateActive || s == StateInactive
}

// IsEntityType indica si s es PERSON o COMPANY.
func IsEntityType(s string) bool {
	return s == EntityPerson || s == EntityCompany
}
