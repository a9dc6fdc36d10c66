package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/collection"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/validation"
)

// ShareholderUseCase edita accionistas y representantes embebidos en una empresa.
// Los partícipes se referencian por ID de cliente y se resuelven en cada llamada.
type ShareholderUseCase struct {
	companies repository.CompanyRepository
	clients   repository.ClientRepository
}

// NewShareholderUseCase construye el caso de uso.
func NewShareholderUseCase(companies repository.CompanyRepository, clients repository.ClientRepository) *ShareholderUseCase {
	return &ShareholderUseCase{companies: companies, clients: clients}
}

// companyLookup resultado de cargar la empresa y el cliente referenciado. Los errores se
// conservan por separado para evaluarlos en orden: primero la empresa, luego el cliente.
type companyLookup struct {
	company    *entity.Company
	companyErr error
	client     *entity.Client
	clientErr  error
}

// load busca la empresa y el cliente en paralelo.
func (uc *ShareholderUseCase) load(ctx context.Context, companyID, clientID string) companyLookup {
	var res companyLookup
	var g errgroup.Group
	g.Go(func() error {
		res.company, res.companyErr = uc.companies.FindByID(ctx, companyID)
		return nil
	})
	g.Go(func() error {
		res.client, res.clientErr = uc.clients.FindByID(ctx, clientID)
		return nil
	})
	_ = g.Wait()
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Accionistas
// ──────────────────────────────────────────────────────────────────────────────

// AddShareholder agrega un accionista. El partícipe debe ser un cliente del tipo declarado
// (domain.ErrInvalidParticipant) y no puede estar ya activo en la empresa (domain.ErrConflict).
func (uc *ShareholderUseCase) AddShareholder(ctx context.Context, companyID string, in dto.AddShareholderRequest) (*dto.CompanyResponse, error) {
	if err := validation.Required("partícipe", in.ParticipantID); err != nil {
		return nil, err
	}
	if !entity.IsEntityType(in.ParticipantType) {
		return nil, fmt.Errorf("%w: tipo de partícipe %q no soportado", domain.ErrInvalidInput, in.ParticipantType)
	}
	if err := validation.ValidateOwnershipPercentage(in.OwnershipPercentage); err != nil {
		return nil, err
	}

	res := uc.load(ctx, companyID, in.ParticipantID)
	if res.companyErr != nil {
		return nil, res.companyErr
	}
	if res.clientErr != nil {
		if errors.Is(res.clientErr, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: el cliente %s no existe", domain.ErrInvalidParticipant, in.ParticipantID)
		}
		return nil, res.clientErr
	}
	company, client := res.company, res.client
	if client.EntityType != in.ParticipantType {
		return nil, fmt.Errorf("%w: el cliente %s es de tipo %s, no %s",
			domain.ErrInvalidParticipant, client.ID, client.EntityType, in.ParticipantType)
	}

	shareholder := entity.Shareholder{
		ParticipantID:       client.ID,
		ParticipantType:     in.ParticipantType,
		OwnershipPercentage: in.OwnershipPercentage,
	}
	shareholders, err := collection.AddUnique(company.Shareholders, shareholder, collection.Shareholders, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	company.Shareholders = shareholders
	return uc.save(ctx, company)
}

// UpdateShareholder cambia el porcentaje de participación.
func (uc *ShareholderUseCase) UpdateShareholder(ctx context.Context, companyID, participantID string, in dto.UpdateShareholderRequest) (*dto.CompanyResponse, error) {
	if err := validation.ValidateOwnershipPercentage(in.OwnershipPercentage); err != nil {
		return nil, err
	}
	return uc.modify(ctx, companyID, func(c *entity.Company) error {
		out, err := collection.Update(c.Shareholders, participantID, func(s entity.Shareholder) entity.Shareholder {
			s.OwnershipPercentage = in.OwnershipPercentage
			return s
		}, collection.Shareholders, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Shareholders = out
		return nil
	})
}

// ChangeShareholderState activa o inactiva un accionista.
func (uc *ShareholderUseCase) ChangeShareholderState(ctx context.Context, companyID, participantID, state string) (*dto.CompanyResponse, error) {
	if err := validateGeneralState(state); err != nil {
		return nil, err
	}
	return uc.modify(ctx, companyID, func(c *entity.Company) error {
		out, err := collection.TransitionState(c.Shareholders, participantID, state, collection.Shareholders, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Shareholders = out
		return nil
	})
}

// ListActiveShareholders devuelve los accionistas activos.
func (uc *ShareholderUseCase) ListActiveShareholders(ctx context.Context, companyID string) ([]dto.ShareholderResponse, error) {
	company, err := uc.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	active := collection.FilterByState(company.Shareholders, entity.StateActive, collection.Shareholders)
	out := make([]dto.ShareholderResponse, 0, len(active))
	for _, s := range active {
		out = append(out, shareholderToResponse(s))
	}
	return out, nil
}

// GetShareholder devuelve un accionista por partícipe.
func (uc *ShareholderUseCase) GetShareholder(ctx context.Context, companyID, participantID string) (*dto.ShareholderResponse, error) {
	company, err := uc.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	s, err := collection.FindByKey(company.Shareholders, participantID, collection.Shareholders)
	if err != nil {
		return nil, err
	}
	resp := shareholderToResponse(s)
	return &resp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Representantes
// ──────────────────────────────────────────────────────────────────────────────

// AddRepresentative asigna un cliente persona como representante con el rol indicado.
func (uc *ShareholderUseCase) AddRepresentative(ctx context.Context, companyID string, in dto.AddRepresentativeRequest) (*dto.CompanyResponse, error) {
	if err := validation.Required("cliente", in.ClientID); err != nil {
		return nil, err
	}
	if !entity.IsRepresentativeRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q no soportado", domain.ErrInvalidInput, in.Role)
	}

	res := uc.load(ctx, companyID, in.ClientID)
	if res.companyErr != nil {
		return nil, res.companyErr
	}
	if res.clientErr != nil {
		return nil, res.clientErr
	}
	company, client := res.company, res.client
	if client.EntityType != entity.EntityPerson {
		return nil, fmt.Errorf("%w: el cliente %s es de tipo %s", domain.ErrInvalidRepresentative, client.ID, client.EntityType)
	}

	reps, err := collection.AddUnique(company.Representatives, entity.Representative{ClientID: client.ID, Role: in.Role}, collection.Representatives, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	company.Representatives = reps
	return uc.save(ctx, company)
}

// UpdateRepresentative cambia el rol de un representante.
func (uc *ShareholderUseCase) UpdateRepresentative(ctx context.Context, companyID, clientID string, in dto.UpdateRepresentativeRequest) (*dto.CompanyResponse, error) {
	if !entity.IsRepresentativeRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q no soportado", domain.ErrInvalidInput, in.Role)
	}
	return uc.modify(ctx, companyID, func(c *entity.Company) error {
		out, err := collection.Update(c.Representatives, clientID, func(r entity.Representative) entity.Representative {
			r.Role = in.Role
			return r
		}, collection.Representatives, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Representatives = out
		return nil
	})
}

// ChangeRepresentativeState activa o inactiva un representante.
func (uc *ShareholderUseCase) ChangeRepresentativeState(ctx context.Context, companyID, clientID, state string) (*dto.CompanyResponse, error) {
	if err := validateGeneralState(state); err != nil {
		return nil, err
	}
	return uc.modify(ctx, companyID, func(c *entity.Company) error {
		out, err := collection.TransitionState(c.Representatives, clientID, state, collection.Representatives, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Representatives = out
		return nil
	})
}

// ListActiveRepresentatives devuelve los representantes activos.
func (uc *ShareholderUseCase) ListActiveRepresentatives(ctx context.Context, companyID string) ([]dto.RepresentativeResponse, error) {
	company, err := uc.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	active := collection.FilterByState(company.Representatives, entity.StateActive, collection.Representatives)
	out := make([]dto.RepresentativeResponse, 0, len(active))
	for _, r := range active {
		out = append(out, representativeToResponse(r))
	}
	return out, nil
}

// GetRepresentative devuelve un representante por cliente.
func (uc *ShareholderUseCase) GetRepresentative(ctx context.Context, companyID, clientID string) (*dto.RepresentativeResponse, error) {
	company, err := uc.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	r, err := collection.FindByKey(company.Representatives, clientID, collection.Representatives)
	if err != nil {
		return nil, err
	}
	resp := representativeToResponse(r)
	return &resp, nil
}

func (uc *ShareholderUseCase) modify(ctx context.Context, companyID string, fn func(*entity.Company) error) (*dto.CompanyResponse, error) {
	company, err := uc.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := fn(company); err != nil {
		return nil, err
	}
	return uc.save(ctx, company)
}

func (uc *ShareholderUseCase) save(ctx context.Context, company *entity.Company) (*dto.CompanyResponse, error) {
	if err := uc.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func validateGeneralState(state string) error {
	if state == "" {
		return fmt.Errorf("%w: el estado es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.IsGeneralState(state) {
		return fmt.Errorf("%w: estado %q no soportado", domain.ErrInvalidInput, state)
	}
	return nil
}
