package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/collection"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/validation"
	"github.com/jhoicas/Clientes-api/pkg/logger"
	"github.com/jhoicas/Clientes-api/pkg/textnorm"
)

// ClientConfig parámetros de la apertura automática de cuenta.
type ClientConfig struct {
	MasterAccountID    int
	AccountCallTimeout time.Duration
}

// ClientUseCase orquesta la activación de clientes y la edición de sus subcolecciones.
type ClientUseCase struct {
	clients   repository.ClientRepository
	persons   repository.PersonRepository
	companies repository.CompanyRepository
	reference ports.ReferenceValidator
	accounts  ports.AccountsGateway
	cfg       ClientConfig
	log       *logger.Logger
}

// NewClientUseCase construye el orquestador de clientes.
func NewClientUseCase(
	clients repository.ClientRepository,
	persons repository.PersonRepository,
	companies repository.CompanyRepository,
	reference ports.ReferenceValidator,
	accounts ports.AccountsGateway,
	cfg ClientConfig,
	log *logger.Logger,
) *ClientUseCase {
	if cfg.AccountCallTimeout <= 0 {
		cfg.AccountCallTimeout = 15 * time.Second
	}
	return &ClientUseCase{
		clients:   clients,
		persons:   persons,
		companies: companies,
		reference: reference,
		accounts:  accounts,
		cfg:       cfg,
		log:       log.Component("client_usecase"),
	}
}

// CreateFromPerson activa como cliente a una persona registrada y abre su cuenta dependiente.
//
// Si el cliente se guardó pero la cuenta no pudo abrirse, devuelve la respuesta con el
// cliente persistido junto con un error que es domain.ErrExternalServiceUnavailable.
func (uc *ClientUseCase) CreateFromPerson(ctx context.Context, key entity.IdentityKey, in dto.ClientDraftRequest) (*dto.ClientWithAccountResponse, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidateInternalScore(in.InternalScore); err != nil {
		return nil, err
	}
	if err := validation.ValidateClientDraft(in.Segment, in.AffiliationChannel, in.ClientType); err != nil {
		return nil, err
	}
	person, err := uc.persons.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureNotClient(ctx, key); err != nil {
		return nil, err
	}

	nationality := person.Nationality
	if in.Nationality != "" {
		nationality = in.Nationality
	}
	if err := validation.Required("nacionalidad", nationality); err != nil {
		return nil, err
	}
	if err := uc.reference.ValidateCountry(ctx, nationality); err != nil {
		return nil, fmt.Errorf("%w: nacionalidad %q: %w", domain.ErrInvalidInput, nationality, err)
	}

	client := newClient(in, entity.ClientTypeNatural)
	client.EntityType = entity.EntityPerson
	client.EntityID = person.ID
	client.Name = person.Name
	client.Nationality = nationality
	client.IdentificationType = person.IdentificationType
	client.IdentificationNumber = person.IdentificationNumber
	return uc.persistAndOpenAccount(ctx, client)
}

// CreateFromCompany activa como cliente a una empresa registrada y abre su cuenta dependiente.
// El score interno es opcional; si viene, debe estar en rango.
func (uc *ClientUseCase) CreateFromCompany(ctx context.Context, key entity.IdentityKey, in dto.ClientDraftRequest) (*dto.ClientWithAccountResponse, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidateOptionalScore(in.InternalScore); err != nil {
		return nil, err
	}
	if err := validation.ValidateClientDraft(in.Segment, in.AffiliationChannel, in.ClientType); err != nil {
		return nil, err
	}
	company, err := uc.companies.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureNotClient(ctx, key); err != nil {
		return nil, err
	}

	client := newClient(in, entity.ClientTypeLegal)
	client.EntityType = entity.EntityCompany
	client.EntityID = company.ID
	client.Name = company.LegalName
	client.Nationality = in.Nationality
	client.IdentificationType = company.IdentificationType
	client.IdentificationNumber = company.IdentificationNumber
	return uc.persistAndOpenAccount(ctx, client)
}

func newClient(in dto.ClientDraftRequest, clientType string) *entity.Client {
	now := time.Now().UTC()
	return &entity.Client{
		ID:                 uuid.New().String(),
		ClientType:         clientType,
		Segment:            in.Segment,
		AffiliationChannel: in.AffiliationChannel,
		Comments:           in.Comments,
		InternalScore:      in.InternalScore,
		State:              entity.StateActive,
		Phones:             []entity.Phone{},
		Addresses:          []entity.Address{},
		Branches:           []entity.BranchAssociation{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (uc *ClientUseCase) ensureNotClient(ctx context.Context, key entity.IdentityKey) error {
	exists, err := uc.clients.ExistsByKey(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: ya existe un cliente con identificación %s", domain.ErrConflict, key)
	}
	return nil
}

// persistAndOpenAccount guarda el cliente y luego pide la cuenta dependiente. La llamada remota
// no se cancela si el llamador se desconecta; tiene su propio presupuesto de tiempo.
func (uc *ClientUseCase) persistAndOpenAccount(ctx context.Context, client *entity.Client) (*dto.ClientWithAccountResponse, error) {
	if err := uc.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	out := &dto.ClientWithAccountResponse{Client: entityToClientResponse(client)}

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.AccountCallTimeout)
	defer cancel()
	account, err := uc.accounts.CreateDependentAccount(actx, uc.cfg.MasterAccountID, client.IdentificationNumber)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("client_id", client.ID).
			Int("master_account_id", uc.cfg.MasterAccountID).
			Msg("cliente creado sin cuenta dependiente")
		out.AccountError = err.Error()
		if !errors.Is(err, domain.ErrExternalServiceUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrExternalServiceUnavailable, err)
		}
		return out, fmt.Errorf("cliente %s creado sin cuenta: %w", client.ID, err)
	}
	out.Account = clientAccountToResponse(account)
	uc.log.Info().Str("client_id", client.ID).Int("account_id", account.ID).Msg("cliente activado")
	return out, nil
}

// GetByID obtiene un cliente por su ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToClientResponse(client), nil
}

// GetByKey obtiene un cliente por su identificación.
func (uc *ClientUseCase) GetByKey(ctx context.Context, key entity.IdentityKey) (*dto.ClientResponse, error) {
	client, err := uc.clients.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return entityToClientResponse(client), nil
}

// Search busca clientes por nombre.
func (uc *ClientUseCase) Search(ctx context.Context, name string) ([]dto.ClientResponse, error) {
	term := textnorm.Clean(name)
	if err := validation.Required("nombre", term); err != nil {
		return nil, err
	}
	list, err := uc.clients.SearchByName(ctx, term, maxSearchResults)
	if err != nil {
		return nil, err
	}
	return clientsToResponses(list), nil
}

// Update modifica los datos comerciales del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, key entity.IdentityKey, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := validation.ValidateClientDraft(in.Segment, in.AffiliationChannel, in.ClientType); err != nil {
		return nil, err
	}
	if err := validation.ValidateOptionalScore(in.InternalScore); err != nil {
		return nil, err
	}
	if in.State != "" && !entity.IsClientState(in.State) {
		return nil, fmt.Errorf("%w: estado %q no soportado", domain.ErrInvalidInput, in.State)
	}
	return uc.modify(ctx, key, func(c *entity.Client) error {
		if in.ClientType != "" {
			c.ClientType = in.ClientType
		}
		if in.Segment != "" {
			c.Segment = in.Segment
		}
		if in.AffiliationChannel != "" {
			c.AffiliationChannel = in.AffiliationChannel
		}
		if in.Comments != "" {
			c.Comments = in.Comments
		}
		if in.State != "" {
			c.State = in.State
		}
		if in.InternalScore != nil {
			c.InternalScore = in.InternalScore
		}
		return nil
	})
}

// AddPhone agrega un teléfono. Un número activo repetido devuelve collection.ErrDuplicateSubEntity.
func (uc *ClientUseCase) AddPhone(ctx context.Context, key entity.IdentityKey, in dto.AddPhoneRequest) (*dto.ClientResponse, error) {
	if err := validation.ValidatePhone(in.Type, in.Number); err != nil {
		return nil, err
	}
	return uc.modify(ctx, key, func(c *entity.Client) error {
		phones, err := collection.AddUnique(c.Phones, entity.Phone{Type: in.Type, Number: textnorm.Clean(in.Number)}, collection.Phones, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Phones = phones
		return nil
	})
}

// RemovePhone marca como INACTIVE el teléfono en la posición index; la colección conserva su longitud.
func (uc *ClientUseCase) RemovePhone(ctx context.Context, key entity.IdentityKey, index int) (*dto.ClientResponse, error) {
	return uc.modify(ctx, key, func(c *entity.Client) error {
		phones, err := collection.TransitionAt(c.Phones, index, entity.StateInactive, collection.Phones, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Phones = phones
		return nil
	})
}

// AddAddress valida la ubicación contra los catálogos generales y agrega la dirección.
func (uc *ClientUseCase) AddAddress(ctx context.Context, key entity.IdentityKey, in dto.AddAddressRequest) (*dto.ClientResponse, error) {
	if err := validation.ValidateAddress(in.Type, in.Line1, in.ProvinceCode); err != nil {
		return nil, err
	}
	if err := uc.reference.ValidateLocation(ctx, in.ProvinceCode, in.CantonCode, in.ParishCode); err != nil {
		return nil, fmt.Errorf("validar ubicación: %w", err)
	}
	address := entity.Address{
		Type:         in.Type,
		Line1:        textnorm.Clean(in.Line1),
		Line2:        textnorm.Clean(in.Line2),
		PostalCode:   in.PostalCode,
		ProvinceCode: in.ProvinceCode,
		CantonCode:   in.CantonCode,
		ParishCode:   in.ParishCode,
	}
	return uc.modify(ctx, key, func(c *entity.Client) error {
		c.Addresses = collection.Append(c.Addresses, address, collection.Addresses, time.Now().UTC())
		return nil
	})
}

// AddBranch valida la sucursal contra los catálogos generales y la asocia al cliente.
func (uc *ClientUseCase) AddBranch(ctx context.Context, key entity.IdentityKey, in dto.AddBranchRequest) (*dto.ClientResponse, error) {
	code := textnorm.Clean(in.BranchCode)
	if err := validation.Required("código de sucursal", code); err != nil {
		return nil, err
	}
	if err := uc.reference.ValidateBranch(ctx, code); err != nil {
		return nil, fmt.Errorf("validar sucursal: %w", err)
	}
	return uc.modify(ctx, key, func(c *entity.Client) error {
		c.Branches = collection.Append(c.Branches, entity.BranchAssociation{BranchCode: code}, collection.Branches, time.Now().UTC())
		return nil
	})
}

// ListByEntityType lista clientes respaldados por personas o por empresas.
func (uc *ClientUseCase) ListByEntityType(ctx context.Context, entityType string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	if !entity.IsEntityType(entityType) {
		return nil, fmt.Errorf("%w: tipo de entidad %q no soportado", domain.ErrInvalidInput, entityType)
	}
	page.DefaultPage()
	list, err := uc.clients.ListByEntityType(ctx, entityType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.clients.CountByEntityType(ctx, entityType)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{
		Items: clientsToResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CountByEntityType cuenta clientes por tipo de entidad.
func (uc *ClientUseCase) CountByEntityType(ctx context.Context, entityType string) (*dto.CountResponse, error) {
	if !entity.IsEntityType(entityType) {
		return nil, fmt.Errorf("%w: tipo de entidad %q no soportado", domain.ErrInvalidInput, entityType)
	}
	total, err := uc.clients.CountByEntityType(ctx, entityType)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Total: total}, nil
}

// ListByIdentificationType lista clientes por tipo de identificación.
func (uc *ClientUseCase) ListByIdentificationType(ctx context.Context, idType string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	key := entity.NewIdentityKey(idType, "-")
	if err := key.Validate(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.clients.ListByIdentificationType(ctx, key.Type, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.clients.CountByIdentificationType(ctx, key.Type)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{
		Items: clientsToResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CountByIdentificationType cuenta clientes por tipo de identificación.
func (uc *ClientUseCase) CountByIdentificationType(ctx context.Context, idType string) (*dto.CountResponse, error) {
	key := entity.NewIdentityKey(idType, "-")
	if err := key.Validate(); err != nil {
		return nil, err
	}
	total, err := uc.clients.CountByIdentificationType(ctx, key.Type)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Total: total}, nil
}

// modify carga el cliente, aplica fn sobre la copia y la guarda con control de versión.
func (uc *ClientUseCase) modify(ctx context.Context, key entity.IdentityKey, fn func(*entity.Client) error) (*dto.ClientResponse, error) {
	client, err := uc.clients.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := fn(client); err != nil {
		return nil, err
	}
	if err := uc.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return entityToClientResponse(client), nil
}
