package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/validation"
	"github.com/jhoicas/Clientes-api/pkg/textnorm"
)

// CompanyUseCase aplica reglas de negocio para empresas.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create registra una empresa sin accionistas ni representantes.
// Devuelve domain.ErrConflict si la identificación ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	key := entity.NewIdentityKey(in.IdentificationType, in.IdentificationNumber)
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := validation.Required("razón social", in.LegalName); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe una empresa con identificación %s", domain.ErrConflict, key)
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:                   uuid.New().String(),
		IdentificationType:   key.Type,
		IdentificationNumber: key.Number,
		TradeName:            textnorm.Clean(in.TradeName),
		LegalName:            textnorm.Clean(in.LegalName),
		CompanyType:          in.CompanyType,
		IncorporationDate:    in.IncorporationDate,
		Email:                in.Email,
		EconomicSector:       in.EconomicSector,
		State:                entity.StateActive,
		Shareholders:         []entity.Shareholder{},
		Representatives:      []entity.Representative{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Save(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByKey obtiene una empresa por su identificación.
func (uc *CompanyUseCase) GetByKey(ctx context.Context, key entity.IdentityKey) (*dto.CompanyResponse, error) {
	company, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// SearchByLegalName busca por razón social.
func (uc *CompanyUseCase) SearchByLegalName(ctx context.Context, name string) ([]dto.CompanyResponse, error) {
	return uc.search(ctx, name, uc.repo.SearchByLegalName)
}

// SearchByTradeName busca por nombre comercial.
func (uc *CompanyUseCase) SearchByTradeName(ctx context.Context, name string) ([]dto.CompanyResponse, error) {
	return uc.search(ctx, name, uc.repo.SearchByTradeName)
}

func (uc *CompanyUseCase) search(
	ctx context.Context,
	name string,
	find func(context.Context, string, int) ([]*entity.Company, error),
) ([]dto.CompanyResponse, error) {
	term := textnorm.Clean(name)
	if err := validation.Required("nombre", term); err != nil {
		return nil, err
	}
	list, err := find(ctx, term, maxSearchResults)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *entityToCompanyResponse(c))
	}
	return out, nil
}

// Update modifica los datos de la empresa. Accionistas y representantes se editan con ShareholderUseCase.
func (uc *CompanyUseCase) Update(ctx context.Context, key entity.IdentityKey, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if in.State != "" && !entity.IsClientState(in.State) {
		return nil, fmt.Errorf("%w: estado %q no soportado", domain.ErrInvalidInput, in.State)
	}
	company, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if in.TradeName != "" {
		company.TradeName = textnorm.Clean(in.TradeName)
	}
	if in.LegalName != "" {
		company.LegalName = textnorm.Clean(in.LegalName)
	}
	if in.CompanyType != "" {
		company.CompanyType = in.CompanyType
	}
	if in.Email != "" {
		company.Email = in.Email
	}
	if in.EconomicSector != "" {
		company.EconomicSector = in.EconomicSector
	}
	if in.State != "" {
		company.State = in.State
	}
	if err := uc.repo.Save(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}
