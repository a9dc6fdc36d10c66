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

// maxSearchResults límite de resultados en búsquedas por nombre.
const maxSearchResults = 100

// PersonUseCase casos de uso de personas naturales.
type PersonUseCase struct {
	repo repository.PersonRepository
}

// NewPersonUseCase construye el caso de uso con el puerto de persistencia.
func NewPersonUseCase(repo repository.PersonRepository) *PersonUseCase {
	return &PersonUseCase{repo: repo}
}

// Create registra una persona. Devuelve domain.ErrConflict si la identificación ya existe.
func (uc *PersonUseCase) Create(ctx context.Context, in dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	key := entity.NewIdentityKey(in.IdentificationType, in.IdentificationNumber)
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := validation.Required("nombre", in.Name); err != nil {
		return nil, err
	}
	if err := validation.Required("nacionalidad", in.Nationality); err != nil {
		return nil, err
	}
	if err := validatePersonCatalogs(in.Gender, in.MaritalStatus, in.EducationLevel, in.Email); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe una persona con identificación %s", domain.ErrConflict, key)
	}

	now := time.Now().UTC()
	person := &entity.Person{
		ID:                   uuid.New().String(),
		IdentificationType:   key.Type,
		IdentificationNumber: key.Number,
		Name:                 textnorm.Clean(in.Name),
		Nationality:          in.Nationality,
		Gender:               in.Gender,
		BirthDate:            in.BirthDate,
		MaritalStatus:        in.MaritalStatus,
		EducationLevel:       in.EducationLevel,
		Email:                in.Email,
		State:                entity.StateActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Save(ctx, person); err != nil {
		return nil, err
	}
	return entityToPersonResponse(person), nil
}

// GetByKey obtiene una persona por su identificación.
func (uc *PersonUseCase) GetByKey(ctx context.Context, key entity.IdentityKey) (*dto.PersonResponse, error) {
	person, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return entityToPersonResponse(person), nil
}

// Search busca personas por nombre, sin distinguir tildes ni mayúsculas.
func (uc *PersonUseCase) Search(ctx context.Context, name string) ([]dto.PersonResponse, error) {
	term := textnorm.Clean(name)
	if err := validation.Required("nombre", term); err != nil {
		return nil, err
	}
	list, err := uc.repo.SearchByName(ctx, term, maxSearchResults)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *entityToPersonResponse(p))
	}
	return out, nil
}

// Update modifica los datos demográficos. La identificación y la nacionalidad no cambian.
func (uc *PersonUseCase) Update(ctx context.Context, key entity.IdentityKey, in dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	if err := validatePersonCatalogs(in.Gender, in.MaritalStatus, in.EducationLevel, in.Email); err != nil {
		return nil, err
	}
	if in.State != "" && !entity.IsPersonState(in.State) {
		return nil, fmt.Errorf("%w: estado %q no soportado", domain.ErrInvalidInput, in.State)
	}
	person, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		person.Name = textnorm.Clean(in.Name)
	}
	if in.Gender != "" {
		person.Gender = in.Gender
	}
	if in.BirthDate != nil {
		person.BirthDate = in.BirthDate
	}
	if in.MaritalStatus != "" {
		person.MaritalStatus = in.MaritalStatus
	}
	if in.EducationLevel != "" {
		person.EducationLevel = in.EducationLevel
	}
	if in.Email != "" {
		person.Email = in.Email
	}
	if in.State != "" {
		person.State = in.State
	}
	if err := uc.repo.Save(ctx, person); err != nil {
		return nil, err
	}
	return entityToPersonResponse(person), nil
}

func validatePersonCatalogs(gender, marital, education, email string) error {
	switch gender {
	case "", entity.GenderMale, entity.GenderFemale, entity.GenderOther:
	default:
		return fmt.Errorf("%w: género %q no soportado", domain.ErrInvalidInput, gender)
	}
	if marital != "" && !entity.Contains(entity.MaritalStatuses, marital) {
		return fmt.Errorf("%w: estado civil %q no soportado", domain.ErrInvalidInput, marital)
	}
	if education != "" && !entity.Contains(entity.EducationLevels, education) {
		return fmt.Errorf("%w: nivel de estudios %q no soportado", domain.ErrInvalidInput, education)
	}
	return validation.ValidateEmail(email)
}
