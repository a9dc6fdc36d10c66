package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/validation"
)

// identificationTypes orden en que se busca un cliente por número de identificación.
var identificationTypes = []string{entity.IdentificationCedula, entity.IdentificationRUC, entity.IdentificationPasaporte}

// AccountUseCase expone el servicio de cuentas para clientes ya registrados.
type AccountUseCase struct {
	clients         repository.ClientRepository
	accounts        ports.AccountsGateway
	masterAccountID int
}

// NewAccountUseCase construye el caso de uso; masterAccountID es la cuenta de ahorros por defecto.
func NewAccountUseCase(clients repository.ClientRepository, accounts ports.AccountsGateway, masterAccountID int) *AccountUseCase {
	return &AccountUseCase{clients: clients, accounts: accounts, masterAccountID: masterAccountID}
}

// CreateSavingsAccount abre una cuenta dependiente de la cuenta maestra de ahorros.
func (uc *AccountUseCase) CreateSavingsAccount(ctx context.Context, identification string) (*dto.ClientAccountResponse, error) {
	return uc.CreateAccount(ctx, identification, uc.masterAccountID)
}

// CreateAccount abre una cuenta dependiente de masterAccountID para un cliente existente.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, identification string, masterAccountID int) (*dto.ClientAccountResponse, error) {
	if err := validation.Required("identificación", identification); err != nil {
		return nil, err
	}
	if masterAccountID <= 0 {
		return nil, fmt.Errorf("%w: cuenta maestra %d inválida", domain.ErrInvalidInput, masterAccountID)
	}
	key, err := uc.findClientKey(ctx, identification)
	if err != nil {
		return nil, err
	}
	account, err := uc.accounts.CreateDependentAccount(ctx, masterAccountID, key.Number)
	if err != nil {
		return nil, err
	}
	return clientAccountToResponse(account), nil
}

// GetClientAccount consulta una cuenta dependiente.
func (uc *AccountUseCase) GetClientAccount(ctx context.Context, id int) (*dto.ClientAccountResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de cuenta %d inválido", domain.ErrInvalidInput, id)
	}
	account, err := uc.accounts.FetchClientAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return clientAccountToResponse(account), nil
}

// GetMasterAccount consulta una cuenta maestra.
func (uc *AccountUseCase) GetMasterAccount(ctx context.Context, id int) (*dto.AccountResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id de cuenta maestra %d inválido", domain.ErrInvalidInput, id)
	}
	account, err := uc.accounts.FetchAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return accountToResponse(account), nil
}

func (uc *AccountUseCase) findClientKey(ctx context.Context, number string) (entity.IdentityKey, error) {
	for _, t := range identificationTypes {
		key := entity.NewIdentityKey(t, number)
		ok, err := uc.clients.ExistsByKey(ctx, key)
		if err != nil {
			return entity.IdentityKey{}, err
		}
		if ok {
			return key, nil
		}
	}
	return entity.IdentityKey{}, fmt.Errorf("%w: no existe cliente con identificación %s", domain.ErrNotFound, number)
}
