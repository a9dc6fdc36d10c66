package ports

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// ReferenceValidator valida códigos contra el servicio de catálogos generales.
// Las validaciones no tienen efectos secundarios; un rechazo se reporta como
// domain.ErrRemoteValidationFailed o domain.ErrRemoteNotFound.
type ReferenceValidator interface {
	ValidateBranch(ctx context.Context, code string) error
	ValidateCountry(ctx context.Context, code string) error
	// ValidateLocation exige provincia; cantón y parroquia son opcionales.
	ValidateLocation(ctx context.Context, province, canton, parish string) error
}

// AccountsGateway opera contra el servicio de cuentas.
type AccountsGateway interface {
	// CreateDependentAccount abre una cuenta dependiente de la cuenta maestra. Tiene efectos
	// secundarios: las implementaciones no deben reintentarla.
	CreateDependentAccount(ctx context.Context, masterAccountID int, clientIdentification string) (*entity.ClientAccount, error)
	FetchAccount(ctx context.Context, accountID int) (*entity.Account, error)
	FetchClientAccount(ctx context.Context, clientAccountID int) (*entity.ClientAccount, error)
}

// RemoteClient agrupa ambos servicios remotos. Implementaciones: gateway.HTTPRemoteClient
// y gateway.FailFastRemoteClient.
type RemoteClient interface {
	ReferenceValidator
	AccountsGateway
}
