package gateway

import (
	"context"
	"strconv"

	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

var _ ports.RemoteClient = (*FailFastRemoteClient)(nil)

// FailFastRemoteClient responde ErrExternalServiceUnavailable a toda operación sin tocar la red.
// Se usa cuando el gateway está deshabilitado o sin URLs configuradas.
type FailFastRemoteClient struct {
	Reason string
}

func (f FailFastRemoteClient) fail(service, op string, params map[string]string) error {
	e := &domain.ExternalError{
		Kind:      domain.ErrExternalServiceUnavailable,
		Service:   service,
		Operation: op,
		Params:    params,
	}
	if f.Reason != "" {
		e.Body = f.Reason
	}
	return e
}

func (f FailFastRemoteClient) ValidateBranch(_ context.Context, code string) error {
	return f.fail(serviceGeneral, "validateBranch", map[string]string{"branchCode": code})
}

func (f FailFastRemoteClient) ValidateCountry(_ context.Context, code string) error {
	return f.fail(serviceGeneral, "validateCountry", map[string]string{"countryCode": code})
}

func (f FailFastRemoteClient) ValidateLocation(_ context.Context, province, canton, parish string) error {
	return f.fail(serviceGeneral, "validateLocation", map[string]string{"province": province, "canton": canton, "parish": parish})
}

func (f FailFastRemoteClient) CreateDependentAccount(_ context.Context, masterAccountID int, clientIdentification string) (*entity.ClientAccount, error) {
	return nil, f.fail(serviceAccounts, "createDependentAccount", map[string]string{
		"masterAccountId":      strconv.Itoa(masterAccountID),
		"clientIdentification": clientIdentification,
	})
}

func (f FailFastRemoteClient) FetchAccount(_ context.Context, accountID int) (*entity.Account, error) {
	return nil, f.fail(serviceAccounts, "fetchAccount", map[string]string{"accountId": strconv.Itoa(accountID)})
}

func (f FailFastRemoteClient) FetchClientAccount(_ context.Context, clientAccountID int) (*entity.ClientAccount, error) {
	return nil, f.fail(serviceAccounts, "fetchClientAccount", map[string]string{"clientAccountId": strconv.Itoa(clientAccountID)})
}

// New elige la implementación según la configuración: HTTP cuando está habilitado y ambas URLs
// existen, FailFast en cualquier otro caso.
func New(cfg Config, log *logger.Logger, metrics *Metrics) ports.RemoteClient {
	switch {
	case !cfg.Enabled:
		return FailFastRemoteClient{Reason: "gateway deshabilitado"}
	case cfg.AccountsBaseURL == "" || cfg.GeneralBaseURL == "":
		if log != nil {
			log.Warn().Msg("ACCOUNTS_BASE_URL o GENERAL_BASE_URL vacíos: servicios remotos en modo fail-fast")
		}
		return FailFastRemoteClient{Reason: "URL base no configurada"}
	}
	return NewHTTPRemoteClient(cfg, log, metrics)
}
