package gateway

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

type createClientAccountRequest struct {
	IDCuenta  int    `json:"idCuenta"`
	IDCliente string `json:"idCliente"`
}

type masterAccountResponse struct {
	ID                int        `json:"id"`
	TipoCuentaID      int        `json:"tipoCuentaId"`
	TasaInteresID     int        `json:"tasaInteresId"`
	CodigoCuenta      string     `json:"codigoCuenta"`
	Nombre            string     `json:"nombre"`
	Descripcion       string     `json:"descripcion"`
	FechaCreacion     *time.Time `json:"fechaCreacion"`
	FechaModificacion *time.Time `json:"fechaModificacion"`
	Estado            string     `json:"estado"`
	Version           int64      `json:"version"`
}

type clientAccountResponse struct {
	ID       int `json:"id"`
	IDCuenta *struct {
		ID           int    `json:"id"`
		CodigoCuenta string `json:"codigoCuenta"`
		Nombre       string `json:"nombre"`
	} `json:"idCuenta"`
	IDCliente       string          `json:"idCliente"`
	NumeroCuenta    string          `json:"numeroCuenta"`
	SaldoDisponible decimal.Decimal `json:"saldoDisponible"`
	SaldoContable   decimal.Decimal `json:"saldoContable"`
	FechaApertura   *time.Time      `json:"fechaApertura"`
	Estado          string          `json:"estado"`
	Version         int64           `json:"version"`
}

func (r *clientAccountResponse) toEntity() *entity.ClientAccount {
	a := &entity.ClientAccount{
		ID:                   r.ID,
		ClientIdentification: r.IDCliente,
		AccountNumber:        r.NumeroCuenta,
		AvailableBalance:     r.SaldoDisponible,
		BookBalance:          r.SaldoContable,
		OpeningDate:          r.FechaApertura,
		State:                r.Estado,
		Version:              r.Version,
	}
	if r.IDCuenta != nil {
		a.MasterAccountID = r.IDCuenta.ID
		a.MasterAccountCode = r.IDCuenta.CodigoCuenta
		a.MasterAccountName = r.IDCuenta.Nombre
	}
	return a
}

// CreateDependentAccount abre la cuenta del cliente. Un único intento: la operación tiene efectos
// secundarios y el servicio de cuentas no reconoce una clave de idempotencia.
func (c *HTTPRemoteClient) CreateDependentAccount(ctx context.Context, masterAccountID int, clientIdentification string) (*entity.ClientAccount, error) {
	var resp clientAccountResponse
	err := c.execute(ctx, call{
		service: c.accounts,
		op:      "createDependentAccount",
		method:  http.MethodPost,
		path:    "/v1/cuentas-clientes",
		body:    createClientAccountRequest{IDCuenta: masterAccountID, IDCliente: clientIdentification},
		params: map[string]string{
			"masterAccountId":      strconv.Itoa(masterAccountID),
			"clientIdentification": clientIdentification,
		},
		idempotent: false,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}

// FetchAccount obtiene la cuenta maestra por ID.
func (c *HTTPRemoteClient) FetchAccount(ctx context.Context, accountID int) (*entity.Account, error) {
	var resp masterAccountResponse
	err := c.execute(ctx, call{
		service:    c.accounts,
		op:         "fetchAccount",
		method:     http.MethodGet,
		path:       "/api/v1/cuentas/" + strconv.Itoa(accountID),
		params:     map[string]string{"accountId": strconv.Itoa(accountID)},
		idempotent: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &entity.Account{
		ID:             resp.ID,
		AccountTypeID:  resp.TipoCuentaID,
		InterestRateID: resp.TasaInteresID,
		Code:           resp.CodigoCuenta,
		Name:           resp.Nombre,
		Description:    resp.Descripcion,
		CreatedAt:      resp.FechaCreacion,
		ModifiedAt:     resp.FechaModificacion,
		State:          resp.Estado,
		Version:        resp.Version,
	}, nil
}

// FetchClientAccount obtiene una cuenta de cliente por ID.
func (c *HTTPRemoteClient) FetchClientAccount(ctx context.Context, clientAccountID int) (*entity.ClientAccount, error) {
	var resp clientAccountResponse
	err := c.execute(ctx, call{
		service:    c.accounts,
		op:         "fetchClientAccount",
		method:     http.MethodGet,
		path:       "/api/v1/cuentas-clientes/" + strconv.Itoa(clientAccountID),
		params:     map[string]string{"clientAccountId": strconv.Itoa(clientAccountID)},
		idempotent: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}
