package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/Clientes-api/internal/domain"
)

// ValidateBranch verifica que la sucursal exista (2xx = válida).
func (c *HTTPRemoteClient) ValidateBranch(ctx context.Context, code string) error {
	return c.execute(ctx, call{
		service:    c.general,
		op:         "validateBranch",
		method:     http.MethodGet,
		path:       "/api/externo/sucursales/" + url.PathEscape(code),
		params:     map[string]string{"branchCode": code},
		idempotent: true,
	}, nil)
}

// ValidateCountry verifica que el código de país exista (2xx = válido).
func (c *HTTPRemoteClient) ValidateCountry(ctx context.Context, code string) error {
	return c.execute(ctx, call{
		service:    c.general,
		op:         "validateCountry",
		method:     http.MethodGet,
		path:       "/api/externo/paises/" + url.PathEscape(code),
		params:     map[string]string{"countryCode": code},
		idempotent: true,
	}, nil)
}

// ValidateLocation verifica la jerarquía provincia/cantón/parroquia. El servicio responde un booleano.
func (c *HTTPRemoteClient) ValidateLocation(ctx context.Context, province, canton, parish string) error {
	params := map[string]string{"province": province, "canton": canton, "parish": parish}
	var valid *bool
	err := c.execute(ctx, call{
		service: c.general,
		op:      "validateLocation",
		method:  http.MethodGet,
		path:    "/locacion/validar",
		query: map[string]string{
			"codigoProvincia": province,
			"codigoCanton":    canton,
			"codigoParroquia": parish,
		},
		params:     params,
		idempotent: true,
	}, &valid)
	if err != nil {
		return err
	}
	if valid != nil && !*valid {
		return &domain.ExternalError{
			Kind:      domain.ErrRemoteValidationFailed,
			Service:   serviceGeneral,
			Operation: "validateLocation",
			Params:    params,
			Status:    http.StatusOK,
			Body:      "false",
		}
	}
	return nil
}
