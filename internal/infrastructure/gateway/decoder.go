package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jhoicas/Clientes-api/internal/domain"
)

const maxErrorBody = 512

// remoteErrorBody formatos de error conocidos de los servicios remotos.
type remoteErrorBody struct {
	Message string `json:"message"`
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
	Codigo  any    `json:"codigo"`
}

// decodeError traduce una respuesta no-2xx a la taxonomía de errores del dominio.
// 404 -> ErrRemoteNotFound, 400/422 -> ErrRemoteValidationFailed, resto -> ErrExternalServiceUnavailable.
func decodeError(service string, status int, body []byte) *domain.ExternalError {
	e := &domain.ExternalError{
		Service: service,
		Status:  status,
		Body:    summarize(body),
	}
	switch status {
	case http.StatusNotFound:
		e.Kind = domain.ErrRemoteNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e.Kind = domain.ErrRemoteValidationFailed
	default:
		e.Kind = domain.ErrExternalServiceUnavailable
	}
	return e
}

func summarize(body []byte) string {
	var parsed remoteErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, msg := range []string{parsed.Message, parsed.Mensaje, parsed.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return s
}
