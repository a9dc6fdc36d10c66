package ports

import "github.com/jhoicas/Clientes-api/internal/domain/entity"

// ClientSheetGenerator genera la ficha del cliente en PDF.
type ClientSheetGenerator interface {
	Generate(client *entity.Client) ([]byte, error)
}
