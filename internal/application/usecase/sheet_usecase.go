package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// ClientSheetUseCase genera la ficha PDF de un cliente.
type ClientSheetUseCase struct {
	clients   repository.ClientRepository
	generator ports.ClientSheetGenerator
}

// NewClientSheetUseCase construye el caso de uso.
func NewClientSheetUseCase(clients repository.ClientRepository, generator ports.ClientSheetGenerator) *ClientSheetUseCase {
	return &ClientSheetUseCase{clients: clients, generator: generator}
}

// Generate devuelve los bytes del PDF.
func (uc *ClientSheetUseCase) Generate(ctx context.Context, clientID string) ([]byte, error) {
	client, err := uc.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.Generate(client)
	if err != nil {
		return nil, fmt.Errorf("generar ficha del cliente %s: %w", client.ID, err)
	}
	return pdf, nil
}
