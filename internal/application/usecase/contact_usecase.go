package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/domain/validation"
)

// ContactUseCase administra el contacto transaccional (0..1) de un cliente.
type ContactUseCase struct {
	clients repository.ClientRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(clients repository.ClientRepository) *ContactUseCase {
	return &ContactUseCase{clients: clients}
}

// Create registra el contacto. domain.ErrConflict si el cliente ya tiene uno.
func (uc *ContactUseCase) Create(ctx context.Context, clientID string, in dto.TransactionalContactRequest) (*dto.TransactionalContactResponse, error) {
	phone, email := strings.TrimSpace(in.Phone), strings.TrimSpace(in.Email)
	if phone == "" && email == "" {
		return nil, fmt.Errorf("%w: se requiere teléfono o correo", domain.ErrInvalidInput)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	return uc.modify(ctx, clientID, func(c *entity.Client) error {
		if c.TransactionalContact != nil {
			return fmt.Errorf("%w: el cliente %s ya tiene contacto transaccional", domain.ErrConflict, c.ID)
		}
		now := time.Now().UTC()
		c.TransactionalContact = &entity.TransactionalContact{
			Phone:     phone,
			Email:     email,
			State:     entity.StateActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	})
}

// Get devuelve el contacto del cliente.
func (uc *ContactUseCase) Get(ctx context.Context, clientID string) (*dto.TransactionalContactResponse, error) {
	client, err := uc.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TransactionalContact == nil {
		return nil, errNoContact(client.ID)
	}
	return contactToResponse(client.TransactionalContact), nil
}

// Update reemplaza teléfono y/o correo.
func (uc *ContactUseCase) Update(ctx context.Context, clientID string, in dto.TransactionalContactRequest) (*dto.TransactionalContactResponse, error) {
	phone, email := strings.TrimSpace(in.Phone), strings.TrimSpace(in.Email)
	if phone == "" && email == "" {
		return nil, fmt.Errorf("%w: se requiere teléfono o correo", domain.ErrInvalidInput)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	return uc.modify(ctx, clientID, func(c *entity.Client) error {
		if c.TransactionalContact == nil {
			return errNoContact(c.ID)
		}
		tc := *c.TransactionalContact
		if phone != "" {
			tc.Phone = phone
		}
		if email != "" {
			tc.Email = email
		}
		tc.UpdatedAt = time.Now().UTC()
		c.TransactionalContact = &tc
		return nil
	})
}

// ChangeState activa o inactiva el contacto.
func (uc *ContactUseCase) ChangeState(ctx context.Context, clientID, state string) (*dto.TransactionalContactResponse, error) {
	if err := validateGeneralState(state); err != nil {
		return nil, err
	}
	return uc.modify(ctx, clientID, func(c *entity.Client) error {
		if c.TransactionalContact == nil {
			return errNoContact(c.ID)
		}
		tc := *c.TransactionalContact
		tc.State = state
		tc.UpdatedAt = time.Now().UTC()
		c.TransactionalContact = &tc
		return nil
	})
}

// Delete elimina el contacto del cliente.
func (uc *ContactUseCase) Delete(ctx context.Context, clientID string) error {
	client, err := uc.clients.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.TransactionalContact == nil {
		return errNoContact(client.ID)
	}
	client.TransactionalContact = nil
	return uc.clients.Save(ctx, client)
}

func (uc *ContactUseCase) modify(ctx context.Context, clientID string, fn func(*entity.Client) error) (*dto.TransactionalContactResponse, error) {
	client, err := uc.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := fn(client); err != nil {
		return nil, err
	}
	if err := uc.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return contactToResponse(client.TransactionalContact), nil
}

func errNoContact(clientID string) error {
	return fmt.Errorf("%w: el cliente %s no tiene contacto transaccional", domain.ErrNotFound, clientID)
}
