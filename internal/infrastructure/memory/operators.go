package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorStore)(nil)

// OperatorStore repositorio de operadores en memoria, indexado por username.
type OperatorStore struct {
	mu   sync.RWMutex
	byUser map[string]entity.Operator
}

// NewOperatorStore construye un OperatorStore vacío.
func NewOperatorStore() *OperatorStore {
	return &OperatorStore{byUser: make(map[string]entity.Operator)}
}

func (s *OperatorStore) Create(ctx context.Context, op *entity.Operator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUser[op.Username]; ok {
		return fmt.Errorf("operador %s: %w", op.Username, domain.ErrConflict)
	}
	s.byUser[op.Username] = *op
	return nil
}

func (s *OperatorStore) FindByUsername(ctx context.Context, username string) (*entity.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.byUser[username]
	if !ok {
		return nil, fmt.Errorf("operador %s: %w", username, domain.ErrNotFound)
	}
	return &op, nil
}
