package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

// OperatorRepo implementación del puerto OperatorRepository sobre PostgreSQL.
type OperatorRepo struct {
	q Querier
}

// NewOperatorRepository construye el adaptador de persistencia para operadores.
func NewOperatorRepository(q Querier) *OperatorRepo {
	return &OperatorRepo{q: q}
}

// Create persiste un nuevo operador.
func (r *OperatorRepo) Create(ctx context.Context, op *entity.Operator) error {
	query := `
		INSERT INTO operators (id, username, password_hash, name, branch_code, role, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		op.ID, op.Username, op.PasswordHash, op.Name, op.BranchCode, op.Role, op.State,
		op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("operador %s: %w", op.Username, domain.ErrConflict)
		}
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}

// FindByUsername obtiene un operador por su nombre de usuario.
func (r *OperatorRepo) FindByUsername(ctx context.Context, username string) (*entity.Operator, error) {
	query := `
		SELECT id, username, password_hash, name, branch_code, role, state, created_at, updated_at
		FROM operators WHERE username = $1`
	var op entity.Operator
	err := r.q.QueryRow(ctx, query, username).Scan(
		&op.ID, &op.Username, &op.PasswordHash, &op.Name, &op.BranchCode, &op.Role, &op.State,
		&op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("operador %s: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get operator by username: %w", err)
	}
	return &op, nil
}
