package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de operadores y login.
type AuthUseCase struct {
	operators repository.OperatorRepository
	jwtCfg    JWTConfig
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operators repository.OperatorRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operators: operators, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterOperator crea un operador con la contraseña hasheada con bcrypt.
// Devuelve ErrConflict si el username ya existe.
func (uc *AuthUseCase) RegisterOperator(ctx context.Context, in dto.RegisterOperatorRequest) (*dto.OperatorResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || strings.TrimSpace(in.BranchCode) == "" {
		return nil, fmt.Errorf("%w: username y branch_code son requeridos", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = jwt.RoleViewer
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: rol %q no soportado", domain.ErrInvalidInput, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	now := uc.now()
	op := &entity.Operator{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		BranchCode:   strings.TrimSpace(in.BranchCode),
		Role:         role,
		State:        entity.StateActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.operators.Create(ctx, op); err != nil {
		return nil, err
	}
	return toOperatorResponse(op), nil
}

// EnsureAdmin registra el administrador inicial si aún no existe.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password, branchCode string) (bool, error) {
	_, err := uc.RegisterOperator(ctx, dto.RegisterOperatorRequest{
		Username:   username,
		Password:   password,
		BranchCode: branchCode,
		Role:       jwt.RoleAdmin,
	})
	if errors.Is(err, domain.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica username/password, genera JWT y retorna token + operador.
// Usuario inexistente y contraseña errónea producen el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := uc.operators.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if op.State != entity.StateActive {
		return nil, fmt.Errorf("%w: operador inactivo", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.ID, op.BranchCode, op.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Operator: *toOperatorResponse(op),
	}, nil
}

func validRole(role string) bool {
	switch role {
	case jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleViewer:
		return true
	}
	return false
}

func toOperatorResponse(op *entity.Operator) *dto.OperatorResponse {
	return &dto.OperatorResponse{
		ID:         op.ID,
		Username:   op.Username,
		Name:       op.Name,
		BranchCode: op.BranchCode,
		Role:       op.Role,
		State:      op.State,
		CreatedAt:  op.CreatedAt,
		UpdatedAt:  op.UpdatedAt,
	}
}
