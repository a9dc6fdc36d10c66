package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
)

// AccountHandler expone el servicio de cuentas.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// CreateSavings godoc
// @Summary      Abrir cuenta de ahorros
// @Tags         cuentas
// @Produce      json
// @Param        cedula  path  string  true  "Identificación del cliente"
// @Success      201  {object}  dto.ClientAccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/v1/cuentas/clientes/{cedula}/ahorros [post]
func (h *AccountHandler) CreateSavings(c *fiber.Ctx) error {
	out, err := h.uc.CreateSavingsAccount(c.UserContext(), c.Params("cedula"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Create abre una cuenta dependiente de la cuenta maestra indicada.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	masterID, err := c.ParamsInt("idCuentaMaestra")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_FAILED", Message: "id de cuenta maestra inválido"})
	}
	out, err := h.uc.CreateAccount(c.UserContext(), c.Params("cedula"), masterID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetClientAccount consulta una cuenta dependiente.
func (h *AccountHandler) GetClientAccount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_FAILED", Message: "id inválido"})
	}
	out, err := h.uc.GetClientAccount(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMasterAccount consulta una cuenta maestra.
func (h *AccountHandler) GetMasterAccount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_FAILED", Message: "id inválido"})
	}
	out, err := h.uc.GetMasterAccount(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
