package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
)

// ShareholderHandler maneja accionistas y representantes de una empresa.
type ShareholderHandler struct {
	uc *usecase.ShareholderUseCase
}

// NewShareholderHandler construye el handler.
func NewShareholderHandler(uc *usecase.ShareholderUseCase) *ShareholderHandler {
	return &ShareholderHandler{uc: uc}
}

// AddShareholder godoc
// @Summary      Agregar accionista
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la empresa"
// @Param        body  body  dto.AddShareholderRequest  true  "Partícipe y porcentaje"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/{id}/accionistas [post]
func (h *ShareholderHandler) AddShareholder(c *fiber.Ctx) error {
	var in dto.AddShareholderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddShareholder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListShareholders devuelve los accionistas activos.
func (h *ShareholderHandler) ListShareholders(c *fiber.Ctx) error {
	out, err := h.uc.ListActiveShareholders(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetShareholder devuelve un accionista.
func (h *ShareholderHandler) GetShareholder(c *fiber.Ctx) error {
	out, err := h.uc.GetShareholder(c.UserContext(), c.Params("id"), c.Params("participe"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateShareholder cambia el porcentaje.
func (h *ShareholderHandler) UpdateShareholder(c *fiber.Ctx) error {
	var in dto.UpdateShareholderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateShareholder(c.UserContext(), c.Params("id"), c.Params("participe"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeShareholderState activa o inactiva un accionista.
func (h *ShareholderHandler) ChangeShareholderState(c *fiber.Ctx) error {
	var in dto.ChangeStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeShareholderState(c.UserContext(), c.Params("id"), c.Params("participe"), in.State)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddRepresentative asigna un representante.
func (h *ShareholderHandler) AddRepresentative(c *fiber.Ctx) error {
	var in dto.AddRepresentativeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddRepresentative(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRepresentatives devuelve los representantes activos.
func (h *ShareholderHandler) ListRepresentatives(c *fiber.Ctx) error {
	out, err := h.uc.ListActiveRepresentatives(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRepresentative devuelve un representante.
func (h *ShareholderHandler) GetRepresentative(c *fiber.Ctx) error {
	out, err := h.uc.GetRepresentative(c.UserContext(), c.Params("id"), c.Params("cliente"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRepresentative cambia el rol.
func (h *ShareholderHandler) UpdateRepresentative(c *fiber.Ctx) error {
	var in dto.UpdateRepresentativeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateRepresentative(c.UserContext(), c.Params("id"), c.Params("cliente"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeRepresentativeState activa o inactiva un representante.
func (h *ShareholderHandler) ChangeRepresentativeState(c *fiber.Ctx) error {
	var in dto.ChangeStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeRepresentativeState(c.UserContext(), c.Params("id"), c.Params("cliente"), in.State)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
