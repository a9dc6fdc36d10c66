package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// PersonHandler maneja las peticiones HTTP del recurso persona.
type PersonHandler struct {
	uc *usecase.PersonUseCase
}

// NewPersonHandler construye el handler inyectando el caso de uso.
func NewPersonHandler(uc *usecase.PersonUseCase) *PersonHandler {
	return &PersonHandler{uc: uc}
}

// keyFromPath lee la identificación de los parámetros :tipo y :numero.
func keyFromPath(c *fiber.Ctx) entity.IdentityKey {
	return entity.NewIdentityKey(c.Params("tipo"), c.Params("numero"))
}

// Create godoc
// @Summary      Registrar persona
// @Tags         personas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonRequest  true  "Datos de la persona"
// @Success      201   {object}  dto.PersonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/personas [post]
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener persona por identificación
// @Tags         personas
// @Produce      json
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/personas/{tipo}/{numero} [get]
func (h *PersonHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByKey(c.UserContext(), keyFromPath(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search busca por ?nombre=.
func (h *PersonHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("nombre"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update modifica los datos demográficos.
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
