package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP del recurso empresa.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar empresa
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/empresas [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get obtiene una empresa por identificación.
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByKey(c.UserContext(), keyFromPath(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar empresas por razón social o nombre comercial
// @Tags         empresas
// @Produce      json
// @Param        razonSocial      query  string  false  "Razón social"
// @Param        nombreComercial  query  string  false  "Nombre comercial"
// @Success      200  {array}   dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/empresas [get]
func (h *CompanyHandler) Search(c *fiber.Ctx) error {
	var (
		out []dto.CompanyResponse
		err error
	)
	if trade := c.Query("nombreComercial"); trade != "" {
		out, err = h.uc.SearchByTradeName(c.UserContext(), trade)
	} else {
		out, err = h.uc.SearchByLegalName(c.UserContext(), c.Query("razonSocial"))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update modifica los datos de la empresa.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
