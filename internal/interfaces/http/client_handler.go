package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// ClientHandler maneja las peticiones HTTP de clientes y sus subcolecciones.
type ClientHandler struct {
	uc    *usecase.ClientUseCase
	sheet *usecase.ClientSheetUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase, sheet *usecase.ClientSheetUseCase) *ClientHandler {
	return &ClientHandler{uc: uc, sheet: sheet}
}

// CreateFromPerson godoc
// @Summary      Activar cliente desde persona
// @Description  Crea el cliente y abre su cuenta dependiente. Si la cuenta falla, el cliente queda
// @Description  registrado y la respuesta es 503 con resource_id = ID del cliente.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientDraftRequest  true  "Datos comerciales"
// @Success      201   {object}  dto.ClientWithAccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/v1/personas/{tipo}/{numero}/clientes [post]
func (h *ClientHandler) CreateFromPerson(c *fiber.Ctx) error {
	return h.create(c, h.uc.CreateFromPerson)
}

// CreateFromCompany activa como cliente a una empresa.
func (h *ClientHandler) CreateFromCompany(c *fiber.Ctx) error {
	return h.create(c, h.uc.CreateFromCompany)
}

type createFn func(context.Context, entity.IdentityKey, dto.ClientDraftRequest) (*dto.ClientWithAccountResponse, error)

func (h *ClientHandler) create(c *fiber.Ctx, fn createFn) error {
	var in dto.ClientDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := fn(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		// el cliente quedó persistido aunque la cuenta no se abrió
		if out != nil && out.Client != nil && errors.Is(err, domain.ErrExternalServiceUnavailable) {
			log.Warn().Err(err).Str("client_id", out.Client.ID).Str("operator", GetUserID(c)).Str("branch", GetBranchCode(c)).Msg("cliente creado sin cuenta")
			return writeErrorFor(c, fmt.Errorf("cliente %s registrado sin cuenta: %w", out.Client.ID, err), out.Client.ID)
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un cliente por ID.
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get obtiene un cliente por identificación.
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByKey(c.UserContext(), keyFromPath(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search busca por ?nombre=.
func (h *ClientHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("nombre"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update modifica los datos comerciales.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByEntityType godoc
// @Summary      Listar clientes por tipo de entidad
// @Tags         clientes
// @Produce      json
// @Param        tipoEntidad  path   string  true   "PERSON | COMPANY"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ClientListResponse
// @Router       /api/v1/clientes/entidad/{tipoEntidad} [get]
func (h *ClientHandler) ListByEntityType(c *fiber.Ctx) error {
	out, err := h.uc.ListByEntityType(c.UserContext(), c.Params("tipoEntidad"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CountByEntityType cuenta clientes por tipo de entidad.
func (h *ClientHandler) CountByEntityType(c *fiber.Ctx) error {
	out, err := h.uc.CountByEntityType(c.UserContext(), c.Params("tipoEntidad"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByIdentificationType lista clientes por tipo de identificación.
func (h *ClientHandler) ListByIdentificationType(c *fiber.Ctx) error {
	out, err := h.uc.ListByIdentificationType(c.UserContext(), c.Params("tipo"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CountByIdentificationType cuenta clientes por tipo de identificación.
func (h *ClientHandler) CountByIdentificationType(c *fiber.Ctx) error {
	out, err := h.uc.CountByIdentificationType(c.UserContext(), c.Params("tipo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddPhone agrega un teléfono.
func (h *ClientHandler) AddPhone(c *fiber.Ctx) error {
	var in dto.AddPhoneRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPhone(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemovePhone godoc
// @Summary      Dar de baja un teléfono
// @Description  El teléfono queda INACTIVE; la lista conserva su longitud.
// @Tags         clientes
// @Produce      json
// @Param        indice  path  int  true  "Posición del teléfono"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/clientes/{tipo}/{numero}/telefonos/{indice} [delete]
func (h *ClientHandler) RemovePhone(c *fiber.Ctx) error {
	index, err := c.ParamsInt("indice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_FAILED", Message: "índice inválido"})
	}
	out, err := h.uc.RemovePhone(c.UserContext(), keyFromPath(c), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddAddress agrega una dirección.
func (h *ClientHandler) AddAddress(c *fiber.Ctx) error {
	var in dto.AddAddressRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddAddress(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddBranch asocia una sucursal.
func (h *ClientHandler) AddBranch(c *fiber.Ctx) error {
	var in dto.AddBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddBranch(c.UserContext(), keyFromPath(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Sheet godoc
// @Summary      Ficha del cliente en PDF
// @Tags         clientes
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del cliente"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/clientes/id/{id}/ficha [get]
func (h *ClientHandler) Sheet(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.sheet.Generate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ficha-`+id+`.pdf"`)
	return c.Send(pdf)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}
