package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase // nil: sin login ni alta de operadores
	PersonUC      *usecase.PersonUseCase
	CompanyUC     *usecase.CompanyUseCase
	ClientUC      *usecase.ClientUseCase
	ShareholderUC *usecase.ShareholderUseCase
	ContactUC     *usecase.ContactUseCase
	AccountUC     *usecase.AccountUseCase
	SheetUC       *usecase.ClientSheetUseCase
	Gatherer      prometheus.Gatherer // nil: sin /metrics
	JWTSecret     string
}

// Router registra las rutas de la API. Las rutas específicas se registran antes que las
// genéricas /{tipo}/{numero} con las que comparten prefijo.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rutas públicas
	var authH *AuthHandler
	if deps.AuthUC != nil {
		authH = NewAuthHandler(deps.AuthUC)
		app.Post("/api/auth/login", authH.Login)
	}

	// Rutas protegidas (requieren Bearer Token); las escrituras exigen rol admin u operador
	api := app.Group("/api/v1", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
	if authH != nil {
		api.Post("/operadores", RequireRole(jwt.RoleAdmin), authH.Register)
	}

	persons := NewPersonHandler(deps.PersonUC)
	companies := NewCompanyHandler(deps.CompanyUC)
	clients := NewClientHandler(deps.ClientUC, deps.SheetUC)
	shareholders := NewShareholderHandler(deps.ShareholderUC)
	contacts := NewContactHandler(deps.ContactUC)
	accounts := NewAccountHandler(deps.AccountUC)

	// Personas
	p := api.Group("/personas")
	p.Post("/", write, persons.Create)
	p.Get("/", persons.Search)
	p.Post("/:tipo/:numero/clientes", write, clients.CreateFromPerson)
	p.Get("/:tipo/:numero", persons.Get)
	p.Put("/:tipo/:numero", write, persons.Update)

	// Empresas: accionistas y representantes por ID de empresa
	e := api.Group("/empresas")
	e.Post("/", write, companies.Create)
	e.Get("/", companies.Search)
	e.Post("/:id/accionistas", write, shareholders.AddShareholder)
	e.Get("/:id/accionistas", shareholders.ListShareholders)
	e.Get("/:id/accionistas/:participe", shareholders.GetShareholder)
	e.Put("/:id/accionistas/:participe", write, shareholders.UpdateShareholder)
	e.Patch("/:id/accionistas/:participe/estado", write, shareholders.ChangeShareholderState)
	e.Post("/:id/representantes", write, shareholders.AddRepresentative)
	e.Get("/:id/representantes", shareholders.ListRepresentatives)
	e.Get("/:id/representantes/:cliente", shareholders.GetRepresentative)
	e.Put("/:id/representantes/:cliente", write, shareholders.UpdateRepresentative)
	e.Patch("/:id/representantes/:cliente/estado", write, shareholders.ChangeRepresentativeState)
	e.Post("/:tipo/:numero/clientes", write, clients.CreateFromCompany)
	e.Get("/:tipo/:numero", companies.Get)
	e.Put("/:tipo/:numero", write, companies.Update)

	// Clientes
	c := api.Group("/clientes")
	c.Get("/", clients.Search)
	c.Get("/id/:id/ficha", clients.Sheet)
	c.Post("/id/:id/contacto-transaccional", write, contacts.Create)
	c.Get("/id/:id/contacto-transaccional", contacts.Get)
	c.Put("/id/:id/contacto-transaccional", write, contacts.Update)
	c.Delete("/id/:id/contacto-transaccional", write, contacts.Delete)
	c.Patch("/id/:id/contacto-transaccional/estado", write, contacts.ChangeState)
	c.Get("/id/:id", clients.GetByID)
	c.Get("/entidad/:tipoEntidad/total", clients.CountByEntityType)
	c.Get("/entidad/:tipoEntidad", clients.ListByEntityType)
	c.Get("/identificacion/:tipo/total", clients.CountByIdentificationType)
	c.Get("/identificacion/:tipo", clients.ListByIdentificationType)
	c.Post("/:tipo/:numero/telefonos", write, clients.AddPhone)
	c.Delete("/:tipo/:numero/telefonos/:indice", write, clients.RemovePhone)
	c.Post("/:tipo/:numero/direcciones", write, clients.AddAddress)
	c.Post("/:tipo/:numero/sucursales", write, clients.AddBranch)
	c.Get("/:tipo/:numero", clients.Get)
	c.Put("/:tipo/:numero", write, clients.Update)

	// Cuentas
	a := api.Group("/cuentas")
	a.Post("/clientes/:cedula/ahorros", write, accounts.CreateSavings)
	a.Post("/clientes/:cedula/:idCuentaMaestra", write, accounts.Create)
	a.Get("/maestras/:id", accounts.GetMasterAccount)
	a.Get("/:id", accounts.GetClientAccount)
}
