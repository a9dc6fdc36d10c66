package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/ports"
	"github.com/jhoicas/Clientes-api/internal/application/usecase"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/gateway"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Clientes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Clientes-api/internal/interfaces/http"
	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/logger"
	"github.com/jhoicas/Clientes-api/pkg/tracing"
)

// stores agrupa los almacenes de agregados del backend elegido.
type stores struct {
	persons   repository.PersonRepository
	companies repository.CompanyRepository
	clients   repository.ClientRepository
	operators repository.OperatorRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, log, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	// Servicios remotos: cuentas y catálogos generales
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gwCfg := gateway.ConfigFrom(cfg)
	remote := gateway.New(gwCfg, log.Component("gateway"), gateway.NewMetrics(reg))

	var reference ports.ReferenceValidator = remote
	redisClient, err := gateway.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible: validaciones sin caché")
	}
	if redisClient != nil {
		defer func(c *redis.Client) { _ = c.Close() }(redisClient)
		reference = gateway.NewCachedReferenceValidator(remote,
			gateway.NewRedisReferenceCache(redisClient, "clientes:ref:"), cfg.Redis.ReferenceTTL, log,
			gateway.WithCallTimeout(gwCfg.CallBudget()))
	}

	authUC := auth.NewAuthUseCase(st.operators, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Auth.AdminUsername != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.AdminBranch)
		if err != nil {
			log.Fatal().Err(err).Msg("alta del administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Auth.AdminUsername).Msg("administrador inicial registrado")
		}
	}

	personUC := usecase.NewPersonUseCase(st.persons)
	companyUC := usecase.NewCompanyUseCase(st.companies)
	clientUC := usecase.NewClientUseCase(st.clients, st.persons, st.companies, reference, remote, usecase.ClientConfig{
		MasterAccountID:    cfg.Accounts.MasterAccountID,
		AccountCallTimeout: cfg.Gateway.AccountCallTimeout,
	}, log)
	shareholderUC := usecase.NewShareholderUseCase(st.companies, st.clients)
	contactUC := usecase.NewContactUseCase(st.clients)
	accountUC := usecase.NewAccountUseCase(st.clients, remote, cfg.Accounts.MasterAccountID)
	sheetUC := usecase.NewClientSheetUseCase(st.clients, infrapdf.NewMarotoClientSheetGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clientes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		PersonUC:      personUC,
		CompanyUC:     companyUC,
		ClientUC:      clientUC,
		ShareholderUC: shareholderUC,
		ContactUC:     contactUC,
		AccountUC:     accountUC,
		SheetUC:       sheetUC,
		Gatherer:      reg,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del tracing")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (aplicando el esquema) o los almacenes en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &stores{
			persons:   memory.NewPersonStore(),
			companies: memory.NewCompanyStore(),
			clients:   memory.NewClientStore(),
			operators: memory.NewOperatorStore(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		persons:   postgres.NewPersonRepository(pool),
		companies: postgres.NewCompanyRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		operators: postgres.NewOperatorRepository(pool),
		close:     func(p *pgxpool.Pool) func() { return p.Close }(pool),
	}, nil
}
