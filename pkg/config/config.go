package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Auth      AuthConfig
	HTTP      HTTPConfig
	Accounts  AccountsConfig
	General   GeneralConfig
	Gateway   GatewayConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string con la contraseña codificada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// StorageConfig selecciona el backend de agregados: postgres o memory.
type StorageConfig struct {
	Driver string
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig administrador inicial. Username vacío omite el alta.
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	AdminBranch   string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AccountsConfig servicio remoto de cuentas.
type AccountsConfig struct {
	BaseURL         string
	MasterAccountID int // cuenta maestra usada en la apertura automática
}

// GeneralConfig servicio remoto de catálogos generales (sucursales, países, locaciones).
type GeneralConfig struct {
	BaseURL string
}

// GatewayConfig tiempos y política de reintentos para los servicios remotos.
type GatewayConfig struct {
	Enabled             bool
	ConnectTimeout      time.Duration
	ReadTimeout         time.Duration
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	BreakerFailures     int
	BreakerOpenTimeout  time.Duration
	AccountCallTimeout  time.Duration
}

// RedisConfig caché de validaciones de catálogos. URL vacía desactiva la caché.
type RedisConfig struct {
	URL          string
	ReferenceTTL time.Duration
}

// TelemetryConfig exportación de trazas OTLP. Endpoint vacío desactiva el tracing.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, ACCOUNTS_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "clientes-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "clientes"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
		},
		Storage: StorageConfig{
			Driver: getString(v, "APP_STORAGE", "postgres"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "clientes-api"),
		},
		Auth: AuthConfig{
			AdminUsername: getString(v, "AUTH_ADMIN_USERNAME", ""),
			AdminPassword: getString(v, "AUTH_ADMIN_PASSWORD", ""),
			AdminBranch:   getString(v, "AUTH_ADMIN_BRANCH", "001"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Accounts: AccountsConfig{
			BaseURL:         getString(v, "ACCOUNTS_BASE_URL", ""),
			MasterAccountID: getInt(v, "ACCOUNTS_MASTER_ACCOUNT_ID", 27),
		},
		General: GeneralConfig{
			BaseURL: getString(v, "GENERAL_BASE_URL", ""),
		},
		Gateway: GatewayConfig{
			Enabled:             getBool(v, "GATEWAY_ENABLED", true),
			ConnectTimeout:      getDuration(v, "GATEWAY_CONNECT_TIMEOUT", 5*time.Second),
			ReadTimeout:         getDuration(v, "GATEWAY_READ_TIMEOUT", 10*time.Second),
			RetryMaxAttempts:    getInt(v, "GATEWAY_RETRY_MAX_ATTEMPTS", 3),
			RetryInitialBackoff: getDuration(v, "GATEWAY_RETRY_INITIAL_BACKOFF", time.Second),
			RetryMaxBackoff:     getDuration(v, "GATEWAY_RETRY_MAX_BACKOFF", 2*time.Second),
			BreakerFailures:     getInt(v, "GATEWAY_BREAKER_FAILURES", 5),
			BreakerOpenTimeout:  getDuration(v, "GATEWAY_BREAKER_OPEN_TIMEOUT", 30*time.Second),
			AccountCallTimeout:  getDuration(v, "GATEWAY_ACCOUNT_CALL_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			URL:          getString(v, "REDIS_URL", ""),
			ReferenceTTL: getDuration(v, "REDIS_REFERENCE_TTL", 10*time.Minute),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getString(v, "OTEL_SERVICE_NAME", "clientes-api"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: APP_STORAGE %q no soportado (postgres|memory)", c.Storage.Driver)
	}
	if c.Gateway.RetryMaxAttempts < 1 {
		return fmt.Errorf("config: GATEWAY_RETRY_MAX_ATTEMPTS debe ser >= 1")
	}
	if c.Accounts.MasterAccountID <= 0 {
		return fmt.Errorf("config: ACCOUNTS_MASTER_ACCOUNT_ID debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "750ms", "5s" o un número entero de milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
