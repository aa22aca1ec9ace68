package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		AppName  string
		Build    string

		SecretKey                 string
		PasswordResetTimeoutDelta time.Duration
		FrontendBaseURL           string

		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string

		// SessionPath is where the durable session blob lives.
		SessionPath string

		// SourceLatencyMin/Max bound the simulated latency of the fixture
		// data source. Both zero disables the delay.
		SourceLatencyMin time.Duration
		SourceLatencyMax time.Duration

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host                      string
		Addr                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

// IsSet reports whether a database backend has been configured at all;
// when false the apps fall back to the in-memory fixture source.
func (c DatabaseConfig) IsSet() bool {
	return c.Name != ""
}

func (c Config) DefaultFromAddress() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and environment variables, in increasing precedence.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("testmode", false)
	v.SetDefault("appname", "Kombee")
	v.SetDefault("build", "dev")
	v.SetDefault("secretkey", "x6fg)1x&5v-b$2d_hw0n#ae@e8u%9+u2(h!xmsk3vu5x0y7!fr")
	v.SetDefault("passwordresettimeoutdelta", 3*24*time.Hour)
	v.SetDefault("frontendbaseurl", "http://localhost:3000")
	v.SetDefault("defaultfromemail", "noreply@kombee.com")
	v.SetDefault("sendgridapikey", "")
	v.SetDefault("rollbartoken", "")
	v.SetDefault("sessionpath", filepath.Join(".", "session.json"))
	v.SetDefault("sourcelatencymin", 300*time.Millisecond)
	v.SetDefault("sourcelatencymax", 800*time.Millisecond)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.jwtexpirationdelta", 7*24*time.Hour)
	v.SetDefault("server.jwtrefreshexpirationdelta", 4*time.Hour)
	v.SetDefault("server.shutdowntimeout", 5*time.Second)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminuser", "")
	v.SetDefault("database.adminpassword", "")
	v.SetDefault("database.disabletls", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testmode", true)
	}

	// load config/.env.<env> if it exists
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := &Config{Env: env}
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	return conf, nil
}

// NewTestConfig returns a Config suitable for tests: no fixture latency,
// session blob in a temp dir.
func NewTestConfig() *Config {
	return &Config{
		Debug:                     true,
		TestMode:                  true,
		Env:                       "TEST",
		AppName:                   "Kombee",
		Build:                     "test",
		SecretKey:                 "test-secret-key",
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		FrontendBaseURL:           "http://localhost:3000",
		DefaultFromEmail:          "noreply@kombee.com",
		SessionPath:               filepath.Join(os.TempDir(), "kombee_session_test.json"),
		Server: ServerConfig{
			Host:                      "localhost",
			JWTExpirationDelta:        7 * 24 * time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
			ShutdownTimeout:           5 * time.Second,
		},
	}
}
