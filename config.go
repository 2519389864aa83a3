package aulakit

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects everything the host needs to assemble the services.
// Every field has an AULA_* environment variable; missing provider or
// SMTP settings degrade the matching feature instead of failing setup.
type Config struct {
	// Addr is the listen address for the HTTP surface.
	Addr string

	// DatabaseURL is the postgres DSN. Empty selects the file-backed
	// stores under DataDir.
	DatabaseURL string

	// DataDir is the root directory for file-backed stores and
	// uploaded content.
	DataDir string

	// BaseURL is the externally visible URL, used to build public
	// links for uploaded files.
	BaseURL string

	// StorageKind selects the device storage backend ("file" or
	// "memory"); StoragePath overrides the file location.
	StorageKind string
	StoragePath string

	JWTSecret string
	JWTIssuer string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPTo       string
}

// LoadConfig reads .env if present and then the AULA_* environment.
// A missing .env is normal outside development.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	return &Config{
		Addr:        envDefault("AULA_ADDR", ":8080"),
		DatabaseURL: os.Getenv("AULA_DATABASE_URL"),
		DataDir:     envDefault("AULA_DATA_DIR", "./data"),
		BaseURL:     envDefault("AULA_BASE_URL", "http://localhost:8080"),

		StorageKind: envDefault("AULA_STORAGE_KIND", "file"),
		StoragePath: os.Getenv("AULA_STORAGE_PATH"),

		JWTSecret: os.Getenv("AULA_JWT_SECRET"),
		JWTIssuer: envDefault("AULA_JWT_ISSUER", "aulakit"),

		GoogleClientID:     os.Getenv("AULA_GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("AULA_GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  os.Getenv("AULA_GOOGLE_CALLBACK_URL"),

		SMTPHost:     os.Getenv("AULA_SMTP_HOST"),
		SMTPPort:     envInt("AULA_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("AULA_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("AULA_SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("AULA_SMTP_FROM"),
		SMTPTo:       os.Getenv("AULA_SMTP_TO"),
	}
}

// Notifier builds the QuestionNotifier the config describes: SMTP when
// fully configured, console logging otherwise.
func (c *Config) Notifier() QuestionNotifier {
	if c.SMTPHost != "" && c.SMTPFrom != "" && c.SMTPTo != "" {
		return &SMTPNotifier{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.SMTPFrom,
			To:       c.SMTPTo,
		}
	}
	return &ConsoleNotifier{}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment", "key", key, "value", v)
		return def
	}
	return n
}
