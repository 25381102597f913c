package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Переменные окружения
const (
	EnvServerURL         = "PHONEAUTH_SERVER_URL"
	EnvDBPath            = "PHONEAUTH_DB"
	EnvStoragePassphrase = "PHONEAUTH_STORAGE_PASSPHRASE"
	EnvLogLevel          = "PHONEAUTH_LOG_LEVEL"
	EnvTimeout           = "PHONEAUTH_TIMEOUT"
)

// Значения по умолчанию
const (
	DefaultServerURL = "http://localhost:8080"
	DefaultDBPath    = "phoneauth-client.db"
	DefaultLogLevel  = "warn"
	DefaultTimeout   = 10 * time.Second
	DefaultEnvFile   = ".env"
)

// Config - настройки клиента
type Config struct {
	ServerURL         string
	DBPath            string
	StoragePassphrase string // пустая - токены хранятся без шифрования
	LogLevel          slog.Level
	Timeout           time.Duration
	ShowVersion       bool
}

// LookupFunc читает переменную окружения
type LookupFunc func(key string) (string, bool)

// Load разбирает флаги и окружение процесса. Приоритет: флаг > переменная
// окружения > файл .env > значение по умолчанию. Возвращает оставшиеся
// аргументы (команду и ее параметры).
func Load(args []string) (*Config, []string, error) {
	return load(args, os.LookupEnv, DefaultEnvFile, os.Stderr)
}

func load(args []string, lookup LookupFunc, envFile string, output io.Writer) (*Config, []string, error) {
	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return nil, nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	flags := flag.NewFlagSet("phoneauth", flag.ContinueOnError)
	flags.SetOutput(output)
	showVersion := flags.Bool("version", false, "Show version information")
	serverURL := flags.String("server", "", "Server URL (default "+DefaultServerURL+" or "+EnvServerURL+")")
	dbPath := flags.String("db", "", "Path to local database (default "+DefaultDBPath+" or "+EnvDBPath+")")
	passphrase := flags.String("storage-passphrase", "", "Passphrase for encrypting stored tokens (or "+EnvStoragePassphrase+")")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error (default "+DefaultLogLevel+")")
	timeout := flags.String("timeout", "", "HTTP request timeout (default 10s)")

	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	get := func(flagValue, envKey, defaultValue string) string {
		if flagValue != "" {
			return flagValue
		}
		if v, ok := lookup(envKey); ok && v != "" {
			return v
		}
		if v := dotenv[envKey]; v != "" {
			return v
		}
		return defaultValue
	}

	cfg := &Config{
		ShowVersion:       *showVersion,
		ServerURL:         strings.TrimRight(get(*serverURL, EnvServerURL, DefaultServerURL), "/"),
		DBPath:            get(*dbPath, EnvDBPath, DefaultDBPath),
		StoragePassphrase: get(*passphrase, EnvStoragePassphrase, ""),
	}

	if err := ValidateServerURL(cfg.ServerURL); err != nil {
		return nil, nil, fmt.Errorf("invalid server URL: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get(*logLevel, EnvLogLevel, DefaultLogLevel))); err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.Timeout = DefaultTimeout
	if raw := get(*timeout, EnvTimeout, ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid timeout: %w", err)
		}
		if d <= 0 {
			return nil, nil, fmt.Errorf("invalid timeout: must be positive, got %s", d)
		}
		cfg.Timeout = d
	}

	return cfg, flags.Args(), nil
}

// ValidateServerURL проверяет схему и хост адреса backend
func ValidateServerURL(rawURL string) error {
	if rawURL == "" {
		return errors.New("server URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got: %s", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("URL must include a host")
	}

	return nil
}

// Insecure истинно, если токены будут передаваться по HTTP
func (c *Config) Insecure() bool {
	return strings.HasPrefix(strings.ToLower(c.ServerURL), "http://")
}
