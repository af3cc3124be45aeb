package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Mongo    MongoConfig    `toml:"mongo"`
	Redis    RedisConfig    `toml:"redis"`
	Telegram TelegramConfig `toml:"telegram"`
	Admin    AdminConfig    `toml:"admin"`
	Booking  BookingConfig  `toml:"booking"`
	Pending  PendingConfig  `toml:"pending"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Logs     LogsConfig     `toml:"logs"`
}

// ServerConfig HTTP сервер. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища номеров и заявок
type StorageConfig struct {
	Driver   string `toml:"driver"`
	SeedFile string `toml:"seed_file"` // каталог номеров, загружается при старте с драйвером memory
}

// DatabaseConfig PostgreSQL. Если задан DSN, остальные поля подключения не используются.
type DatabaseConfig struct {
	DSNOverride     string `toml:"dsn"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	if c.DSNOverride != "" {
		return c.DSNOverride
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// MongoConfig MongoDB (replica set: транзакции требуют его)
type MongoConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	ConnectTimeout int    `toml:"connect_timeout"` // секунды
	RetryAttempts  int    `toml:"retry_attempts"`
	RetryInterval  int    `toml:"retry_interval"` // секунды
}

// RedisConfig очередь повторной отправки уведомлений
type RedisConfig struct {
	Enabled       bool   `toml:"enabled"`
	Addr          string `toml:"addr"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	Key           string `toml:"key"`
	RetryInterval int    `toml:"retry_interval"` // секунды
	MaxAttempts   int    `toml:"max_attempts"`
}

// TelegramConfig бот администратора
type TelegramConfig struct {
	Token           string  `toml:"token"`
	BaseURL         string  `toml:"base_url"`
	Timeout         int     `toml:"timeout"`      // секунды
	PollTimeout     int     `toml:"poll_timeout"` // секунды
	AdminChatIDs    []int64 `toml:"admin_chat_ids"`
	BotEnabled      bool    `toml:"bot_enabled"`
	DefaultLanguage string  `toml:"default_language"` // язык ответов бота, пока чат не выбрал свой (ru, uz)
}

// AdminConfig доступ к admin HTTP API и CORS фронтенда
type AdminConfig struct {
	Token       string   `toml:"token"`
	CORSOrigins []string `toml:"cors_origins"`
}

// BookingConfig ограничения операций бронирования
type BookingConfig struct {
	OperationTimeout int  `toml:"operation_timeout"` // секунды
	AllowPastDates   bool `toml:"allow_past_dates"`  // принимать заявки и поиск на прошедшие даты
}

// PendingConfig срок ожидания заявок
type PendingConfig struct {
	TTL            int `toml:"ttl"`             // секунды, 0 отключает истечение
	ExpireInterval int `toml:"expire_interval"` // секунды
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Storage: StorageConfig{
			Driver:   DriverPostgres,
			SeedFile: "seeds/rooms.toml",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "room_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017/?replicaSet=rs0",
			Database:       "room_booking",
			ConnectTimeout: 10,
			RetryAttempts:  5,
			RetryInterval:  5,
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			RetryInterval: 30,
			MaxAttempts:   10,
		},
		Telegram: TelegramConfig{
			Timeout:         10,
			PollTimeout:     30,
			DefaultLanguage: "ru",
		},
		Admin: AdminConfig{
			CORSOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Booking: BookingConfig{OperationTimeout: 5},
		Pending: PendingConfig{
			TTL:            48 * 3600,
			ExpireInterval: 600,
		},
		Metrics: MetricsConfig{
			ServiceName: "room-booking-service",
			Path:        "/metrics",
		},
		Logs: LogsConfig{Level: "info"},
	}
}

// Load читает TOML поверх значений по умолчанию, затем применяет переменные окружения
// (включая .env из рабочей директории, если он есть) и проверяет результат.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("STORAGE_DRIVER"); ok && v != "" {
		c.Storage.Driver = v
	}
	if v, ok := lookup("DATABASE_DSN"); ok && v != "" {
		c.Database.DSNOverride = v
	}
	if v, ok := lookup("MONGO_URI"); ok && v != "" {
		c.Mongo.URI = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok && v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v, ok := lookup("BOT_TOKEN"); ok && v != "" {
		c.Telegram.Token = v
	}
	if v, ok := lookup("ADMIN_TOKEN"); ok && v != "" {
		c.Admin.Token = v
	}
	if v, ok := lookup("ADMIN_CHAT_IDS"); ok && v != "" {
		ids, err := parseChatIDs(v)
		if err != nil {
			return fmt.Errorf("%w: ADMIN_CHAT_IDS: %v", ErrInvalidConfig, err)
		}
		c.Telegram.AdminChatIDs = ids
	}
	if v, ok := lookup("HTTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT: %v", ErrInvalidConfig, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// parseChatIDs "123, -100456" -> [123 -100456]
func parseChatIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case DriverPostgres, DriverMongoDB, DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("storage.driver must be one of %s, %s, %s", DriverPostgres, DriverMongoDB, DriverMemory))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Booking.OperationTimeout <= 0 {
		problems = append(problems, "booking.operation_timeout must be positive")
	}
	if c.Pending.TTL < 0 {
		problems = append(problems, "pending.ttl must not be negative")
	}
	if c.Pending.TTL > 0 && c.Pending.ExpireInterval <= 0 {
		problems = append(problems, "pending.expire_interval must be positive when pending.ttl is set")
	}
	if c.Storage.Driver == DriverMongoDB && (c.Mongo.URI == "" || c.Mongo.Database == "") {
		problems = append(problems, "mongo.uri and mongo.database are required for the mongodb driver")
	}
	if c.Telegram.BotEnabled && c.Telegram.Token == "" {
		problems = append(problems, "telegram.token (BOT_TOKEN) is required when the bot is enabled")
	}
	if c.Telegram.Token != "" && len(c.Telegram.AdminChatIDs) == 0 {
		problems = append(problems, "telegram.admin_chat_ids (ADMIN_CHAT_IDS) is required when a bot token is set")
	}
	if c.Telegram.DefaultLanguage != "ru" && c.Telegram.DefaultLanguage != "uz" {
		problems = append(problems, "telegram.default_language must be ru or uz")
	}
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required when redis is enabled")
		}
		if c.Redis.MaxAttempts < 1 || c.Redis.RetryInterval <= 0 {
			problems = append(problems, "redis.max_attempts and redis.retry_interval must be positive")
		}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Seconds переводит значение конфигурации в секундах в time.Duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
