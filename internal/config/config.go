package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/notify/internal/service/models/currency"
	"github.com/corray333/backend-labs/notify/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMailConfigMissing is returned when a required SMTP setting is absent.
var ErrMailConfigMissing = errors.New("email configuration missing")

var validate = validator.New()

// Config is the service configuration, built once at startup.
type Config struct {
	Server  ServerConfig
	Mail    MailConfig
	Shop    ShopConfig
	PDF     PDFConfig
	Tracing TracingConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	CORS            CORSConfig
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// MailConfig holds the SMTP transport settings and the fixed recipient.
type MailConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"gt=0"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	// From is the sender address. When empty the username is used, so it
	// must then be an address itself.
	From      string `validate:"omitempty,email"`
	Recipient string `validate:"required,email"`
	Timeout   time.Duration
}

// Sender returns the address notifications are sent from.
func (m MailConfig) Sender() string {
	if m.From != "" {
		return m.From
	}

	return m.Username
}

// Validate reports ErrMailConfigMissing naming every absent or malformed setting.
func (m MailConfig) Validate() error {
	var fields []string
	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	if m.From == "" && m.Username != "" {
		if err := validate.Var(m.Username, "email"); err != nil {
			fields = append(fields, "From")
		}
	}
	if len(fields) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrMailConfigMissing, strings.Join(fields, ", "))
}

type ShopConfig struct {
	Name     string
	Currency currency.Currency
}

// PDFConfig points at UTF-8 TrueType fonts for the order document.
// When empty, the bundled DejaVu Sans faces are used.
type PDFConfig struct {
	FontRegular string
	FontBold    string
}

type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	JaegerEndpoint string
}

// MustInit loads .env and config.yaml into the global viper instance and
// installs the default logger.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}

	Setup(viper.GetViper())
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/order-notify-svc")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic("error while reading config file: " + err.Error())
		}
	}
	SetupLogger()
}

// Setup registers defaults and environment bindings on v.
func Setup(v *viper.Viper) {
	v.SetDefault("server.http.port", "8080")
	v.SetDefault("server.http.read_timeout", 15*time.Second)
	v.SetDefault("server.http.write_timeout", 60*time.Second)
	v.SetDefault("server.http.request_timeout", 60*time.Second)
	v.SetDefault("server.http.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.http.max_body_bytes", 1<<20)
	v.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.http.cors.allowed_headers", []string{"Content-Type"})
	v.SetDefault("server.http.cors.exposed_headers", []string{})
	v.SetDefault("server.http.cors.allow_credentials", false)
	v.SetDefault("server.http.cors.max_age", 86400)

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.timeout", 30*time.Second)

	v.SetDefault("shop.name", "КФХ Бракнис")
	v.SetDefault("shop.currency", currency.CurrencyRUB.String())

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "order-notify-svc")
	v.SetDefault("tracing.jaeger_endpoint", "http://jaeger:14268/api/traces")

	_ = v.BindEnv("smtp.host", "SMTP_HOST")
	_ = v.BindEnv("smtp.port", "SMTP_PORT")
	_ = v.BindEnv("smtp.user", "SMTP_USER")
	_ = v.BindEnv("smtp.password", "SMTP_PASSWORD")
	_ = v.BindEnv("smtp.from", "SMTP_FROM")
	_ = v.BindEnv("smtp.recipient", "RECIPIENT_EMAIL")
	_ = v.BindEnv("smtp.timeout", "SMTP_TIMEOUT")
	_ = v.BindEnv("pdf.font_regular", "PDF_FONT_REGULAR")
	_ = v.BindEnv("pdf.font_bold", "PDF_FONT_BOLD")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// New builds the Config from v. Mail settings are not validated here: a
// missing SMTP setting is reported per request.
func New(v *viper.Viper) (*Config, error) {
	cur, err := currency.ParseCurrency(strings.ToUpper(v.GetString("shop.currency")))
	if err != nil {
		return nil, fmt.Errorf("shop.currency: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.http.port"),
			ReadTimeout:     v.GetDuration("server.http.read_timeout"),
			WriteTimeout:    v.GetDuration("server.http.write_timeout"),
			RequestTimeout:  v.GetDuration("server.http.request_timeout"),
			ShutdownTimeout: v.GetDuration("server.http.shutdown_timeout"),
			MaxBodyBytes:    v.GetInt64("server.http.max_body_bytes"),
			CORS: CORSConfig{
				AllowedOrigins:   v.GetStringSlice("server.http.cors.allowed_origins"),
				AllowedMethods:   v.GetStringSlice("server.http.cors.allowed_methods"),
				AllowedHeaders:   v.GetStringSlice("server.http.cors.allowed_headers"),
				ExposedHeaders:   v.GetStringSlice("server.http.cors.exposed_headers"),
				AllowCredentials: v.GetBool("server.http.cors.allow_credentials"),
				MaxAge:           v.GetInt("server.http.cors.max_age"),
			},
		},
		Mail: MailConfig{
			Host:      v.GetString("smtp.host"),
			Port:      v.GetInt("smtp.port"),
			Username:  v.GetString("smtp.user"),
			Password:  v.GetString("smtp.password"),
			From:      v.GetString("smtp.from"),
			Recipient: v.GetString("smtp.recipient"),
			Timeout:   v.GetDuration("smtp.timeout"),
		},
		Shop: ShopConfig{
			Name:     v.GetString("shop.name"),
			Currency: cur,
		},
		PDF: PDFConfig{
			FontRegular: v.GetString("pdf.font_regular"),
			FontBold:    v.GetString("pdf.font_bold"),
		},
		Tracing: TracingConfig{
			Enabled:        v.GetBool("tracing.enabled"),
			ServiceName:    v.GetString("tracing.service_name"),
			JaegerEndpoint: v.GetString("tracing.jaeger_endpoint"),
		},
	}, nil
}

// MustNew builds the Config from the global viper instance.
func MustNew() *Config {
	cfg, err := New(viper.GetViper())
	if err != nil {
		panic("error while building config: " + err.Error())
	}

	return cfg
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
