package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
)

// Config holds all service settings, populated from environment variables.
// With nothing set, the service reads mart_conditions_week.csv and listens on :8092.
type Config struct {
	DataPath      string `validate:"required"`
	CSVDelimiter  rune
	MissingValues string `validate:"oneof=skip propagate"`

	HTTPAddr        string `validate:"required"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFormat       string `validate:"oneof=json text"`
	ShutdownTimeout time.Duration

	PlotlyURL     string `validate:"omitempty,url"`
	StylesheetURL string `validate:"omitempty,url"`

	// Kafka export of aggregate records.
	KafkaEnabled        bool
	KafkaBrokers        []string
	KafkaAggregateTopic string `validate:"required"`
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("CSV_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	kafkaEnabled := brokers != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}
	var brokerList []string
	if brokers != "" {
		brokerList = sharedcfg.ParseBrokers(brokers)
	}

	cfg := &Config{
		DataPath:      sharedcfg.EnvOrDefault("DATA_PATH", "mart_conditions_week.csv"),
		CSVDelimiter:  delimiter,
		MissingValues: sharedcfg.EnvOrDefault("MISSING_VALUES", "skip"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8092"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PlotlyURL:     os.Getenv("PLOTLY_JS_URL"),
		StylesheetURL: os.Getenv("STYLESHEET_URL"),

		KafkaEnabled:        kafkaEnabled,
		KafkaBrokers:        brokerList,
		KafkaAggregateTopic: sharedcfg.EnvOrDefault("KAFKA_AGGREGATE_TOPIC", "city-conditions-aggregates"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

// parseDelimiter accepts a single character, or the word "tab".
func parseDelimiter(s string) (rune, error) {
	if s == "tab" || s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, errors.New("invalid CSV_DELIMITER")
	}
	return r, nil
}
