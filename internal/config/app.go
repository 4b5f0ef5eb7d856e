package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=10",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

// BankFeed points at the national bank's exchange-rate endpoint.
type BankFeed struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Ingest struct {
	ValidityWindowMinutes int `mapstructure:"validity_window_minutes"`
}

type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	BankFeed   BankFeed   `mapstructure:"bank_feed"`
	Ingest     Ingest     `mapstructure:"ingest"`
	Auth       Auth       `mapstructure:"auth"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional, envs may come from the environment itself
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("bank_feed.timeout_seconds", 20)
	viper.SetDefault("ingest.validity_window_minutes", 30)
	viper.SetDefault("logging.level", "info")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// bank feed env vars
	_ = viper.BindEnv("bank_feed.url", "BANK_FEED_URL")
	_ = viper.BindEnv("bank_feed.timeout_seconds", "BANK_FEED_TIMEOUT_SECONDS")

	// ingest env vars
	_ = viper.BindEnv("ingest.validity_window_minutes", "INGEST_VALIDITY_WINDOW_MINUTES")

	// auth env vars
	_ = viper.BindEnv("auth.jwt_secret", "JWT_SECRET")

	// logging env vars
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
