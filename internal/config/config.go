package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Pricing   PricingConfig
	Currency  CurrencyConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  int // in minutes
	RefreshExpiry int // in days
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerWindow int
	WindowSeconds     int
}

// PricingConfig carries the quotation business policy: financing surcharge
// factors per installment plan and the default markup suggested to staff.
type PricingConfig struct {
	FactorThreeInstallments float64
	FactorSixInstallments   float64
	DefaultMarkupPercent    float64
}

// CurrencyConfig describes how prices are displayed. Defaults match the
// es-AR / ARS convention: "$110.000".
type CurrencyConfig struct {
	Symbol           string
	GroupSeparator   string
	DecimalSeparator string
	FractionDigits   int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY", 7)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 30)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("PRICING_FACTOR_3_INSTALLMENTS", 1.1298)
	viper.SetDefault("PRICING_FACTOR_6_INSTALLMENTS", 1.2138)
	viper.SetDefault("PRICING_DEFAULT_MARKUP_PERCENT", 10.0)
	viper.SetDefault("CURRENCY_SYMBOL", "$")
	viper.SetDefault("CURRENCY_GROUP_SEPARATOR", ".")
	viper.SetDefault("CURRENCY_DECIMAL_SEPARATOR", ",")
	viper.SetDefault("CURRENCY_FRACTION_DIGITS", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt("JWT_REFRESH_EXPIRY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds:     viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Pricing: PricingConfig{
			FactorThreeInstallments: viper.GetFloat64("PRICING_FACTOR_3_INSTALLMENTS"),
			FactorSixInstallments:   viper.GetFloat64("PRICING_FACTOR_6_INSTALLMENTS"),
			DefaultMarkupPercent:    viper.GetFloat64("PRICING_DEFAULT_MARKUP_PERCENT"),
		},
		Currency: CurrencyConfig{
			Symbol:           viper.GetString("CURRENCY_SYMBOL"),
			GroupSeparator:   viper.GetString("CURRENCY_GROUP_SEPARATOR"),
			DecimalSeparator: viper.GetString("CURRENCY_DECIMAL_SEPARATOR"),
			FractionDigits:   viper.GetInt("CURRENCY_FRACTION_DIGITS"),
		},
	}
}
