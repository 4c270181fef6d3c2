package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Root     RootConfig
	Code     CodeConfig
	Client   ClientConfig
	External ExternalConfig
	Audit    AuditConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	PageSize int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

// RootConfig holds the shared secret compared on root sign-in.
type RootConfig struct {
	Secret string
}

type CodeConfig struct {
	ExpiryHours int
}

// ClientConfig points at the front-end hosting the set-password page.
type ClientConfig struct {
	URL string
}

type ExternalConfig struct {
	IPRSBaseURL string
	IPRSAPIKey  string
	MailAPIURL  string
	MailFrom    string
}

type AuditConfig struct {
	StoreEvents bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_ISSUER", "adviser-portal")
	viper.SetDefault("CODE_EXPIRY_HOURS", 24)
	viper.SetDefault("PAGE_SIZE", 25)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORE_EVENTS", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			PageSize: viper.GetInt("PAGE_SIZE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			Issuer:      viper.GetString("JWT_ISSUER"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Root: RootConfig{
			Secret: viper.GetString("ROOT_SECRET"),
		},
		Code: CodeConfig{
			ExpiryHours: viper.GetInt("CODE_EXPIRY_HOURS"),
		},
		Client: ClientConfig{
			URL: viper.GetString("CLIENT_URL"),
		},
		External: ExternalConfig{
			IPRSBaseURL: viper.GetString("IPRS_BASE_URL"),
			IPRSAPIKey:  viper.GetString("IPRS_API_KEY"),
			MailAPIURL:  viper.GetString("MAIL_API_URL"),
			MailFrom:    viper.GetString("MAIL_FROM"),
		},
		Audit: AuditConfig{
			StoreEvents: viper.GetBool("STORE_EVENTS"),
		},
	}

	return config, nil
}
