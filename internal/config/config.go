package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

type Config struct {
	App    AppConfig
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	CMS    CMSConfig
	RSVP   RSVPConfig
	Draft  DraftConfig
}

type AppConfig struct {
	Env     string `mapstructure:"env"`
	SiteURL string `mapstructure:"siteURL"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout    time.Duration `mapstructure:"idleTimeout"`
	ShutdownPeriod time.Duration `mapstructure:"shutdownPeriod"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

type CMSConfig struct {
	ServiceDomain      string        `mapstructure:"serviceDomain"`
	APIKey             string        `mapstructure:"apiKey"`
	BaseURL            string        `mapstructure:"baseURL"`
	DearBlockEndpoint  string        `mapstructure:"dearBlockEndpoint"`
	InvitationEndpoint string        `mapstructure:"invitationEndpoint"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

type RSVPConfig struct {
	ScriptURL    string        `mapstructure:"scriptURL"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"maxBodyBytes"`
}

type DraftConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, EnvProduction)
}

// Configured reports whether enough is set to reach the CMS.
func (c CMSConfig) Configured() bool {
	return c.APIKey != "" && (c.ServiceDomain != "" || c.BaseURL != "")
}

func LoadConfig(configPath string) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables and config file")
	}

	v := viper.New()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.siteURL", "")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 20*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.shutdownPeriod", 15*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("cors.allowOrigins", []string{"http://localhost:3000"})

	v.SetDefault("cms.serviceDomain", "")
	v.SetDefault("cms.apiKey", "")
	v.SetDefault("cms.baseURL", "")
	v.SetDefault("cms.dearBlockEndpoint", "dear-block")
	v.SetDefault("cms.invitationEndpoint", "invitation")
	v.SetDefault("cms.timeout", 10*time.Second)

	v.SetDefault("rsvp.scriptURL", "")
	v.SetDefault("rsvp.timeout", 15*time.Second)
	v.SetDefault("rsvp.maxBodyBytes", int64(1<<20))

	v.SetDefault("draft.secret", "")
	v.SetDefault("draft.ttl", 24*time.Hour)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)

	// Names the hosting environment already uses for these values.
	_ = v.BindEnv("app.env", "APP_ENV", "GO_ENV")
	_ = v.BindEnv("rsvp.scriptURL", "GOOGLE_APPS_SCRIPT_URL")
	_ = v.BindEnv("cms.serviceDomain", "MICROCMS_SERVICE_DOMAIN")
	_ = v.BindEnv("cms.apiKey", "MICROCMS_API_KEY")
	_ = v.BindEnv("draft.secret", "DRAFT_MODE_SECRET")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Warning: could not read config file: %s. Error: %v\n", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
