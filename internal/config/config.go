package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	// PublicBaseURL is the externally reachable root for bucket objects.
	// When empty, URLs are derived from Endpoint + Bucket.
	PublicBaseURL string
	PresignTTL    time.Duration
}

type GalleryConfig struct {
	DefaultFolder  string
	FeaturedFolder string
	DefaultLimit   int
	AdminLimit     int
	MaxLimit       int
}

type AdminConfig struct {
	// PasswordHash is the argon2id-encoded hash of the admin password.
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type SiteConfig struct {
	BaseURL     string
	StaticPages []string
	SitemapTTL  time.Duration
}

type AppConfig struct {
	Environment string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Gallery     GalleryConfig
	Admin       AdminConfig
	Site        SiteConfig
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 20)
	v.SetDefault("postgres.maxidle", 5)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucket", "portfolio-images")
	v.SetDefault("storage.usessl", true)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.presignttl", "1h")

	v.SetDefault("gallery.defaultfolder", "gallery")
	v.SetDefault("gallery.featuredfolder", "featured")
	v.SetDefault("gallery.defaultlimit", 20)
	v.SetDefault("gallery.adminlimit", 100)
	v.SetDefault("gallery.maxlimit", 200)

	v.SetDefault("admin.tokenttl", "12h")

	v.SetDefault("site.baseurl", "https://kuyajp.photography")
	v.SetDefault("site.staticpages", []string{"", "gallery", "about", "services", "contact"})
	v.SetDefault("site.sitemapttl", "24h")
}
