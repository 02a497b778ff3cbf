package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppHost   string          `mapstructure:"host"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	OAuth     OAuthConfig     `mapstructure:"oauth"`
	Mail      MailConfig      `mapstructure:"mail"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For and friends.
	// Only enable it when a reverse proxy overwrites those headers.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Algorithm  string        `mapstructure:"algorithm"`
	Issuer     string        `mapstructure:"issuer"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

type OAuthConfig struct {
	Timeout time.Duration  `mapstructure:"timeout"`
	Google  ProviderConfig `mapstructure:"google"`
	Naver   ProviderConfig `mapstructure:"naver"`
	Kakao   ProviderConfig `mapstructure:"kakao"`
}

// ProviderConfig holds client credentials for one OAuth provider. TokenURL and
// ProfileURL default to the provider's public endpoints when empty.
type ProviderConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	TokenURL     string `mapstructure:"token_url"`
	ProfileURL   string `mapstructure:"profile_url"`
}

type MailConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	CodeTTL  time.Duration `mapstructure:"code_ttl"`

	// MaxCodeAttempts wrong guesses discard a mailed code.
	MaxCodeAttempts int `mapstructure:"max_code_attempts"`
}

type StorageConfig struct {
	Path          string `mapstructure:"path"`
	MaxImageBytes int64  `mapstructure:"max_image_bytes"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `mapstructure:"login_rps"`
	LoginBurst int     `mapstructure:"login_burst"`
}

var supportedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "http://localhost:8080")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.trust_proxy_headers", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.issuer", "markeep")
	v.SetDefault("jwt.access_ttl", time.Hour)
	v.SetDefault("jwt.refresh_ttl", 14*24*time.Hour)
	v.SetDefault("oauth.timeout", 10*time.Second)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.code_ttl", 10*time.Minute)
	v.SetDefault("mail.max_code_attempts", 5)
	v.SetDefault("storage.path", "./data/images")
	v.SetDefault("storage.max_image_bytes", 5<<20)
	v.SetDefault("ratelimit.login_rps", 1.0)
	v.SetDefault("ratelimit.login_burst", 10)

	// AutomaticEnv only sees keys viper already knows about; registering the
	// empty ones lets JWT_SECRET, OAUTH_GOOGLE_CLIENT_ID etc. be picked up.
	for _, key := range []string{
		"db.source", "jwt.secret",
		"oauth.google.client_id", "oauth.google.client_secret", "oauth.google.redirect_uri",
		"oauth.google.token_url", "oauth.google.profile_url",
		"oauth.naver.client_id", "oauth.naver.client_secret", "oauth.naver.redirect_uri",
		"oauth.naver.token_url", "oauth.naver.profile_url",
		"oauth.kakao.client_id", "oauth.kakao.client_secret", "oauth.kakao.redirect_uri",
		"oauth.kakao.token_url", "oauth.kakao.profile_url",
		"mail.host", "mail.username", "mail.password", "mail.from",
	} {
		v.SetDefault(key, "")
	}
}

// Load reads configs/settings.yml (if present) and environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.DB.Source == "" {
		return errors.New("db.source is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if !supportedAlgorithms[c.JWT.Algorithm] {
		return fmt.Errorf("jwt.algorithm %q is not supported", c.JWT.Algorithm)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("jwt.access_ttl and jwt.refresh_ttl must be positive")
	}
	if c.JWT.RefreshTTL < c.JWT.AccessTTL {
		return errors.New("jwt.refresh_ttl must not be shorter than jwt.access_ttl")
	}
	return nil
}
