// sentiric-numbering-service/internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// ServerConfig, HTTP ve gRPC sunucu portlarını tutar.
type ServerConfig struct {
	HttpPort string
	GRPCPort string
}

// TLSConfig, mTLS için sertifika yollarını tutar.
type TLSConfig struct {
	CertPath string
	KeyPath  string
	CaPath   string
}

// Enabled, üç yolun da tanımlı olup olmadığını söyler.
func (t TLSConfig) Enabled() bool {
	return t.CertPath != "" && t.KeyPath != "" && t.CaPath != ""
}

// Config, uygulamanın tüm yapılandırmasını içerir.
type Config struct {
	Env      string
	LogLevel string

	// DefaultRegion, istekte bölge verilmediğinde kullanılan ISO 3166 kodu.
	DefaultRegion string

	// DatabaseURL boş ise numaralandırma planları sadece gömülü tablodan okunur.
	DatabaseURL string

	// RedisURL boş ise parse cache devre dışıdır.
	RedisURL      string
	ParseCacheTTL time.Duration

	// AdminToken boş ise plan yazma uç noktaları kapalıdır.
	AdminToken string

	Server ServerConfig
	TLS    TLSConfig
}

var ErrIncompleteTLS = errors.New("TLS yapılandırması eksik: sertifika, anahtar ve CA yolları birlikte verilmeli")

// Load, .env dosyasını ve ortam değişkenlerini okuyarak yapılandırmayı oluşturur.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}

	ttl, err := time.ParseDuration(getEnv("PARSE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("geçersiz PARSE_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Env:           getEnv("ENV", "production"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DefaultRegion: strings.ToUpper(getEnv("DEFAULT_REGION", "TR")),
		DatabaseURL:   getEnv("POSTGRES_URL", ""),
		RedisURL:      getEnv("REDIS_URL", "redis://redis:6379"),
		ParseCacheTTL: ttl,
		AdminToken:    getEnv("NUMBERING_ADMIN_TOKEN", ""),

		Server: ServerConfig{
			HttpPort: getEnv("NUMBERING_SERVICE_HTTP_PORT", "12030"),
			GRPCPort: getEnv("NUMBERING_SERVICE_GRPC_PORT", "12031"),
		},
		TLS: TLSConfig{
			CertPath: getEnv("NUMBERING_SERVICE_CERT_PATH", ""),
			KeyPath:  getEnv("NUMBERING_SERVICE_KEY_PATH", ""),
			CaPath:   getEnv("GRPC_TLS_CA_PATH", ""),
		},
	}

	// Yolların bir kısmı verilmişse sessizce TLS'siz açılmıyoruz.
	t := cfg.TLS
	if !t.Enabled() && (t.CertPath != "" || t.KeyPath != "" || t.CaPath != "") {
		return nil, ErrIncompleteTLS
	}

	return cfg, nil
}

// getEnv, belirtilen anahtarla bir ortam değişkenini okur, bulunamazsa varsayılan değeri döndürür.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
