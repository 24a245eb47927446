package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port string `mapstructure:"PORT"` // サーバーポート（8080）

	//DATABASE_URLがあれば個別のPOSTGRES_*より優先
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     int    `mapstructure:"POSTGRES_PORT"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`

	JWTSecret string `mapstructure:"JWT_SECRET"` // JWT署名シークレット（検証のみ）

	//rate limit用。空ならrate limitなしで起動する
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	//注文の送料（固定額）
	ShippingFeeRaw string `mapstructure:"SHIPPING_FEE"`
	ShippingFee    decimal.Decimal `mapstructure:"-"`

	GoEnv string `mapstructure:"GO_ENV"` // dev/prod
}

// Loadはapp.env（あれば）と環境変数から設定を読む
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigFile("app.env")
	v.SetConfigType("env")
	//ファイルは任意。無ければ環境変数だけで動く
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	//AutomaticEnvで拾うにはキーを知らせておく必要がある
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "storefront")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SHIPPING_FEE", "0")
	v.SetDefault("GO_ENV", "dev")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	fee, err := decimal.NewFromString(cfg.ShippingFeeRaw)
	if err != nil || fee.IsNegative() {
		return Config{}, fmt.Errorf("SHIPPING_FEE must be a non-negative number")
	}
	cfg.ShippingFee = fee

	return cfg, nil
}
