package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"agentstack/internal/route"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Site    SiteConfig    `yaml:"site"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host      string `yaml:"host" validate:"omitempty,ip|hostname_rfc1123"` // リッスンするホスト
	Port      int    `yaml:"port" validate:"min=1,max=65535"`               // リッスンするポート番号
	ReuseAddr bool   `yaml:"reuse_addr"`                                    // SO_REUSEADDR を設定するか

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`     // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`    // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"` // シャットダウン待ち時間
}

// SiteConfig は配信するサイトの設定
type SiteConfig struct {
	Root string `yaml:"root" validate:"required"` // サイトルートのディレクトリ

	// 空の場合は組み込みのルートテーブルを使う
	Routes map[string]string `yaml:"routes" validate:"omitempty,dive,keys,startswith=/,endkeys,required"`
}

// MetricsConfig は運用向けリスナーの設定
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"` // 空なら起動しない
}

var validate = validator.New()

// Default は組み込みのデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8892,
			ReuseAddr:       true,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Site: SiteConfig{
			Root: ".",
		},
	}
}

// Load は設定を読み込む
// デフォルト値 → .env → SITE_CONFIG のYAML → 環境変数 の順に上書きする
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile はpathのYAMLを使って設定を読み込む
// pathが空の場合は環境変数 SITE_CONFIG を使う
func LoadWithFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envの読み込みに失敗: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("SITE_CONFIG")
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// LoadFile はYAMLファイルの内容で設定を上書きする
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗 (%s): %w", path, err)
	}
	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Server.Port = getEnvAsIntOrDefault("SERVER_PORT", c.Server.Port)
	c.Site.Root = getEnvOrDefault("SITE_ROOT", c.Site.Root)
	c.Metrics.Addr = getEnvOrDefault("METRICS_ADDR", c.Metrics.Addr)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("無効な設定値: %w", err)
	}

	return nil
}

// Routes は使用するルートテーブル（サイトルートからの相対パス）を返す
func (c *Config) Routes() map[string]string {
	if len(c.Site.Routes) == 0 {
		return route.DefaultRoutes()
	}
	return c.Site.Routes
}

// RouteTable は設定からルートテーブルを構築する
func (c *Config) RouteTable() (*route.Table, error) {
	table, err := route.NewTable(c.Site.Root, c.Routes())
	if err != nil {
		return nil, fmt.Errorf("ルートテーブルの構築に失敗: %w", err)
	}
	return table, nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
