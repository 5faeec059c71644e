// Package config は環境変数と .env ファイルから実行時設定を読み込みます。
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config はサーバーの実行時設定を保持します。
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	HTTPAddr         string
	CORSAllowOrigins []string

	LogLevel  string
	LogFormat string

	EnvFileLoaded bool
}

// LoadDefaults は開発用のデフォルト値を設定します。
func (c *Config) LoadDefaults() {
	c.DBHost = "127.0.0.1"
	c.DBPort = "3306"
	c.HTTPAddr = ":8080"
	c.CORSAllowOrigins = []string{"http://localhost:3000"}
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// Load は envFile (空ならカレントの .env) を読み込み、環境変数で上書きした Config を返します。
// .env が存在しなくてもエラーにはしません。読み込めたかどうかは EnvFileLoaded に残ります。
// ロガー初期化前に呼ばれるため、ここではログを出しません。
func Load(envFile string) *Config {
	var err error
	if envFile != "" {
		err = godotenv.Load(envFile)
	} else {
		err = godotenv.Load()
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	cfg.EnvFileLoaded = err == nil
	return cfg
}

func (c *Config) applyEnv() {
	setString(&c.DBHost, "MYSQL_HOST")
	setString(&c.DBPort, "MYSQL_PORT")
	setString(&c.DBUser, "MYSQL_USER")
	setString(&c.DBPassword, "MYSQL_PASSWORD")
	setString(&c.DBName, "MYSQL_DB")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.CORSAllowOrigins = origins
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
