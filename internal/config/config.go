package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL - базовый адрес API по умолчанию
const DefaultBaseURL = "/api"

// envPattern находит выражения вида ${VAR} и ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// LoadDotEnv загружает переменные из .env файлов, если они существуют.
// Уже установленные переменные окружения не перезаписываются.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("godotenv.Load(%s): %w", f, err)
		}
	}
	return nil
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации
// Использует generic для работы с произвольным типом конфигурации
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// Значения, похожие на boolean или число, сохраняем с правильным типом
		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults заполняет отсутствующие секции и нулевые значения
func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{Level: "info"}
	}
	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	if c.Server.PortHTTP == 0 {
		c.Server.PortHTTP = 8080
	}
	if c.Server.GracefulShutdownTimeout == 0 {
		c.Server.GracefulShutdownTimeout = 10
	}
	if c.Server.SessionIdleMinutes <= 0 {
		c.Server.SessionIdleMinutes = 30
	}
	if c.API == nil {
		c.API = &ConfigAPI{}
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.WatchReconnectSeconds <= 0 {
		c.API.WatchReconnectSeconds = 5
	}
	if c.Mock == nil {
		c.Mock = &ConfigMock{Enabled: true, Seed: true}
	}
	if c.Mock.Storage == "" {
		c.Mock.Storage = "memory"
	}
	if c.Mock.SQLitePath == "" {
		c.Mock.SQLitePath = "notes.sqlite"
	}
	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{CORSAllowedOrigins: "*"}
	}
	if c.Query == nil {
		c.Query = &ConfigQuery{StaleTimeSeconds: 300, Retry: 1, RetryDelayMS: 1000}
	}
	if c.Query.StaleTimeSeconds == 0 {
		c.Query.StaleTimeSeconds = 300
	}
	if c.Query.Retry < 0 {
		c.Query.Retry = 0
	}
	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{}
	}
}

// ResolveBaseURL возвращает абсолютный базовый адрес API.
// Относительный адрес (например, /api) разрешается относительно listenAddr.
func ResolveBaseURL(baseURL, listenAddr string) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.IsAbs() {
		return strings.TrimRight(baseURL, "/"), nil
	}

	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "", fmt.Errorf("split listen addr %q: %w", listenAddr, err)
	}
	// Слушаем на всех интерфейсах - обращаемся к себе через loopback
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	path := "/" + strings.Trim(u.Path, "/")
	if path == "/" {
		path = ""
	}

	return "http://" + net.JoinHostPort(host, port) + path, nil
}
