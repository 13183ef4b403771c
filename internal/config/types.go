package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// ConfigServer настройки HTTP сервера
type ConfigServer struct {
	Host                    string `mapstructure:"host"`
	PortHTTP                int    `mapstructure:"port_http"`
	HTTPReadTimeout         int    `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int    `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int    `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int    `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int    `mapstructure:"graceful_shutdown_timeout"`
	// DisplayTimezone - зона для отображения дат в UI (IANA имя, пусто = Local)
	DisplayTimezone string `mapstructure:"display_timezone"`
	// SessionIdleMinutes - время, после которого неактивная сессия браузера удаляется
	SessionIdleMinutes int `mapstructure:"session_idle_minutes"`
}

// ConfigAPI настройки REST API заметок, с которым работает клиент
type ConfigAPI struct {
	// BaseURL - базовый адрес API. Относительный путь (например, /api)
	// разрешается относительно собственного HTTP адреса сервиса.
	BaseURL               string `mapstructure:"base_url"`
	TimeoutSeconds        int    `mapstructure:"timeout_seconds"`
	WatchEvents           bool   `mapstructure:"watch_events"`
	WatchReconnectSeconds int    `mapstructure:"watch_reconnect_seconds"`
}

// ConfigMock настройки mock backend
type ConfigMock struct {
	Enabled    bool   `mapstructure:"enabled"`
	Storage    string `mapstructure:"storage"` // memory | sqlite
	SQLitePath string `mapstructure:"sqlite_path"`
	Seed       bool   `mapstructure:"seed"`
}

// ConfigGateway настройки HTTP слоя mock backend
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigQuery настройки клиентского кэша запросов
type ConfigQuery struct {
	StaleTimeSeconds int `mapstructure:"stale_time_seconds"`
	Retry            int `mapstructure:"retry"`
	RetryDelayMS     int `mapstructure:"retry_delay_ms"`
}

// ConfigSwagger настройки выдачи OpenAPI спецификации
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	API     *ConfigAPI     `mapstructure:"api"`
	Mock    *ConfigMock    `mapstructure:"mock"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Query   *ConfigQuery   `mapstructure:"query"`
	Swagger *ConfigSwagger `mapstructure:"swagger"`
}
