package configs

type ServiceConfig struct {
	API              apiConfig              `yaml:"api"`
	ServiceDiscovery serviceDiscoveryConfig `yaml:"serviceDiscovery"`
	DatabaseConfig   DatabaseConfig         `yaml:"database"`
	Provider         ProviderConfig         `yaml:"provider"`
	MessengerConfig  MessengerConfig        `yaml:"messenger"`
	Prometheus       PrometheusConfig       `yaml:"prometheus"`
	Telemetry        TelemetryConfig        `yaml:"telemetry"`
	Auth             AuthConfig             `yaml:"auth"`
}

type apiConfig struct {
	Port int `yaml:"port"`
}

type serviceDiscoveryConfig struct {
	Consul consulConfig `yaml:"consul"`
}
type consulConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Mysql MysqlConfig `yaml:"mysql"`
}

type MysqlConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" default:"3306"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"db_name"`
	// Pool bounds: callers block when MaxOpenConns connections are in
	// use, up to WaitTimeoutSeconds per operation.
	MaxOpenConns       int `yaml:"max_open_conns" default:"10"`
	MaxIdleConns       int `yaml:"max_idle_conns" default:"5"`
	WaitTimeoutSeconds int `yaml:"wait_timeout_seconds" default:"5"`
}

// ProviderConfig configures the remote metadata provider client.
type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"10"`
	RateLimit      int    `yaml:"rate_limit" default:"40"`
	RateBurst      int    `yaml:"rate_burst" default:"40"`
}

type MessengerConfig struct {
	Kafka kafkaConfig `yaml:"kafka"`
}

type kafkaConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port" default:"9092"`
}

type PrometheusConfig struct {
	MetricsPort int `yaml:"metricsPort"`
}

type TelemetryConfig struct {
	OTLPURL string `yaml:"otlpUrl"`
}

type AuthConfig struct {
	// Secret verifies bearer tokens issued by the credential service.
	Secret string `yaml:"secret"`
}
