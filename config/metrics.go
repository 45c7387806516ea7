package config

import (
	"fmt"
	"net"
	"strconv"
)

const (
	defaultMetricsServerPort = 2112
	defaultMetricsHost       = "127.0.0.1"
)

// MetricsConfig is where the prometheus endpoint is served
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// IP of the prometheus server
	Host string `mapstructure:"host" yaml:"host"`
	// Port of the prometheus server
	ServerPort int `mapstructure:"server-port" yaml:"server-port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.ServerPort < 0 || cfg.ServerPort > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.ServerPort)
	}

	if ip := net.ParseIP(cfg.Host); ip == nil {
		return fmt.Errorf("invalid host: %v", cfg.Host)
	}

	return nil
}

func (cfg *MetricsConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.ServerPort))
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:    true,
		ServerPort: defaultMetricsServerPort,
		Host:       defaultMetricsHost,
	}
}
