package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/faunadata/fauna/internal/constants"
	"github.com/faunadata/fauna/internal/logging"
)

const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultKeepalive         = 30 * time.Second
)

// ServerConfig is the faunad configuration file.
type ServerConfig struct {
	Server  HTTPConfig    `yaml:"server" json:"server" toml:"server" koanf:"server"`
	Monitor MonitorConfig `yaml:"monitor" json:"monitor" toml:"monitor" koanf:"monitor"`
	Species SpeciesConfig `yaml:"species" json:"species" toml:"species" koanf:"species"`
	Log     LogConfig     `yaml:"log" json:"log" toml:"log" koanf:"log"`
}

type HTTPConfig struct {
	Host              string    `yaml:"host" json:"host" toml:"host" koanf:"host"`
	Port              Port      `yaml:"port" json:"port" toml:"port" koanf:"port"`
	ReadHeaderTimeout Duration  `yaml:"readHeaderTimeout" json:"readHeaderTimeout" toml:"readHeaderTimeout" koanf:"readHeaderTimeout"`
	ShutdownTimeout   Duration  `yaml:"shutdownTimeout" json:"shutdownTimeout" toml:"shutdownTimeout" koanf:"shutdownTimeout"`
	TLS               TLSConfig `yaml:"tls" json:"tls" toml:"tls" koanf:"tls"`
}

type TLSConfig struct {
	CertFile string `yaml:"certFile,omitempty" json:"certFile,omitempty" toml:"certFile,omitempty" koanf:"certFile"`
	KeyFile  string `yaml:"keyFile,omitempty" json:"keyFile,omitempty" toml:"keyFile,omitempty" koanf:"keyFile"`
}

type MonitorConfig struct {
	// QueueLimit caps pending events per viewer; 0 means unbounded.
	QueueLimit        int      `yaml:"queueLimit" json:"queueLimit" toml:"queueLimit" koanf:"queueLimit"`
	Keepalive         Duration `yaml:"keepalive" json:"keepalive" toml:"keepalive" koanf:"keepalive"`
	TrustProxyHeaders bool     `yaml:"trustProxyHeaders" json:"trustProxyHeaders" toml:"trustProxyHeaders" koanf:"trustProxyHeaders"`
	ExcludePaths      []string `yaml:"excludePaths,omitempty" json:"excludePaths,omitempty" toml:"excludePaths,omitempty" koanf:"excludePaths"`
}

type SpeciesConfig struct {
	DataFile string `yaml:"dataFile" json:"dataFile" toml:"dataFile" koanf:"dataFile"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" toml:"level" koanf:"level"`
	Format string `yaml:"format" json:"format" toml:"format" koanf:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty" toml:"file,omitempty" koanf:"file"`
}

// Default returns a configuration with every field set to its default.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: HTTPConfig{
			Host:              constants.DefaultHost,
			Port:              Port(constants.DefaultPort),
			ReadHeaderTimeout: Duration(DefaultReadHeaderTimeout),
			ShutdownTimeout:   Duration(DefaultShutdownTimeout),
		},
		Monitor: MonitorConfig{
			QueueLimit: constants.DefaultMonitorQueue,
			Keepalive:  Duration(DefaultKeepalive),
		},
		Species: SpeciesConfig{
			DataFile: constants.DefaultSpeciesFile,
		},
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Format: constants.DefaultLogFormat,
		},
	}
}

// Normalize fills empty fields with defaults. QueueLimit is left alone since
// zero is meaningful.
func (sc *ServerConfig) Normalize() *ServerConfig {
	def := Default()
	if strings.TrimSpace(sc.Server.Host) == "" {
		sc.Server.Host = def.Server.Host
	}
	if sc.Server.Port == "" {
		sc.Server.Port = def.Server.Port
	}
	if sc.Server.ReadHeaderTimeout <= 0 {
		sc.Server.ReadHeaderTimeout = def.Server.ReadHeaderTimeout
	}
	if sc.Server.ShutdownTimeout <= 0 {
		sc.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if sc.Monitor.Keepalive <= 0 {
		sc.Monitor.Keepalive = def.Monitor.Keepalive
	}
	if sc.Species.DataFile == "" {
		sc.Species.DataFile = def.Species.DataFile
	}
	if sc.Log.Level == "" {
		sc.Log.Level = def.Log.Level
	}
	if sc.Log.Format == "" {
		sc.Log.Format = def.Log.Format
	}
	return sc
}

func (sc *ServerConfig) Validate() error {
	if err := sc.Server.Port.Validate(); err != nil {
		return fmt.Errorf("server.port: %w", err)
	}
	if (sc.Server.TLS.CertFile == "") != (sc.Server.TLS.KeyFile == "") {
		return errors.New("server.tls: certFile and keyFile must be set together")
	}
	if sc.Monitor.QueueLimit < 0 {
		return fmt.Errorf("monitor.queueLimit must not be negative, got %d", sc.Monitor.QueueLimit)
	}
	for _, p := range sc.Monitor.ExcludePaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("monitor.excludePaths: %q must start with a slash", p)
		}
	}
	if strings.TrimSpace(sc.Species.DataFile) == "" {
		return errors.New("species.dataFile is required")
	}
	if _, err := logging.ParseLevel(sc.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(sc.Log.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, sc.Log.Format)
	}
	return nil
}

// Addr returns the host:port listen address.
func (sc *ServerConfig) Addr() string {
	return net.JoinHostPort(sc.Server.Host, sc.Server.Port.String())
}

// LoggingConfig converts the log section for logging.New.
func (sc *ServerConfig) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  sc.Log.Level,
		Format: sc.Log.Format,
		File:   sc.Log.File,
	}
}
