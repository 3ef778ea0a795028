package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Angel Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Decision  DecisionConfig  `yaml:"decision_engine"`
	Devices   DevicesConfig   `yaml:"devices"`
	Content   ContentConfig   `yaml:"content_generation"`
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Host     string              `yaml:"host"`
	Port     int                 `yaml:"port"`
	Timeouts ServerTimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig          `yaml:"cors"`
}

// ServerTimeoutConfig contains HTTP timeout settings (seconds).
type ServerTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
// MQTT is optional: when disabled, activity observations arrive only
// through the HTTP capture endpoint.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB telemetry sink settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// DatabaseConfig contains SQLite database settings for the profile store.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DecisionConfig contains the decision engine parameters.
type DecisionConfig struct {
	// ThresholdConfidence is the minimum detector confidence required to
	// trust the reported activity. Observations below it resolve to "default".
	ThresholdConfidence float64 `yaml:"threshold_confidence"`

	// DecisionRules maps an activity label to its base recommendation types.
	// A "default" entry is required.
	DecisionRules map[string][]string `yaml:"decision_rules"`

	// LearningRate and UserFeedbackWeight parameterise the feedback policy
	// hook. The default policy records feedback without adjusting weights.
	LearningRate       float64 `yaml:"learning_rate"`
	UserFeedbackWeight float64 `yaml:"user_feedback_weight"`

	// HistorySize bounds the in-memory recommendation history ring.
	// Only the most recent 3 batches are ever read back; the minimum is 3.
	HistorySize int `yaml:"history_size"`
}

// DevicesConfig contains per-device connection parameters.
type DevicesConfig struct {
	TV          *TVConfig     `yaml:"tv"`
	MusicPlayer *MusicConfig  `yaml:"music_player"`
	Lights      *LightsConfig `yaml:"lights"`

	// ActionTimeout is the mandatory per-device-call timeout (seconds).
	ActionTimeout int `yaml:"action_timeout"`
}

// TVConfig contains smart TV connection parameters.
type TVConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol"`
}

// MusicConfig contains music player connection parameters and named playlists.
type MusicConfig struct {
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	Playlists map[string]string `yaml:"playlists"`
}

// LightsConfig contains light bridge connection parameters.
type LightsConfig struct {
	BridgeHost string `yaml:"bridge_host"`
	Username   string `yaml:"username"`
}

// ContentConfig contains dialogue and story generation settings.
type ContentConfig struct {
	Provider    string              `yaml:"provider"`
	APIKey      string              `yaml:"api_key"`
	BaseURL     string              `yaml:"base_url"`
	Model       string              `yaml:"model"`
	MaxTokens   int                 `yaml:"max_tokens"`
	Temperature float64             `yaml:"temperature"`
	Convos      ConversationsConfig `yaml:"conversations"`
}

// ConversationsConfig contains conversation generation settings.
type ConversationsConfig struct {
	MaxTurns int      `yaml:"max_turns"`
	Topics   []string `yaml:"topics"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: ANGELCORE_SECTION_KEY
// For example: ANGELCORE_DATABASE_PATH, ANGELCORE_CONTENT_API_KEY
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// yaml.Unmarshal merges into a non-nil map, which would let a file
	// that defines decision_rules without the mandatory "default" entry
	// silently inherit the built-in one. Unmarshal into a fresh map and
	// restore the defaults only when the file omits the section entirely.
	defaultRules := cfg.Decision.DecisionRules
	cfg.Decision.DecisionRules = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Decision.DecisionRules == nil {
		cfg.Decision.DecisionRules = defaultRules
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: ServerTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "angel-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/angelcore.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Decision: DecisionConfig{
			ThresholdConfidence: 0.6,
			DecisionRules: map[string][]string{
				"manger":  {"diffuser_musique"},
				"inactif": {"engager_conversation"},
				"default": {"suggerer_activite"},
			},
			LearningRate:       0.1,
			UserFeedbackWeight: 0.5,
			HistorySize:        32,
		},
		Devices: DevicesConfig{
			ActionTimeout: 5,
		},
		Content: ContentConfig{
			Provider:    "openai",
			Model:       "gpt-4-turbo",
			MaxTokens:   500,
			Temperature: 0.7,
			Convos: ConversationsConfig{
				MaxTurns: 10,
				Topics:   []string{"actualités", "santé", "loisirs", "culture"},
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: ANGELCORE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("ANGELCORE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	// Database
	if v := os.Getenv("ANGELCORE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("ANGELCORE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("ANGELCORE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("ANGELCORE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("ANGELCORE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Content generation - the API key should always come from the environment
	if v := os.Getenv("ANGELCORE_CONTENT_API_KEY"); v != "" {
		cfg.Content.APIKey = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// Decision engine validation. The "default" rule entry is the fallback
	// for unknown and low-confidence activities; without it the engine
	// cannot resolve recommendations.
	if c.Decision.ThresholdConfidence < 0 || c.Decision.ThresholdConfidence > 1 {
		errs = append(errs, "decision_engine.threshold_confidence must be between 0 and 1")
	}
	if _, ok := c.Decision.DecisionRules["default"]; !ok {
		errs = append(errs, `decision_engine.decision_rules must contain a "default" entry`)
	}
	const minHistorySize = 3
	if c.Decision.HistorySize < minHistorySize {
		errs = append(errs, "decision_engine.history_size must be at least 3")
	}

	// Device validation
	if c.Devices.ActionTimeout < 1 {
		errs = append(errs, "devices.action_timeout must be at least 1 second")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the server idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Idle) * time.Second
}

// GetActionTimeout returns the per-device-call timeout as a Duration.
func (c *Config) GetActionTimeout() time.Duration {
	return time.Duration(c.Devices.ActionTimeout) * time.Second
}

// MusicPlaylists returns the named playlists of the configured music
// player, or nil when no music player is configured.
func (d DevicesConfig) MusicPlaylists() map[string]string {
	if d.MusicPlayer == nil {
		return nil
	}
	return d.MusicPlayer.Playlists
}
