// Angel Core - Context-Aware Assistance Engine
//
// This is the main entry point for the Angel Core application. Angel turns
// activity observations from a home sensor pipeline into ranked, personalized
// recommendations and orchestrates multi-device scenarios (TV, music player,
// lights) for elderly users living at home.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/angel-assistant/angel-core/migrations"

	"github.com/angel-assistant/angel-core/internal/api"
	"github.com/angel-assistant/angel-core/internal/contentgen"
	"github.com/angel-assistant/angel-core/internal/decision"
	"github.com/angel-assistant/angel-core/internal/device"
	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
	"github.com/angel-assistant/angel-core/internal/infrastructure/database"
	"github.com/angel-assistant/angel-core/internal/infrastructure/influxdb"
	"github.com/angel-assistant/angel-core/internal/infrastructure/logging"
	"github.com/angel-assistant/angel-core/internal/infrastructure/mqtt"
	"github.com/angel-assistant/angel-core/internal/profile"
	"github.com/angel-assistant/angel-core/internal/scenario"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Angel Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Profile store backs the decision engine with per-user preferences
	// and the activity/feedback history.
	store := profile.NewSQLiteStore(db.DB)

	// Device registry and scenario composer
	registry := buildRegistry(cfg, log)
	composer := scenario.NewComposer(registry, cfg.GetActionTimeout(), log.Component("scenario"))

	// Decision engine
	engine := decision.NewEngine(cfg.Decision, cfg.Content.Convos, cfg.Devices.MusicPlaylists(), store, nil, log.Component("decision"))
	log.Info("decision engine initialised",
		"threshold_confidence", cfg.Decision.ThresholdConfidence,
		"rules", len(cfg.Decision.DecisionRules),
	)

	// Content generation. Without an API key the manager and generator
	// fall back to canned French phrases.
	var provider contentgen.Provider
	if cfg.Content.APIKey != "" {
		provider = contentgen.NewOpenAIProvider(cfg.Content)
		log.Info("content provider initialised", "provider", cfg.Content.Provider, "model", cfg.Content.Model)
	} else {
		log.Warn("no content API key configured, using canned fallbacks")
	}
	conversations := contentgen.NewConversationManager(provider, cfg.Content.Convos.MaxTurns, log.Component("contentgen"))
	stories := contentgen.NewStoryGenerator(provider, log.Component("contentgen"))

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.Component("mqtt"))
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled, observations arrive over HTTP only")
	}

	// Connect to InfluxDB (optional). A nil client is a valid no-op sink.
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:        cfg.Server,
		WS:            cfg.WebSocket,
		Logger:        log.Component("api"),
		Engine:        engine,
		Registry:      registry,
		Composer:      composer,
		Conversations: conversations,
		Stories:       stories,
		MQTT:          mqttClient,
		Telemetry:     influxClient,
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("creating api server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting api server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing api server", "error", closeErr)
		}
	}()
	log.Info("api server listening", "host", cfg.Server.Host, "port", cfg.Server.Port)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("Angel Core stopped")
	return nil
}

// buildRegistry registers a controller for each device configured in the
// devices section. Missing devices are skipped; scenarios that need an
// unregistered device fail with a device-not-found error at call time.
func buildRegistry(cfg *config.Config, log *logging.Logger) *device.Registry {
	registry := device.NewRegistry()
	timeout := cfg.GetActionTimeout()

	if cfg.Devices.TV != nil {
		registry.Register(device.NewTVController(*cfg.Devices.TV, timeout))
		log.Info("tv controller registered", "host", cfg.Devices.TV.Host)
	}
	if cfg.Devices.MusicPlayer != nil {
		registry.Register(device.NewMusicController(*cfg.Devices.MusicPlayer, timeout))
		log.Info("music controller registered", "host", cfg.Devices.MusicPlayer.Host)
	}
	if cfg.Devices.Lights != nil {
		registry.Register(device.NewLightsController(*cfg.Devices.Lights, timeout))
		log.Info("lights controller registered", "bridge", cfg.Devices.Lights.BridgeHost)
	}

	return registry
}

// getConfigPath returns the configuration file path.
// Uses ANGELCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("ANGELCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// MQTT and InfluxDB clients may be nil when disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
