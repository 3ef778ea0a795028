package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/angel-assistant/angel-core/internal/contentgen"
	"github.com/angel-assistant/angel-core/internal/decision"
	"github.com/angel-assistant/angel-core/internal/device"
	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
	"github.com/angel-assistant/angel-core/internal/infrastructure/influxdb"
	"github.com/angel-assistant/angel-core/internal/infrastructure/logging"
	"github.com/angel-assistant/angel-core/internal/infrastructure/mqtt"
	"github.com/angel-assistant/angel-core/internal/scenario"
)

// gracefulShutdownTimeout is the maximum wait for in-flight requests
// during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config        config.ServerConfig
	WS            config.WebSocketConfig
	Logger        *logging.Logger
	Engine        *decision.Engine
	Registry      *device.Registry
	Composer      *scenario.Composer
	Conversations *contentgen.ConversationManager
	Stories       *contentgen.StoryGenerator
	MQTT          *mqtt.Client     // optional: observation intake and batch publishing
	Telemetry     *influxdb.Client // optional: nil disables telemetry writes
	Version       string
}

// Server is the HTTP API and WebSocket server.
//
// It exposes the decision engine, device actions, scenarios, and content
// generation to user interfaces, and relays MQTT activity observations
// into the engine when a broker is configured.
type Server struct {
	cfg           config.ServerConfig
	wsCfg         config.WebSocketConfig
	logger        *logging.Logger
	engine        *decision.Engine
	registry      *device.Registry
	composer      *scenario.Composer
	conversations *contentgen.ConversationManager
	stories       *contentgen.StoryGenerator
	mqtt          *mqtt.Client
	telemetry     *influxdb.Client
	version       string

	server *http.Server
	hub    *Hub
	cancel context.CancelFunc
}

// New creates an API server. It is not listening until Start is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("decision engine is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("device registry is required")
	}

	return &Server{
		cfg:           deps.Config,
		wsCfg:         deps.WS,
		logger:        deps.Logger,
		engine:        deps.Engine,
		registry:      deps.Registry,
		composer:      deps.Composer,
		conversations: deps.Conversations,
		stories:       deps.Stories,
		mqtt:          deps.MQTT,
		telemetry:     deps.Telemetry,
		version:       deps.Version,
	}, nil
}

// Start launches the WebSocket hub, subscribes to activity observations
// when MQTT is configured, and begins listening in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = NewHub(s.wsCfg, s.logger)
	go s.hub.Run(srvCtx)

	if err := s.subscribeActivity(); err != nil {
		s.logger.Warn("failed to subscribe to activity observations", "error", err)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("api server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down api server: %w", err)
	}
	return nil
}

// HealthCheck verifies the server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}

// subscribeActivity relays MQTT activity observations into the decision
// engine and publishes the resulting batch.
func (s *Server) subscribeActivity() error {
	if s.mqtt == nil {
		return nil
	}

	s.logger.Info("subscribing to activity observations", "topic", mqtt.TopicActivity)
	return s.mqtt.SubscribeActivity(func(topic string, payload []byte) error {
		var obs decision.Observation
		if err := json.Unmarshal(payload, &obs); err != nil {
			s.logger.Warn("failed to parse activity observation", "topic", topic, "error", err)
			return nil
		}

		if _, err := s.processObservation(context.Background(), obs); err != nil {
			s.logger.Warn("failed to process activity observation",
				"user_id", obs.UserID,
				"activity", obs.Activity,
				"error", err,
			)
		}
		return nil
	})
}

// processObservation is the single decision path shared by MQTT intake and
// the HTTP endpoints: run the engine, then fan the batch out to MQTT,
// WebSocket subscribers, and telemetry.
func (s *Server) processObservation(ctx context.Context, obs decision.Observation) (*decision.Batch, error) {
	batch, err := s.engine.Recommend(ctx, obs)
	if err != nil {
		return nil, err
	}

	s.telemetry.WriteActivity(obs.UserID, obs.Activity, obs.Confidence)
	if len(batch.Candidates) > 0 {
		top := batch.Candidates[0]
		s.telemetry.WriteRecommendation(batch.UserID, batch.Activity,
			string(batch.TimeContext.TimeOfDay), string(top.Type), top.Priority, len(batch.Candidates))
	}

	if s.mqtt != nil {
		if data, err := json.Marshal(batch); err == nil {
			if err := s.mqtt.PublishRecommendation(data); err != nil {
				s.logger.Warn("failed to publish recommendation batch", "batch_id", batch.ID, "error", err)
			}
		}
	}

	if s.hub != nil {
		s.hub.Broadcast("recommendation.created", batch)
	}

	return batch, nil
}
