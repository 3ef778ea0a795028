package device

import (
	"context"
	"fmt"
	"time"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
)

// LightsController drives a light bridge over its REST endpoint. Commands
// address the whole bridge: scene and state changes apply to every light
// the bridge manages.
type LightsController struct {
	client *restClient
}

// NewLightsController creates a lights controller from configuration.
func NewLightsController(cfg config.LightsConfig, timeout time.Duration) *LightsController {
	base := fmt.Sprintf("http://%s/api/%s", cfg.BridgeHost, cfg.Username)
	return &LightsController{client: newRESTClient(base, TypeLights, timeout)}
}

// Type returns the device type identifier.
func (l *LightsController) Type() string { return TypeLights }

// TurnOn switches all lights on.
func (l *LightsController) TurnOn(ctx context.Context) error {
	return l.client.post(ctx, "/state", map[string]any{"on": true})
}

// TurnOff switches all lights off.
func (l *LightsController) TurnOff(ctx context.Context) error {
	return l.client.post(ctx, "/state", map[string]any{"on": false})
}

// Status returns the bridge's reported state.
func (l *LightsController) Status(ctx context.Context) (map[string]any, error) {
	var status map[string]any
	if err := l.client.get(ctx, "/status", &status); err != nil {
		return nil, err
	}
	return status, nil
}

// SetScene activates a named lighting scene.
func (l *LightsController) SetScene(ctx context.Context, scene string) error {
	return l.client.post(ctx, "/scene", map[string]any{"scene_name": scene})
}

// SetState applies a raw state string to all lights.
func (l *LightsController) SetState(ctx context.Context, state string) error {
	return l.client.post(ctx, "/state", map[string]any{"state": state})
}

var _ Lights = (*LightsController)(nil)
var _ TV = (*TVController)(nil)
var _ MusicPlayer = (*MusicController)(nil)
