package device

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
)

// TVController drives a smart TV over its REST endpoint.
type TVController struct {
	client *restClient
}

// NewTVController creates a TV controller from configuration.
func NewTVController(cfg config.TVConfig, timeout time.Duration) *TVController {
	base := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	return &TVController{client: newRESTClient(base, TypeTV, timeout)}
}

// Type returns the device type identifier.
func (t *TVController) Type() string { return TypeTV }

// TurnOn powers on the television.
func (t *TVController) TurnOn(ctx context.Context) error {
	return t.client.post(ctx, "/power/on", nil)
}

// TurnOff powers off the television.
func (t *TVController) TurnOff(ctx context.Context) error {
	return t.client.post(ctx, "/power/off", nil)
}

// Status returns the television's reported state.
func (t *TVController) Status(ctx context.Context) (map[string]any, error) {
	var status map[string]any
	if err := t.client.get(ctx, "/status", &status); err != nil {
		return nil, err
	}
	return status, nil
}

// SetVolume sets the audio volume (0-100).
func (t *TVController) SetVolume(ctx context.Context, volume int) error {
	return t.client.post(ctx, "/volume", map[string]any{"volume": volume})
}

// ChangeChannel switches to the given channel.
func (t *TVController) ChangeChannel(ctx context.Context, channelID string) error {
	return t.client.post(ctx, "/channel", map[string]any{"channel_id": channelID})
}

// SearchPrograms returns the programs available in a category.
func (t *TVController) SearchPrograms(ctx context.Context, category string) ([]Program, error) {
	var result struct {
		Programs []Program `json:"programs"`
	}
	path := "/programs?category=" + url.QueryEscape(category)
	if err := t.client.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Programs, nil
}

// PlayProgram starts playback of a program by ID.
func (t *TVController) PlayProgram(ctx context.Context, programID string) error {
	return t.client.post(ctx, "/play", map[string]any{"program_id": programID})
}
