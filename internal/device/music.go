package device

import (
	"context"
	"fmt"
	"time"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
)

// MusicController drives a network music player over its REST endpoint.
// Named playlists from configuration are resolved to player playlist IDs
// before the request goes out.
type MusicController struct {
	client    *restClient
	playlists map[string]string
}

// NewMusicController creates a music player controller from configuration.
func NewMusicController(cfg config.MusicConfig, timeout time.Duration) *MusicController {
	base := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	return &MusicController{
		client:    newRESTClient(base, TypeMusicPlayer, timeout),
		playlists: cfg.Playlists,
	}
}

// Type returns the device type identifier.
func (m *MusicController) Type() string { return TypeMusicPlayer }

// TurnOn powers on the player.
func (m *MusicController) TurnOn(ctx context.Context) error {
	return m.client.post(ctx, "/power/on", nil)
}

// TurnOff powers off the player.
func (m *MusicController) TurnOff(ctx context.Context) error {
	return m.client.post(ctx, "/power/off", nil)
}

// Status returns the player's reported state.
func (m *MusicController) Status(ctx context.Context) (map[string]any, error) {
	var status map[string]any
	if err := m.client.get(ctx, "/status", &status); err != nil {
		return nil, err
	}
	return status, nil
}

// SetVolume sets the playback volume (0-100).
func (m *MusicController) SetVolume(ctx context.Context, volume int) error {
	return m.client.post(ctx, "/volume", map[string]any{"volume": volume})
}

// PlayPlaylist starts a named playlist. Names unknown to the configuration
// are passed through unchanged so ad-hoc playlist IDs keep working.
func (m *MusicController) PlayPlaylist(ctx context.Context, name string) error {
	id := name
	if mapped, ok := m.playlists[name]; ok {
		id = mapped
	}
	return m.client.post(ctx, "/play/playlist", map[string]any{"playlist_id": id})
}

// PlayGenre starts playback of a music genre station.
func (m *MusicController) PlayGenre(ctx context.Context, genre string) error {
	return m.client.post(ctx, "/play/genre", map[string]any{"genre": genre})
}
