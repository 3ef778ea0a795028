package scenario

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/angel-assistant/angel-core/internal/device"
)

// Default volumes per scenario, used when the caller supplies none.
const (
	movieVolume  = 50
	dinnerVolume = 30
	relaxVolume  = 20
)

// optString returns the caller's string parameter when present and
// non-empty, otherwise the scenario default.
func optString(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// optInt returns the caller's numeric parameter when present, otherwise
// the scenario default. JSON numbers arrive as float64.
func optInt(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// movieTime dims the lights and powers the TV in parallel, then searches
// for a program in the requested category and plays the first hit. An
// empty search result skips playback without failing the scenario.
func (c *Composer) movieTime(ctx context.Context, params map[string]any, rec *recorder) error {
	tvCtrl, err := c.registry.Resolve(device.TypeTV)
	if err != nil {
		return fmt.Errorf("resolving tv: %w", err)
	}
	tv, ok := tvCtrl.(device.TV)
	if !ok {
		return fmt.Errorf("%w: registered tv controller lacks tv operations", ErrUnsupportedAction)
	}
	if _, err := c.registry.Resolve(device.TypeLights); err != nil {
		return fmt.Errorf("resolving lights: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_ = rec.record("lights.set_scene", c.ExecuteAction(gctx, device.TypeLights, "set_scene",
			map[string]any{"scene_name": "movie"}))
		return nil
	})
	g.Go(func() error {
		_ = rec.record("tv.turn_on", c.ExecuteAction(gctx, device.TypeTV, "turn_on", nil))
		return nil
	})
	_ = g.Wait()

	category := optString(params, "category", "film")

	var programs []device.Program
	searchErr := c.call(ctx, device.TypeTV, func(ctx context.Context, _ device.Controller) error {
		var err error
		programs, err = tv.SearchPrograms(ctx, category)
		return err
	})
	_ = rec.record("tv.search_programs", searchErr)

	if searchErr == nil {
		if len(programs) == 0 {
			c.logger.Info("no programs found, skipping playback", "category", category)
		} else {
			_ = rec.record("tv.play_program", c.ExecuteAction(ctx, device.TypeTV, "play_program",
				map[string]any{"program_id": programs[0].ID}))
		}
	}

	_ = rec.record("tv.set_volume", c.ExecuteAction(ctx, device.TypeTV, "set_volume",
		map[string]any{"volume": optInt(params, "volume", movieVolume)}))
	return nil
}

// dinnerMusic sets the dinner lighting scene, then starts the requested
// playlist at a conversational volume.
func (c *Composer) dinnerMusic(ctx context.Context, params map[string]any, rec *recorder) error {
	if _, err := c.registry.Resolve(device.TypeLights); err != nil {
		return fmt.Errorf("resolving lights: %w", err)
	}
	if _, err := c.registry.Resolve(device.TypeMusicPlayer); err != nil {
		return fmt.Errorf("resolving music player: %w", err)
	}

	_ = rec.record("lights.set_scene", c.ExecuteAction(ctx, device.TypeLights, "set_scene",
		map[string]any{"scene_name": "dinner"}))
	_ = rec.record("music_player.turn_on", c.ExecuteAction(ctx, device.TypeMusicPlayer, "turn_on", nil))
	_ = rec.record("music_player.play_playlist", c.ExecuteAction(ctx, device.TypeMusicPlayer, "play_playlist",
		map[string]any{"playlist_name": optString(params, "playlist", "repas")}))
	_ = rec.record("music_player.set_volume", c.ExecuteAction(ctx, device.TypeMusicPlayer, "set_volume",
		map[string]any{"volume": optInt(params, "volume", dinnerVolume)}))
	return nil
}

// relaxMode sets the relax lighting scene and starts quiet music in the
// requested genre.
func (c *Composer) relaxMode(ctx context.Context, params map[string]any, rec *recorder) error {
	if _, err := c.registry.Resolve(device.TypeLights); err != nil {
		return fmt.Errorf("resolving lights: %w", err)
	}
	if _, err := c.registry.Resolve(device.TypeMusicPlayer); err != nil {
		return fmt.Errorf("resolving music player: %w", err)
	}

	_ = rec.record("lights.set_scene", c.ExecuteAction(ctx, device.TypeLights, "set_scene",
		map[string]any{"scene_name": "relax"}))
	_ = rec.record("music_player.turn_on", c.ExecuteAction(ctx, device.TypeMusicPlayer, "turn_on", nil))
	_ = rec.record("music_player.play_genre", c.ExecuteAction(ctx, device.TypeMusicPlayer, "play_genre",
		map[string]any{"genre": optString(params, "genre", "classique")}))
	_ = rec.record("music_player.set_volume", c.ExecuteAction(ctx, device.TypeMusicPlayer, "set_volume",
		map[string]any{"volume": optInt(params, "volume", relaxVolume)}))
	return nil
}

// allOff powers off every registered device concurrently.
func (c *Composer) allOff(ctx context.Context, rec *recorder) error {
	g := new(errgroup.Group)
	for _, ctrl := range c.registry.All() {
		deviceType := ctrl.Type()
		g.Go(func() error {
			_ = rec.record(deviceType+".turn_off", c.ExecuteAction(ctx, deviceType, "turn_off", nil))
			return nil
		})
	}
	return g.Wait()
}
