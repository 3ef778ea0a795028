package scenario

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angel-assistant/angel-core/internal/device"
)

// Logger defines the logging interface the composer needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Composer executes single device actions and multi-device scenarios.
//
// Calls to the same device type are serialised so a scenario never races a
// direct action on the same device; calls to different device types run
// concurrently. Every device call runs under the configured timeout.
type Composer struct {
	registry *device.Registry
	timeout  time.Duration
	logger   Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewComposer creates a scenario composer. timeout bounds every individual
// device call.
func NewComposer(registry *device.Registry, timeout time.Duration, logger Logger) *Composer {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Composer{
		registry: registry,
		timeout:  timeout,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// deviceLock returns the mutex serialising calls to a device type.
func (c *Composer) deviceLock(deviceType string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[deviceType]
	if !ok {
		l = &sync.Mutex{}
		c.locks[deviceType] = l
	}
	return l
}

// call runs fn against the device type under its lock and the per-call
// timeout.
func (c *Composer) call(ctx context.Context, deviceType string, fn func(ctx context.Context, ctrl device.Controller) error) error {
	ctrl, err := c.registry.Resolve(deviceType)
	if err != nil {
		return err
	}

	lock := c.deviceLock(deviceType)
	lock.Lock()
	defer lock.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return fn(callCtx, ctrl)
}

// ExecuteAction validates and runs a single action against a device type.
func (c *Composer) ExecuteAction(ctx context.Context, deviceType, action string, params map[string]any) error {
	if err := validateParams(action, params); err != nil {
		return err
	}

	c.logger.Debug("executing device action", "device", deviceType, "action", action)

	return c.call(ctx, deviceType, func(ctx context.Context, ctrl device.Controller) error {
		return dispatch(ctx, ctrl, action, params)
	})
}

// dispatch maps an action name onto the controller's typed interface.
func dispatch(ctx context.Context, ctrl device.Controller, action string, params map[string]any) error {
	switch action {
	case "turn_on":
		return ctrl.TurnOn(ctx)
	case "turn_off":
		return ctrl.TurnOff(ctx)
	}

	switch action {
	case "set_volume":
		volume, err := intParam(params, "volume")
		if err != nil {
			return err
		}
		switch d := ctrl.(type) {
		case device.TV:
			return d.SetVolume(ctx, volume)
		case device.MusicPlayer:
			return d.SetVolume(ctx, volume)
		}

	case "change_channel":
		channel, err := stringParam(params, "channel_id")
		if err != nil {
			return err
		}
		if d, ok := ctrl.(device.TV); ok {
			return d.ChangeChannel(ctx, channel)
		}

	case "play_program":
		program, err := stringParam(params, "program_id")
		if err != nil {
			return err
		}
		if d, ok := ctrl.(device.TV); ok {
			return d.PlayProgram(ctx, program)
		}

	case "play_playlist":
		playlist, err := stringParam(params, "playlist_name")
		if err != nil {
			return err
		}
		if d, ok := ctrl.(device.MusicPlayer); ok {
			return d.PlayPlaylist(ctx, playlist)
		}

	case "play_genre":
		genre, err := stringParam(params, "genre")
		if err != nil {
			return err
		}
		if d, ok := ctrl.(device.MusicPlayer); ok {
			return d.PlayGenre(ctx, genre)
		}

	case "set_scene":
		scene, err := stringParam(params, "scene_name")
		if err != nil {
			return err
		}
		if d, ok := ctrl.(device.Lights); ok {
			return d.SetScene(ctx, scene)
		}

	case "set_state":
		state, err := stringParam(params, "state")
		if err != nil {
			return err
		}
		if d, ok := ctrl.(device.Lights); ok {
			return d.SetState(ctx, state)
		}
	}

	return fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, action, ctrl.Type())
}

// ExecuteScenario runs a named multi-device scenario. Step failures are
// collected in the result rather than aborting the run; the returned error
// covers scenario-level problems only (unknown name, missing device).
func (c *Composer) ExecuteScenario(ctx context.Context, name string, params map[string]any) (*Result, error) {
	c.logger.Info("executing scenario", "scenario", name)

	rec := newRecorder()
	var err error
	switch name {
	case MovieTime:
		err = c.movieTime(ctx, params, rec)
	case DinnerMusic:
		err = c.dinnerMusic(ctx, params, rec)
	case RelaxMode:
		err = c.relaxMode(ctx, params, rec)
	case AllOff:
		err = c.allOff(ctx, rec)
	default:
		return nil, ErrUnknownScenario
	}
	if err != nil {
		return nil, err
	}

	result := rec.result(name)
	c.logger.Info("scenario finished",
		"scenario", name,
		"success", result.Success,
		"steps", len(result.PerStep),
	)
	return result, nil
}
