package device

import "context"

// Device type identifiers used in registries, scenario results, and the
// action API.
const (
	TypeTV          = "tv"
	TypeMusicPlayer = "music_player"
	TypeLights      = "lights"
)

// Controller is the capability every managed device exposes. Specialised
// interfaces extend it per device type.
//
// All calls take a context; implementations must honour cancellation and
// deadlines since they talk to devices over the network.
type Controller interface {
	// Type returns the device type identifier.
	Type() string

	// TurnOn powers the device on.
	TurnOn(ctx context.Context) error

	// TurnOff powers the device off.
	TurnOff(ctx context.Context) error

	// Status returns the device's current state as reported by the device.
	Status(ctx context.Context) (map[string]any, error)
}

// TV extends Controller with television operations.
type TV interface {
	Controller

	SetVolume(ctx context.Context, volume int) error
	ChangeChannel(ctx context.Context, channelID string) error

	// SearchPrograms returns the programs available in a category. An
	// empty result is not an error.
	SearchPrograms(ctx context.Context, category string) ([]Program, error)

	PlayProgram(ctx context.Context, programID string) error
}

// MusicPlayer extends Controller with audio playback operations.
type MusicPlayer interface {
	Controller

	SetVolume(ctx context.Context, volume int) error
	PlayPlaylist(ctx context.Context, name string) error
	PlayGenre(ctx context.Context, genre string) error
}

// Lights extends Controller with lighting scene operations.
type Lights interface {
	Controller

	SetScene(ctx context.Context, scene string) error
	SetState(ctx context.Context, state string) error
}

// Program is a TV program entry returned by a search.
type Program struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Duration int     `json:"duration_min"`
	Rating   float64 `json:"rating"`
}
