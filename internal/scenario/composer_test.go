package scenario

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/angel-assistant/angel-core/internal/device"
)

// ─── Mock Dependencies ───────────────────────────────────────────────────────

// mockDevice records calls and fails the actions listed in failures.
type mockDevice struct {
	mu       sync.Mutex
	typ      string
	calls    []string
	failures map[string]error
	programs []device.Program
}

func (m *mockDevice) call(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	return m.failures[name]
}

func (m *mockDevice) callNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

func (m *mockDevice) Type() string                       { return m.typ }
func (m *mockDevice) TurnOn(context.Context) error       { return m.call("turn_on") }
func (m *mockDevice) TurnOff(context.Context) error      { return m.call("turn_off") }
func (m *mockDevice) Status(context.Context) (map[string]any, error) {
	return map[string]any{"power": "on"}, m.call("status")
}

type mockTV struct{ mockDevice }

func (m *mockTV) SetVolume(_ context.Context, v int) error {
	return m.call("set_volume:" + strconv.Itoa(v))
}
func (m *mockTV) ChangeChannel(_ context.Context, id string) error {
	return m.call("change_channel:" + id)
}
func (m *mockTV) SearchPrograms(_ context.Context, category string) ([]device.Program, error) {
	if err := m.call("search:" + category); err != nil {
		return nil, err
	}
	return m.programs, nil
}
func (m *mockTV) PlayProgram(_ context.Context, id string) error {
	return m.call("play:" + id)
}

type mockPlayer struct{ mockDevice }

func (m *mockPlayer) SetVolume(_ context.Context, v int) error {
	return m.call("set_volume:" + strconv.Itoa(v))
}
func (m *mockPlayer) PlayPlaylist(_ context.Context, name string) error {
	return m.call("play_playlist:" + name)
}
func (m *mockPlayer) PlayGenre(_ context.Context, genre string) error {
	return m.call("play_genre:" + genre)
}

type mockLights struct{ mockDevice }

func (m *mockLights) SetScene(_ context.Context, scene string) error {
	return m.call("set_scene:" + scene)
}
func (m *mockLights) SetState(_ context.Context, state string) error {
	return m.call("set_state:" + state)
}

// ─── Test Setup ──────────────────────────────────────────────────────────────

func fullRegistry(t *testing.T) (*device.Registry, *mockTV, *mockPlayer, *mockLights) {
	t.Helper()

	tv := &mockTV{mockDevice{typ: device.TypeTV}}
	player := &mockPlayer{mockDevice{typ: device.TypeMusicPlayer}}
	lights := &mockLights{mockDevice{typ: device.TypeLights}}

	reg := device.NewRegistry()
	reg.Register(tv)
	reg.Register(player)
	reg.Register(lights)
	return reg, tv, player, lights
}

func newTestComposer(reg *device.Registry) *Composer {
	return NewComposer(reg, 2*time.Second, nil)
}

func contains(calls []string, want string) bool {
	for _, c := range calls {
		if c == want {
			return true
		}
	}
	return false
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestExecuteActionMissingParam(t *testing.T) {
	reg, _, _, _ := fullRegistry(t)
	c := newTestComposer(reg)

	err := c.ExecuteAction(context.Background(), device.TypeTV, "set_volume", nil)
	if !errors.Is(err, ErrMissingParam) {
		t.Errorf("error = %v, want ErrMissingParam", err)
	}

	err = c.ExecuteAction(context.Background(), device.TypeLights, "set_scene", map[string]any{})
	if !errors.Is(err, ErrMissingParam) {
		t.Errorf("error = %v, want ErrMissingParam", err)
	}
}

func TestExecuteActionUnknownDevice(t *testing.T) {
	c := newTestComposer(device.NewRegistry())

	err := c.ExecuteAction(context.Background(), device.TypeTV, "turn_on", nil)
	if !errors.Is(err, device.ErrDeviceNotFound) {
		t.Errorf("error = %v, want ErrDeviceNotFound", err)
	}
}

func TestExecuteActionUnsupportedForDevice(t *testing.T) {
	reg, _, _, _ := fullRegistry(t)
	c := newTestComposer(reg)

	err := c.ExecuteAction(context.Background(), device.TypeTV, "set_scene",
		map[string]any{"scene_name": "movie"})
	if !errors.Is(err, ErrUnsupportedAction) {
		t.Errorf("error = %v, want ErrUnsupportedAction", err)
	}

	err = c.ExecuteAction(context.Background(), device.TypeLights, "play_genre",
		map[string]any{"genre": "jazz"})
	if !errors.Is(err, ErrUnsupportedAction) {
		t.Errorf("error = %v, want ErrUnsupportedAction", err)
	}
}

func TestExecuteActionDispatch(t *testing.T) {
	reg, tv, player, lights := fullRegistry(t)
	c := newTestComposer(reg)
	ctx := context.Background()

	if err := c.ExecuteAction(ctx, device.TypeTV, "change_channel",
		map[string]any{"channel_id": "arte"}); err != nil {
		t.Fatalf("change_channel error = %v", err)
	}
	if !contains(tv.callNames(), "change_channel:arte") {
		t.Errorf("tv calls = %v", tv.callNames())
	}

	// JSON decoding produces float64 volumes; both forms must work.
	if err := c.ExecuteAction(ctx, device.TypeMusicPlayer, "set_volume",
		map[string]any{"volume": float64(30)}); err != nil {
		t.Fatalf("set_volume error = %v", err)
	}
	if !contains(player.callNames(), "set_volume:30") {
		t.Errorf("player calls = %v", player.callNames())
	}

	if err := c.ExecuteAction(ctx, device.TypeLights, "set_state",
		map[string]any{"state": "dim"}); err != nil {
		t.Fatalf("set_state error = %v", err)
	}
	if !contains(lights.callNames(), "set_state:dim") {
		t.Errorf("lights calls = %v", lights.callNames())
	}
}

func TestMovieTimeScenario(t *testing.T) {
	reg, tv, _, lights := fullRegistry(t)
	tv.programs = []device.Program{
		{ID: "p1", Title: "Océans", Category: "documentaires"},
		{ID: "p2", Title: "Planète", Category: "documentaires"},
	}
	c := newTestComposer(reg)

	result, err := c.ExecuteScenario(context.Background(), MovieTime,
		map[string]any{"category": "documentaires"})
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !result.Success {
		t.Errorf("Success = false, steps = %v", result.PerStep)
	}

	wantSteps := []string{"lights.set_scene", "tv.turn_on", "tv.search_programs", "tv.play_program", "tv.set_volume"}
	for _, step := range wantSteps {
		if _, ok := result.PerStep[step]; !ok {
			t.Errorf("missing step %q in %v", step, result.PerStep)
		}
	}
	if !contains(tv.callNames(), "play:p1") {
		t.Errorf("first search hit should be played, tv calls = %v", tv.callNames())
	}
	if !contains(lights.callNames(), "set_scene:movie") {
		t.Errorf("lights calls = %v", lights.callNames())
	}
}

func TestMovieTimeEmptySearchSkipsPlayback(t *testing.T) {
	reg, tv, _, _ := fullRegistry(t)
	tv.programs = nil
	c := newTestComposer(reg)

	result, err := c.ExecuteScenario(context.Background(), MovieTime, nil)
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !result.Success {
		t.Errorf("an empty search should not fail the scenario: %v", result.PerStep)
	}
	if _, ok := result.PerStep["tv.play_program"]; ok {
		t.Error("playback step should be skipped when no program is found")
	}
	if !contains(tv.callNames(), "search:film") {
		t.Errorf("default category should be film, tv calls = %v", tv.callNames())
	}
}

func TestDinnerMusicScenario(t *testing.T) {
	reg, _, player, lights := fullRegistry(t)
	c := newTestComposer(reg)

	result, err := c.ExecuteScenario(context.Background(), DinnerMusic, nil)
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !result.Success {
		t.Errorf("Success = false, steps = %v", result.PerStep)
	}

	want := []string{"turn_on", "play_playlist:repas", "set_volume:30"}
	got := player.callNames()
	if len(got) != len(want) {
		t.Fatalf("player calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("player call %d = %s, want %s", i, got[i], want[i])
		}
	}
	if !contains(lights.callNames(), "set_scene:dinner") {
		t.Errorf("lights calls = %v", lights.callNames())
	}
}

func TestDinnerMusicHonoursParams(t *testing.T) {
	reg, _, player, _ := fullRegistry(t)
	c := newTestComposer(reg)

	// Volumes arrive as float64 when the request came over JSON.
	_, err := c.ExecuteScenario(context.Background(), DinnerMusic,
		map[string]any{"playlist": "fete", "volume": float64(55)})
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !contains(player.callNames(), "play_playlist:fete") {
		t.Errorf("caller playlist should win over the default, player calls = %v", player.callNames())
	}
	if !contains(player.callNames(), "set_volume:55") {
		t.Errorf("caller volume should win over the default, player calls = %v", player.callNames())
	}
}

func TestRelaxModeScenario(t *testing.T) {
	reg, _, player, lights := fullRegistry(t)
	c := newTestComposer(reg)

	result, err := c.ExecuteScenario(context.Background(), RelaxMode, nil)
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !result.Success {
		t.Errorf("Success = false, steps = %v", result.PerStep)
	}
	if !contains(player.callNames(), "play_genre:classique") {
		t.Errorf("player calls = %v", player.callNames())
	}
	if !contains(lights.callNames(), "set_scene:relax") {
		t.Errorf("lights calls = %v", lights.callNames())
	}
}

func TestRelaxModeHonoursParams(t *testing.T) {
	reg, _, player, _ := fullRegistry(t)
	c := newTestComposer(reg)

	_, err := c.ExecuteScenario(context.Background(), RelaxMode,
		map[string]any{"genre": "jazz", "volume": 25})
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !contains(player.callNames(), "play_genre:jazz") {
		t.Errorf("player calls = %v", player.callNames())
	}
	if !contains(player.callNames(), "set_volume:25") {
		t.Errorf("player calls = %v", player.callNames())
	}
}

func TestMovieTimeHonoursVolume(t *testing.T) {
	reg, tv, _, _ := fullRegistry(t)
	c := newTestComposer(reg)

	_, err := c.ExecuteScenario(context.Background(), MovieTime,
		map[string]any{"volume": 65})
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if !contains(tv.callNames(), "set_volume:65") {
		t.Errorf("tv calls = %v", tv.callNames())
	}
}

func TestAllOffPartialFailure(t *testing.T) {
	reg, tv, _, _ := fullRegistry(t)
	tv.failures = map[string]error{"turn_off": errors.New("tv unreachable")}
	c := newTestComposer(reg)

	result, err := c.ExecuteScenario(context.Background(), AllOff, nil)
	if err != nil {
		t.Fatalf("ExecuteScenario() error = %v", err)
	}
	if result.Success {
		t.Error("Success = true despite a failed step")
	}
	if len(result.PerStep) != 3 {
		t.Errorf("steps = %d, want 3", len(result.PerStep))
	}
	step, ok := result.PerStep["tv.turn_off"]
	if !ok || step.Success || step.Error == "" {
		t.Errorf("tv.turn_off = %+v", step)
	}
	for _, name := range []string{"music_player.turn_off", "lights.turn_off"} {
		if step, ok := result.PerStep[name]; !ok || !step.Success {
			t.Errorf("%s = %+v", name, result.PerStep[name])
		}
	}
}

func TestUnknownScenario(t *testing.T) {
	reg, _, _, _ := fullRegistry(t)
	c := newTestComposer(reg)

	if _, err := c.ExecuteScenario(context.Background(), "party_mode", nil); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("error = %v, want ErrUnknownScenario", err)
	}
}

func TestScenarioMissingDevice(t *testing.T) {
	reg := device.NewRegistry()
	reg.Register(&mockLights{mockDevice{typ: device.TypeLights}})
	c := newTestComposer(reg)

	if _, err := c.ExecuteScenario(context.Background(), DinnerMusic, nil); !errors.Is(err, device.ErrDeviceNotFound) {
		t.Errorf("error = %v, want ErrDeviceNotFound", err)
	}
}
