package scenario

import "sync"

// Scenario names accepted by the composer.
const (
	MovieTime   = "movie_time"
	DinnerMusic = "dinner_music"
	RelaxMode   = "relax_mode"
	AllOff      = "all_off"
)

// ActionResult records the outcome of one executed scenario step.
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run. PerStep holds one entry per
// executed step keyed "device.action"; steps skipped because a
// precondition did not hold are absent. Success is true only when every
// executed step succeeded.
type Result struct {
	Scenario string                  `json:"scenario"`
	Success  bool                    `json:"success"`
	PerStep  map[string]ActionResult `json:"steps"`
}

// recorder accumulates step results from concurrently executing steps.
type recorder struct {
	mu    sync.Mutex
	steps map[string]ActionResult
}

func newRecorder() *recorder {
	return &recorder{steps: make(map[string]ActionResult)}
}

// record stores a step outcome and returns the error unchanged so calls
// can be chained inside step closures.
func (r *recorder) record(step string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.steps[step] = ActionResult{Success: false, Error: err.Error()}
	} else {
		r.steps[step] = ActionResult{Success: true}
	}
	return err
}

// result assembles the final Result for a scenario.
func (r *recorder) result(scenario string) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	success := true
	steps := make(map[string]ActionResult, len(r.steps))
	for k, v := range r.steps {
		steps[k] = v
		if !v.Success {
			success = false
		}
	}
	return &Result{Scenario: scenario, Success: success, PerStep: steps}
}
