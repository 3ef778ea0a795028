package scenario

import "fmt"

// requiredParams maps each parameterised action to the parameter it
// requires. Actions absent from the table take no parameters.
var requiredParams = map[string]string{
	"set_volume":     "volume",
	"change_channel": "channel_id",
	"play_program":   "program_id",
	"play_playlist":  "playlist_name",
	"play_genre":     "genre",
	"set_scene":      "scene_name",
	"set_state":      "state",
}

// validateParams checks that the action's required parameter is present.
// Type checks happen at dispatch.
func validateParams(action string, params map[string]any) error {
	key, ok := requiredParams[action]
	if !ok {
		return nil
	}
	if _, present := params[key]; !present {
		return fmt.Errorf("%w: %s requires %q", ErrMissingParam, action, key)
	}
	return nil
}

// stringParam extracts a required string parameter.
func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", ErrMissingParam, key)
	}
	return v, nil
}

// intParam extracts a required integer parameter. JSON numbers arrive as
// float64, so both forms are accepted.
func intParam(params map[string]any, key string) (int, error) {
	switch v := params[key].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %q must be a number", ErrMissingParam, key)
	}
}
