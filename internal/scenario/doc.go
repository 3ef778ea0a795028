// Package scenario composes device actions into multi-device scenarios:
// movie_time, dinner_music, relax_mode, and all_off.
//
// The Composer validates action parameters, serialises calls per device
// type, runs independent steps concurrently, and bounds every device call
// with a timeout. Step failures are reported per step in the Result; a
// scenario only errors outright when it cannot start (unknown name,
// required device not registered).
package scenario
