// Package device provides controllers for the devices the assistant can
// act on: a smart TV, a music player, and a light bridge.
//
// Each controller speaks JSON over HTTP to its device endpoint and
// implements the Controller interface plus a device-specific extension
// (TV, MusicPlayer, Lights). The Registry holds one controller per device
// type and is the lookup point for the scenario composer and the API.
package device
