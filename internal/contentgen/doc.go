// Package contentgen produces conversational content: multi-turn
// companion dialogues and short spoken-word stories.
//
// Text comes from a Provider, by default an OpenAI-compatible chat
// completion endpoint. Provider failures never surface to the user
// mid-dialogue; canned French fallbacks keep the interaction going.
package contentgen
