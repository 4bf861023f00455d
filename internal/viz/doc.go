// Package viz renders tixy patterns in the terminal.
//
//   - [Canvas]: Braille dot canvas with per-cell colors, double buffered
//   - [Model]: Bubble Tea live view with a frame-time chart
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	R     - Restart from t=0
//	?     - Show help overlay
//	Q     - Quit
package viz
