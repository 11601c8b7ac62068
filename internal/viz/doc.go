// Package viz draws the billiard table in the terminal.
//
// [Canvas] is a Braille pixel canvas; [Viewport] maps table coordinates
// onto it. [Model] is a Bubble Tea program animating a single particle,
// with an asciigraph history of its coordinates.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial state
//	+/-   - Double/halve steps per frame
//	[/]   - Shrink/grow the scatterer
//	C     - Toggle the trail
//	T     - Cycle color themes
//	Q     - Quit
package viz
