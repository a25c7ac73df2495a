// Package viz draws a flight in the terminal.
//
// [Model] is a Bubble Tea program that owns a [flight.Session] and feeds it
// wall-clock frame times. The scene is drawn on a braille [Canvas]:
// the dotted predicted path, the flown path and the body, over the ground
// and the launch platform.
//
// # Key Bindings
//
//	Space - Launch
//	R     - Reset
//	S     - Toggle slow motion
//	A     - Toggle air resistance
//	←/→   - Speed
//	↑/↓   - Angle
//	+/-   - Platform height
//	Tab   - Next projectile
//	T     - Cycle color themes
//	Q     - Quit
//
// Parameter changes apply to the preview immediately and to the next
// launch; a flight in progress keeps the parameters it was launched with.
package viz
