// Package viz renders the orrery to a terminal.
//
//   - [Scene]: rasterizes bodies, orbit rings and the star backdrop from the
//     current camera pose
//   - [Canvas]: braille pixel grid with per-cell colors
//   - [Theme]: dark and light color schemes
//
// Scene implements the renderer side of control.Scene, so a Simulation drives
// it directly. Pixel and pointer mapping share the projection used for
// picking, which keeps hover hits aligned with what is drawn.
package viz
