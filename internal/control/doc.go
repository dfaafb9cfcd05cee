// Package control is the simulation control state machine.
//
// [Simulation] owns the body registry, the interaction state (pointer, hover,
// pause, panel and theme flags) and the camera controller. Hosts drive it from
// a single goroutine:
//
//	sim, err := control.New(cfg, scene, display)
//	for each frame {
//	    sim.Tick(clock.Delta())
//	}
//
// Input handlers (PointerMove, Click, KeyPress, Dispatch) run to completion
// between ticks, so a tick never observes a half-applied command.
//
// # Field ownership
//
// Each piece of state has exactly one writer:
//
//   - phase angles, spins, backdrop rotation: the kinematics step inside Tick
//   - speed overrides: SetSpeedCommand and ResetCommand
//   - camera pose: the camera controller (ambient update in Tick, or an
//     explicit Reset/Frame/Nudge command)
//   - hover: the pick step (PointerMove, PointerLeave, and the re-pick after
//     anything that moves bodies or the camera)
//   - pause, panel and theme flags: their toggle commands
//
// # Camera quirk
//
// Ambient camera motion is recomputed on every unpaused tick, so a
// click-to-frame or reset pose survives only until the next animated frame.
// While paused, directed poses persist. camera.Config.HoldDirected opts into
// keeping directed poses until the next reset.
package control
