// Package quasiwalk makes a simulated humanoid walk in place, one slow step
// at a time.
//
// The walk is quasi-static: the center of mass is moved over the support
// foot before the other foot leaves the ground, so the robot is balanced at
// every instant. Each step is a cycle of four phases, after which the
// support foot swaps.
//
// # Installation
//
//	go install github.com/gwillem/quasiwalk/cmd/quasiwalk@latest
//
// # Usage
//
// Write a configuration file, then walk:
//
//	quasiwalk init
//	quasiwalk walk --steps 4
//
// Pass --viewer to stream the robot configuration to a socket.io viewer, or
// --record to save every frame as JSON lines.
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/quasiwalk: CLI with walk, info and init commands
//   - pkg/gait: The walking sequencer
//   - pkg/robot: Capability interfaces and the named-signal adapter
//   - pkg/sim: Kinematic stand-in for the humanoid
//   - pkg/walk: Session driving simulator, sequencer and viewer
//   - pkg/viewer: Visualization clients
//   - pkg/config: Configuration loading
//   - pkg/math3d: Poses and vectors
package quasiwalk
