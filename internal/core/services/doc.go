// Package services implements the driving port interfaces.
// Services contain the core editing logic and orchestrate
// calls to driven ports (adapters).
//
// Services hold no UI state beyond the gesture controllers, which are
// plain state machines fed by whichever front end is running.
package services
