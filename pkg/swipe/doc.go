// Package swipe maps drag gestures on a list row to gooey effect sessions.
//
// A [Cell] owns at most one [effect.Effect] at a time. Feed it gesture
// [Event]s in order; it asks its [Delegate] for an action when a drag
// begins, tracks the finger with [EffectProgress] while it moves, and on
// release animates either to 1 (commit) or back to 0 (cancel):
//
//	idle ──began──▶ tracking ──ended past gap──▶ committing ──▶ idle
//	                    └──────ended short──────▶ cancelling ──▶ idle
//
// Only a cleanly ended gesture in the effect's direction can commit.
// Cancelled and failed gestures always animate back.
//
// The recognizer is disabled from release until the release animation
// completes; events arriving meanwhile are dropped. A deleting action keeps
// the final shape on screen until the owner calls [Cell.Reset].
package swipe
