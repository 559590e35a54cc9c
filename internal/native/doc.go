// SPDX-License-Identifier: EPL-2.0

// Package native is the engine boundary. Every operation is a package-level
// function shaped like a C entry point: it takes a raw Handle plus primitive
// arguments and returns nothing or an int32 status (0 ok, 1..7 failure kinds).
//
// Handles index a process-wide arena. Each slot carries a generation counter
// that is bumped on destroy, so a stale Handle resolves to nothing instead of
// to whatever object reused the slot. Void entry points ignore unknown
// handles; status-returning ones report StatusInvalidParameter.
//
// Nothing in this package opens an audio device. An engine created with
// SoloudCreate renders offline through SoloudMix.
package native
