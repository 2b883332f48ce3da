// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package consensus tracks votes over a poll's proposed slots and finalizes a
meeting the moment every participant has voted.

# Lifecycle

Polls move Open → Closed, terminally. A vote by a participant overwrites any
prior vote by the same participant. When the vote keyset equals the
participant set, the engine tallies selections by slot identity (start+end),
takes the most-voted slots, and breaks ties uniformly at random; it then
marks the poll closed, emits a Meeting through the store, and calls the
Notifier exactly once.

# Failure semantics

Vote recording and closure evaluation are serialized per poll so concurrent
final votes cannot produce two closures. Meeting emission or notification
failures are logged and never roll back a closure decision.

# Randomness

The tie-break and nothing else consumes the engine's random source, which is
injected so tests can fix the seed.
*/
package consensus
