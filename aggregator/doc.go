// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregator turns vote intents into committed tally changes.

CastVote is the only path from a client's selection to the store's
counters. It filters out-of-range indices, deduplicates, enforces the
poll's single/multi-choice setting, and commits through the store
while holding a per-poll lock. Holding the lock across the fairness
check and the write is what closes the check-then-write race; the
store transaction underneath provides rollback on failure.

The aggregator holds no tally state of its own. It re-reads the poll
before every mutation and hands the post-commit snapshot back to the
caller for broadcast.
*/
package aggregator
