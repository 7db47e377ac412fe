// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns all durable poll state.

A poll is a question, an ordered list of options with vote counters,
and a set of voter identities. Counters only move through ApplyVote,
which commits the voter-set check, the increments, and the voter
insert as one transaction. Reads always come from the database; no
poll state is cached here.

Errors:

	ErrNotFound     - unknown poll id
	ErrAlreadyVoted - identity already in the poll's voter set
	ErrValidation   - bad creation input
*/
package store
