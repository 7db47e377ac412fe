// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/livetally/models"
	"github.com/danielhkuo/livetally/store"
)

var (
	// ErrNoSelection means the submission carried no valid option index
	// after filtering. The vote is a no-op: nothing is counted, nothing
	// is broadcast, and the voter is not marked as having voted.
	ErrNoSelection = errors.New("no valid option selected")

	// ErrMultiNotAllowed means a multi-index submission hit a
	// single-choice poll.
	ErrMultiNotAllowed = errors.New("poll does not allow selecting multiple options")
)

// Aggregator is the single gate between vote intents and committed
// tally changes. All mutations for one poll are serialized by a
// per-poll lock held across the whole check-and-commit, so two intents
// sharing a voter identity can never both pass the fairness check.
// Intents for different polls proceed independently.
type Aggregator struct {
	store *store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(s *store.Store) *Aggregator {
	return &Aggregator{
		store: s,
		locks: make(map[string]*sync.Mutex),
	}
}

// pollLock returns the mutex serializing mutations for one poll id.
// Lock entries are never reclaimed; a mutex per poll ever voted on in
// this process is small next to the poll's own rows.
func (a *Aggregator) pollLock(pollID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[pollID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[pollID] = l
	}
	return l
}

// CastVote validates and commits a vote intent, returning the updated
// poll snapshot on acceptance.
//
// Out-of-range indices are filtered out rather than failing the
// submission; duplicate indices count once. A submission left with no
// valid index returns ErrNoSelection and does not mark the voter as
// having voted. Selecting more than one option on a single-choice poll
// returns ErrMultiNotAllowed and counts nothing.
func (a *Aggregator) CastVote(ctx context.Context, pollID, identity string, indices []int) (*models.Poll, error) {
	l := a.pollLock(pollID)
	l.Lock()
	defer l.Unlock()

	// Always re-read before mutating; the store is the only
	// authoritative copy of the tally.
	poll, err := a.store.Get(ctx, pollID)
	if err != nil {
		return nil, err
	}

	valid := filterIndices(indices, len(poll.Options))
	if len(valid) == 0 {
		return nil, ErrNoSelection
	}
	if len(valid) > 1 && !poll.Settings.AllowMulti {
		return nil, ErrMultiNotAllowed
	}

	updated, err := a.store.ApplyVote(ctx, pollID, identity, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to apply vote to poll %s: %w", pollID, err)
	}

	return updated, nil
}

// filterIndices drops out-of-range indices and deduplicates the rest,
// preserving first-occurrence order.
func filterIndices(indices []int, optionCount int) []int {
	seen := make(map[int]bool, len(indices))
	valid := make([]int, 0, len(indices))
	for _, index := range indices {
		if index < 0 || index >= optionCount {
			continue
		}
		if seen[index] {
			continue
		}
		seen[index] = true
		valid = append(valid, index)
	}
	return valid
}
