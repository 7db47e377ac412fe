// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livetally/models"
)

var (
	ErrNotFound     = errors.New("poll not found")
	ErrAlreadyVoted = errors.New("voter has already voted on this poll")
	ErrValidation   = errors.New("invalid poll input")
)

// Store is the durable record of polls: question, ordered options with
// vote counters, and the voter-identity set. All vote mutations go
// through ApplyVote; no other code path writes option counters.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create validates and persists a new poll with all counters at zero
// and an empty voter set. Returns ErrValidation if the question is
// empty or fewer than 2 non-empty option texts are supplied.
func (s *Store) Create(ctx context.Context, question string, optionTexts []string, settings models.PollSettings) (*models.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}

	texts := make([]string, 0, len(optionTexts))
	for _, text := range optionTexts {
		text = strings.TrimSpace(text)
		if text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) < 2 {
		return nil, fmt.Errorf("%w: at least 2 options are required", ErrValidation)
	}

	pollID := uuid.NewString()
	createdAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, question, allow_multi, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, question, settings.AllowMulti, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	for position, text := range texts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, position, text, votes)
			VALUES ($1, $2, $3, 0)
		`, pollID, position, text)
		if err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit poll: %w", err)
	}

	options := make([]models.Option, len(texts))
	for i, text := range texts {
		options[i] = models.Option{Text: text}
	}

	return &models.Poll{
		ID:        pollID,
		Question:  question,
		Options:   options,
		Settings:  settings,
		CreatedAt: createdAt,
	}, nil
}

// Get returns the current snapshot of a poll, or ErrNotFound.
func (s *Store) Get(ctx context.Context, pollID string) (*models.Poll, error) {
	return s.get(ctx, s.db, pollID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) get(ctx context.Context, q querier, pollID string) (*models.Poll, error) {
	var poll models.Poll
	err := q.QueryRowContext(ctx, `
		SELECT id, question, allow_multi, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Question, &poll.Settings.AllowMulti, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT text, votes
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Text, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return &poll, nil
}

// HasVoted reports whether the identity is already in the poll's voter set.
func (s *Store) HasVoted(ctx context.Context, pollID, identity string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM poll_voter
			WHERE poll_id = $1 AND identity = $2
		)
	`, pollID, identity).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query voter set: %w", err)
	}
	return exists, nil
}

// ApplyVote is the sole mutation entry point for tallies. In a single
// transaction it checks the voter set, increments each selected
// option's counter by 1, and records the voter identity. Any failure
// rolls the whole unit back; no partial increments survive.
//
// Callers must pass indices that are already validated against the
// option sequence. Returns the post-commit snapshot.
func (s *Store) ApplyVote(ctx context.Context, pollID, identity string, indices []int) (*models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var voted bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM poll_voter
			WHERE poll_id = $1 AND identity = $2
		)
	`, pollID, identity).Scan(&voted)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter set: %w", err)
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	for _, index := range indices {
		res, err := tx.ExecContext(ctx, `
			UPDATE poll_option
			SET votes = votes + 1
			WHERE poll_id = $1 AND position = $2
		`, pollID, index)
		if err != nil {
			return nil, fmt.Errorf("failed to increment option %d: %w", index, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read increment result: %w", err)
		}
		if affected != 1 {
			return nil, fmt.Errorf("option %d does not exist for poll %s", index, pollID)
		}
	}

	// The (poll_id, identity) primary key backstops the membership
	// check above under concurrent commits.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_voter (poll_id, identity, created_at)
		VALUES ($1, $2, $3)
	`, pollID, identity, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to record voter: %w", err)
	}

	poll, err := s.get(ctx, tx, pollID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return poll, nil
}
