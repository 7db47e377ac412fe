// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Three tables:

  - poll: id, question, allow_multi, created_at
  - poll_option: (poll_id, position) keyed option text and vote counter
  - poll_voter: (poll_id, identity) keyed voter set

The poll_voter primary key is what makes one-vote-per-voter enforceable
at the storage layer: inserting a duplicate identity for a poll fails
the transaction.

CreateSchema is idempotent (IF NOT EXISTS) and works against both
PostgreSQL and SQLite.
*/
package db
