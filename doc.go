// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livetally API server.

Livetally is a realtime polling service: a creator publishes a poll
over HTTP, participants vote over a websocket channel, and every
subscriber of the poll receives the updated tally as votes land. Each
voter identity counts at most once per poll.

# Starting the Server

The server reads environment variables (optionally from a .env file)
or CLI flags:

	DATABASE_URL=polls.db VOTER_HASH_SALT=secret go run main.go

Or with flags:

	go run main.go -p 5000 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string (file path for sqlite)
  - VOTER_HASH_SALT (--voter-salt): secret for voter identity hashing

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ALLOWED_ORIGIN (--origin): frontend origin for CORS and the
    websocket handshake (default: *)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (poll create/fetch)
  - realtime: websocket hub, broadcast groups, client pumps
  - aggregator: vote validation and per-poll serialized commits
  - store: durable poll state, the atomic ApplyVote path
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - identity: voter fairness key derivation
  - models: request/response and event types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
