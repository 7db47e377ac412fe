// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route structure using Go 1.22+ routing.

# Routes

	GET  /health            - health check
	POST /api/polls         - create poll
	GET  /api/polls/{id}    - fetch poll snapshot
	GET  /ws                - websocket upgrade for join/vote/updates
	GET  /                  - API identifier

NewRouter also constructs the store, aggregator and hub, so main only
has to provide the database handle and configuration.
*/
package router
