// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface for poll management.

  - CreatePoll: POST /api/polls - create a poll with question and options
  - GetPoll: GET /api/polls/{id} - fetch the current poll snapshot

Voting itself is not HTTP: vote intents arrive over the websocket
channel (see package realtime).
*/
package handlers
