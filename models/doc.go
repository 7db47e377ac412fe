// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API
and the realtime channel.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options, optional settings

# Domain Types

Internal data structures:

  - Poll: poll id, question, ordered options, settings
  - Option: text plus current vote count, identified by position
  - PollSettings: allowMulti flag

# Realtime Channel Types

Messages exchanged over the websocket:

  - ClientEvent: joinPoll / vote envelopes from clients
  - ServerEvent: pollUpdated / error envelopes to clients
  - OptionIndices: vote selection, a bare number or array on the wire

# Constants

Event types:

	EventJoinPoll    = "joinPoll"
	EventVote        = "vote"
	EventPollUpdated = "pollUpdated"
	EventError       = "error"
*/
package models
