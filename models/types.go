// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Event type constants for the realtime channel
const (
	EventJoinPoll    = "joinPoll"
	EventVote        = "vote"
	EventPollUpdated = "pollUpdated"
	EventError       = "error"
)

// Request types

type CreatePollRequest struct {
	Question string        `json:"question"`
	Options  []string      `json:"options"`
	Settings *PollSettings `json:"settings,omitempty"`
}

// Domain types

type PollSettings struct {
	AllowMulti bool `json:"allowMulti"`
}

// Option is identified by its position in the poll's option list.
type Option struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	Options   []Option     `json:"options"`
	Settings  PollSettings `json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
}

// Realtime channel types

// ClientEvent is an inbound message from a websocket client.
// Indices is only meaningful for vote events.
type ClientEvent struct {
	Type    string        `json:"type"`
	PollID  string        `json:"pollId"`
	Indices OptionIndices `json:"indices,omitempty"`
}

// ServerEvent is an outbound message to a websocket client.
type ServerEvent struct {
	Type    string `json:"type"`
	Poll    *Poll  `json:"poll,omitempty"`
	Message string `json:"message,omitempty"`
}

// OptionIndices accepts either a single JSON number or an array of
// numbers: clients send "indices": 2 for single-choice polls and
// "indices": [0, 2] for multi-select ones.
type OptionIndices []int

func (oi *OptionIndices) UnmarshalJSON(data []byte) error {
	var many []int
	if err := json.Unmarshal(data, &many); err == nil {
		*oi = many
		return nil
	}
	var one int
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*oi = []int{one}
	return nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
