// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/livetally/aggregator"
	"github.com/danielhkuo/livetally/models"
	"github.com/danielhkuo/livetally/store"
	"github.com/danielhkuo/livetally/testutil"
)

func TestCreatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewPollHandler(store.New(db))

	reqBody := models.CreatePollRequest{
		Question: "Best color?",
		Options:  []string{"Red", "Blue"},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/polls", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreatePoll(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var poll models.Poll
	if err := json.Unmarshal(w.Body.Bytes(), &poll); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if poll.ID == "" {
		t.Error("Expected non-empty poll ID")
	}
	if len(poll.Options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(poll.Options))
	}
	if poll.Options[0].Text != "Red" || poll.Options[0].Votes != 0 {
		t.Errorf("Unexpected first option: %+v", poll.Options[0])
	}
}

func TestCreatePollValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewPollHandler(store.New(db))

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", "{nope"},
		{"empty question", `{"question":"","options":["A","B"]}`},
		{"one option", `{"question":"Q?","options":["A"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/polls", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestGetPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	s := store.New(db)
	handler := NewPollHandler(s)
	poll := testutil.CreateTestPoll(t, s, "Best color?", "Red", "Blue")

	req := httptest.NewRequest("GET", "/api/polls/"+poll.ID, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()

	handler.GetPoll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var got models.Poll
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if got.Question != "Best color?" {
		t.Errorf("Expected question 'Best color?', got '%s'", got.Question)
	}
}

func TestGetPollNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewPollHandler(store.New(db))

	req := httptest.NewRequest("GET", "/api/polls/no-such-poll", nil)
	req.SetPathValue("id", "no-such-poll")
	w := httptest.NewRecorder()

	handler.GetPoll(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestCreateVoteFetchScenario runs the end-to-end tally scenario: two
// distinct voters vote [0] and [1]; GET returns one vote on each.
func TestCreateVoteFetchScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	s := store.New(db)
	agg := aggregator.New(s)
	handler := NewPollHandler(s)
	poll := testutil.CreateTestPoll(t, s, "Best color?", "Red", "Blue")

	if _, err := agg.CastVote(context.Background(), poll.ID, "voter-a", []int{0}); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}
	if _, err := agg.CastVote(context.Background(), poll.ID, "voter-b", []int{1}); err != nil {
		t.Fatalf("Second vote failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/polls/"+poll.ID, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()

	handler.GetPoll(w, req)

	var got models.Poll
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if got.Options[0].Text != "Red" || got.Options[0].Votes != 1 {
		t.Errorf("Expected {Red 1}, got %+v", got.Options[0])
	}
	if got.Options[1].Text != "Blue" || got.Options[1].Votes != 1 {
		t.Errorf("Expected {Blue 1}, got %+v", got.Options[1])
	}
}
