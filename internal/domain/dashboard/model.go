package dashboard

import (
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/location"
)

// State is everything the page needs to draw itself. Values returned by a
// Session are copies; the Dashboard pointer is never mutated once set.
type State struct {
	Query              string              `json:"query"`
	Loading            bool                `json:"loading"`
	StatusText         string              `json:"statusText,omitempty"`
	Suggestions        []location.Location `json:"suggestions"`
	SuggestionsVisible bool                `json:"suggestionsVisible"`
	// SuggestionsQuery is the input the current suggestions were looked up for.
	SuggestionsQuery string `json:"suggestionsQuery,omitempty"`
	// SuggestionsPending is true while a lookup for Query is scheduled or in flight.
	SuggestionsPending bool `json:"suggestionsPending"`
	// Notification is a blocking message for the user, empty when none.
	Notification     string              `json:"notification,omitempty"`
	Dashboard        *forecast.Dashboard `json:"dashboard,omitempty"`
	DashboardVisible bool                `json:"dashboardVisible"`
}

// Config wires runtime knobs for sessions.
type Config struct {
	DefaultQuery   string
	MinQueryLength int
	Debounce       time.Duration
	Language       string
	IdleTTL        time.Duration
	SuggestTimeout time.Duration
}
