package models

import (
	"time"

	"github.com/google/uuid"
)

// Query outcome constants
const (
	OutcomePrompt    = "prompt"
	OutcomeTopic     = "topic"
	OutcomeGenerated = "generated"
	OutcomeCache     = "cache"
	OutcomeFallback  = "fallback"
)

// QueryLog records how a single question was answered.
type QueryLog struct {
	ID        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	Outcome   string    `json:"outcome"`
	Topic     string    `json:"topic,omitempty"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

// OutcomeCount is an aggregated count of answers per topic and outcome.
type OutcomeCount struct {
	Topic   string
	Outcome string
	Count   int64
}
