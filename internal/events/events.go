package events

import (
	"context"
	"time"
)

// Routing keys on the leads exchange.
const (
	LeadCreated         = "lead.created"
	LeadUpdated         = "lead.updated"
	LeadStatusChanged   = "lead.status_changed"
	LeadDormancyChanged = "lead.dormancy_changed"
	LeadDeleted         = "lead.deleted"
)

type LeadEvent struct {
	Type   string    `json:"type"`
	LeadID string    `json:"leadId"`
	Asesor string    `json:"asesor,omitempty"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to,omitempty"`
	At     time.Time `json:"at"`
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LeadEvent) error { return nil }
