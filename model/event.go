package model

import "time"

// MarketplaceEvent is published after a successful mutation. Resources lists the cache
// entries (per user, or shared when UserID is empty) that the mutation made stale.
type MarketplaceEvent struct {
	EventID    string            `json:"event_id"`
	Type       string            `json:"type"`
	UserID     string            `json:"user_id,omitempty"`
	Resources  []string          `json:"resources"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
