package model

import "time"

type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

type NotificationFeed struct {
	Items  []Notification `json:"items"`
	Unread int            `json:"unread"`
}
