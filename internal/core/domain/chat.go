package domain

import "time"

// ChatMessage is an immutable entry in an order's chat thread.
//
// Quoted text and author are snapshotted at send time; a later change to the
// author's display name does not update old quotes.
type ChatMessage struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name"`
	Message           string    `json:"message"`
	ImageID           string    `json:"image_id,omitempty"`
	QuotedMessageID   string    `json:"quoted_message_id,omitempty"`
	QuotedMessageText string    `json:"quoted_message_text,omitempty"`
	QuotedUserName    string    `json:"quoted_user_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
