// Package api defines the JSON types of the HTTP interface.
package api

import "time"

// StatusResponse is the generic mutation response: success flag plus an
// optional short error message
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Message is the wire representation of a chat message
type Message struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Type      string    `json:"message_type"`
	FileName  *string   `json:"file_name"`
	FileSize  *int64    `json:"file_size"`
	Timestamp time.Time `json:"timestamp"`
}

// MessagesResponse is the response of GET /api/messages
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

// UserInfoResponse is the response of GET /api/userinfo
type UserInfoResponse struct {
	Username string `json:"username"`
}
