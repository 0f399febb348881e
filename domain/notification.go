package domain

import (
	"fmt"
	"strings"
)

// Notification is a user-addressed message delivered over pub/sub in the
// wire form `title|action|message`.
type Notification struct {
	Title   string `json:"title"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// Encode renders the pipe-delimited wire form. Pipes inside fields are
// replaced so the frame stays three-part.
func (n Notification) Encode() string {
	sanitize := func(s string) string {
		return strings.ReplaceAll(s, "|", "/")
	}
	return fmt.Sprintf("%s|%s|%s", sanitize(n.Title), sanitize(n.Action), sanitize(n.Message))
}

// DecodeNotification parses the pipe-delimited wire form.
func DecodeNotification(raw string) (Notification, error) {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) != 3 {
		return Notification{}, fmt.Errorf("malformed notification frame: %q", raw)
	}
	return Notification{Title: parts[0], Action: parts[1], Message: parts[2]}, nil
}

// NotificationChannel names the per-user pub/sub channel.
func NotificationChannel(userID string) string {
	return "notify:user:" + userID
}
