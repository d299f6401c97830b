package accounts

import "time"

// Notification is an in-app message stored on the account record until the
// owner reads or clears it.
type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

// Account holds the credential side of a registered user. The profile data
// lives on the users record under the same id.
type Account struct {
	ID            string         `json:"id,omitempty"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"` // never serialize
	Notifications []Notification `json:"notifications"`
}

// NewNotification builds an unread notification stamped with the current time.
func NewNotification(title, text string) Notification {
	now := time.Now().UTC()
	return Notification{
		ID:        now.UnixMilli(),
		Title:     title,
		Text:      text,
		Timestamp: now.Format(time.RFC3339),
		Read:      false,
	}
}
