package models

import "time"

type NotificationType string

const (
	NotificationTypeWelcome NotificationType = "welcome"
	NotificationTypeAccount NotificationType = "account"
	NotificationTypeReceipt NotificationType = "receipt"
	NotificationTypeGeneral NotificationType = "general"
)

type Notification struct {
	ID        string           `db:"id"`
	UserID    string           `db:"user_id"`
	Title     string           `db:"title"`
	Message   string           `db:"message"`
	Type      NotificationType `db:"type"`
	Read      bool             `db:"read"`
	CreatedAt time.Time        `db:"created_at"`
}
