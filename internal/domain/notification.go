package domain

import "time"

// NotificationType classifies a notification record
type NotificationType string

const (
	NotificationLessonRequest   NotificationType = "lesson_request"
	NotificationLessonConfirmed NotificationType = "lesson_confirmed"
	NotificationLessonRejected  NotificationType = "lesson_rejected"
	NotificationLessonCancelled NotificationType = "lesson_cancelled"
)

// Notification is a persisted message for a user. The service only creates
// records; delivery (push, email, in-app read state) is outside this core.
type Notification struct {
	ID       int64
	UserID   int64
	Type     NotificationType
	Message  string
	Read     bool
	LessonID *int64

	CreatedAt time.Time
}
