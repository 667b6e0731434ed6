package delete_blocked_slot

import "context"

type ScheduleService interface {
	DeleteBlockedSlot(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
