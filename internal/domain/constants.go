package domain

// SlotStrideMinutes is the fixed step between successive candidate slot start
// times. It is independent of the lesson duration: a 60-minute lesson against
// the 30-minute stride produces overlapping candidates starting every half
// hour, which maximizes start-time choice for the student.
const SlotStrideMinutes = 30

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM, billing bucket
)

// Business validation constants
const (
	MinLessonDurationMinutes = 15
	MaxLessonDurationMinutes = 240
	MaxNotesLength           = 500
)

// OccupyingStatuses are the lesson statuses that hold a teacher's calendar
// for conflict purposes. Cancelled and rejected lessons never block a slot:
// a booking that was withdrawn or never accepted does not hold its time.
var OccupyingStatuses = []LessonStatus{
	LessonStatusPending,
	LessonStatusConfirmed,
	LessonStatusCompleted,
}

// TerminalStatuses are the statuses a lesson can never leave.
var TerminalStatuses = []LessonStatus{
	LessonStatusCancelled,
	LessonStatusCompleted,
	LessonStatusRejected,
}
