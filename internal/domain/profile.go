package domain

import "time"

// Default teacher profile values applied when a teacher has not configured
// their profile yet.
const (
	DefaultHourlyRate = 40.0
)

// DefaultLessonDurations are the permitted duration choices when the teacher
// has not configured any.
var DefaultLessonDurations = []int{30, 45, 60}

// TeacherProfile is per-teacher booking configuration: the hourly rate used
// for billing records, the permitted lesson durations, and the auto-accept
// policy governing the initial status of a new booking.
type TeacherProfile struct {
	TeacherID       int64
	HourlyRate      float64
	LessonDurations []int // minutes, e.g. [30, 45, 60]
	AutoAccept      bool
	Bio             *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsDuration reports whether the duration is one of the configured
// choices.
func (p *TeacherProfile) AllowsDuration(minutes int) bool {
	for _, d := range p.LessonDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// MinLessonDuration returns the shortest configured duration. Used as the
// conservative probe for date feasibility: if the shortest lesson cannot
// fit, no longer one can either.
func (p *TeacherProfile) MinLessonDuration() int {
	if len(p.LessonDurations) == 0 {
		return 0
	}
	min := p.LessonDurations[0]
	for _, d := range p.LessonDurations[1:] {
		if d < min {
			min = d
		}
	}
	return min
}

// InitialLessonStatus returns the status a new booking starts in under this
// teacher's auto-accept policy.
func (p *TeacherProfile) InitialLessonStatus() LessonStatus {
	if p.AutoAccept {
		return LessonStatusConfirmed
	}
	return LessonStatusPending
}

// Subscription is a student's opt-in relationship to a teacher. Booking is
// only permitted for subscribed students; the relationship itself carries no
// scheduling data.
type Subscription struct {
	ID        int64
	StudentID int64
	TeacherID int64

	CreatedAt time.Time
}
