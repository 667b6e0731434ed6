package domain

import (
	"time"

	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// LessonStatus represents the status of a lesson
type LessonStatus string

const (
	LessonStatusPending   LessonStatus = "pending"
	LessonStatusConfirmed LessonStatus = "confirmed"
	LessonStatusCancelled LessonStatus = "cancelled"
	LessonStatusCompleted LessonStatus = "completed"
	LessonStatusRejected  LessonStatus = "rejected"
)

// Lesson represents a scheduled (or requested) session between a teacher and
// a student. Created by a student's booking action; the status then evolves
// through teacher decisions (confirm/reject), cancellation by either party,
// or completion. Lessons are never deleted: cancellation is a status change.
type Lesson struct {
	ID              int64
	TeacherID       int64
	StudentID       int64
	Date            time.Time // calendar date, wall-clock, no timezone
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int // must equal EndTime - StartTime
	Status          LessonStatus
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCalendar reports whether the lesson holds its time range for
// conflict purposes. Cancelled and rejected lessons do not.
func (l *Lesson) OccupiesCalendar() bool {
	return l.Status != LessonStatusCancelled && l.Status != LessonStatusRejected
}

// CanBeCancelled reports whether the lesson may transition to cancelled.
func (l *Lesson) CanBeCancelled() bool {
	return l.Status == LessonStatusPending || l.Status == LessonStatusConfirmed
}

// CanBeDecided reports whether the teacher may still accept or reject it.
func (l *Lesson) CanBeDecided() bool {
	return l.Status == LessonStatusPending
}

// CanBeCompleted reports whether the lesson may be marked completed.
func (l *Lesson) CanBeCompleted() bool {
	return l.Status == LessonStatusConfirmed
}

// IsTerminal reports whether the status can never change again.
func (l *Lesson) IsTerminal() bool {
	return l.Status == LessonStatusCancelled ||
		l.Status == LessonStatusCompleted ||
		l.Status == LessonStatusRejected
}

// TeacherLessonsFilter фильтр для выборки занятий преподавателя
type TeacherLessonsFilter struct {
	TeacherID       int64         // Обязательный параметр
	StartDate       *time.Time    // Начало периода (опционально)
	EndDate         *time.Time    // Конец периода (опционально)
	Status          *LessonStatus // Фильтр по статусу (опционально)
	IncludeInactive bool          // Включать ли отменённые и отклонённые занятия
}
