package lesson

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func lessonRows(lessons ...*domain.Lesson) *sqlmock.Rows {
	rows := sqlmock.NewRows(lessonColumns)
	for _, l := range lessons {
		rows.AddRow(
			l.ID, l.TeacherID, l.StudentID, l.Date,
			string(l.StartTime), string(l.EndTime), l.DurationMinutes,
			string(l.Status), l.Notes, l.CreatedAt, l.UpdatedAt,
		)
	}
	return rows
}

var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func sampleLesson() *domain.Lesson {
	return &domain.Lesson{
		ID:              10,
		TeacherID:       1,
		StudentID:       2,
		Date:            testDate,
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		Status:          domain.LessonStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestCreate(t *testing.T) {
	// Пожелания опциональны: nil уходит в базу как NULL, и бронирование
	// без заметок обязано сохраняться
	t.Run("without notes", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(`INSERT INTO lessons`).
			WithArgs(int64(1), int64(2), testDate, "10:00", "11:00", 60, "pending", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

		created, err := repo.Create(context.Background(), &domain.Lesson{
			TeacherID:       1,
			StudentID:       2,
			Date:            testDate,
			StartTime:       "10:00",
			EndTime:         "11:00",
			DurationMinutes: 60,
			Status:          domain.LessonStatusPending,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), created.ID)
		assert.Nil(t, created.Notes)
		assert.False(t, created.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with notes", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		notes := "повторить гаммы"
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO lessons`).
			WithArgs(int64(1), int64(2), testDate, "10:00", "11:00", 60, "pending", notes).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

		created, err := repo.Create(context.Background(), &domain.Lesson{
			TeacherID:       1,
			StudentID:       2,
			Date:            testDate,
			StartTime:       "10:00",
			EndTime:         "11:00",
			DurationMinutes: 60,
			Status:          domain.LessonStatusPending,
			Notes:           &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .+ FROM lessons WHERE id = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(lessonRows(sampleLesson()))

		lesson, err := repo.GetByID(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), lesson.ID)
		assert.Equal(t, domain.LessonStatusPending, lesson.Status)
		assert.Equal(t, "10:00", string(lesson.StartTime))
		assert.Nil(t, lesson.Notes) // NULL в базе — nil в модели
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .+ FROM lessons WHERE id = \$1`).
			WithArgs(int64(10)).
			WillReturnRows(lessonRows())

		_, err := repo.GetByID(context.Background(), 10)
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}

func TestGetByTeacherWithFilter(t *testing.T) {
	t.Run("default excludes inactive statuses", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		// Без явного статуса выбираются только занимающие календарь статусы
		mock.ExpectQuery(`SELECT .+ FROM lessons WHERE teacher_id = \$1 AND status IN \(\$2,\$3,\$4\)`).
			WithArgs(int64(1), "pending", "confirmed", "completed").
			WillReturnRows(lessonRows(sampleLesson()))

		lessons, err := repo.GetByTeacherWithFilter(context.Background(), domain.TeacherLessonsFilter{
			TeacherID: 1,
		})
		require.NoError(t, err)
		assert.Len(t, lessons, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single date ordered by start time", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .+ FROM lessons WHERE teacher_id = \$1 AND lesson_date >= \$2 AND lesson_date <= \$3 AND status IN .+ ORDER BY start_time ASC`).
			WithArgs(int64(1), testDate, testDate, "pending", "confirmed", "completed").
			WillReturnRows(lessonRows(sampleLesson()))

		lessons, err := repo.GetByTeacherWithFilter(context.Background(), domain.TeacherLessonsFilter{
			TeacherID: 1,
			StartDate: &testDate,
			EndDate:   &testDate,
		})
		require.NoError(t, err)
		assert.Len(t, lessons, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit status filter", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		status := domain.LessonStatusCancelled
		mock.ExpectQuery(`SELECT .+ FROM lessons WHERE teacher_id = \$1 AND status = \$2`).
			WithArgs(int64(1), "cancelled").
			WillReturnRows(lessonRows())

		lessons, err := repo.GetByTeacherWithFilter(context.Background(), domain.TeacherLessonsFilter{
			TeacherID: 1,
			Status:    &status,
		})
		require.NoError(t, err)
		assert.Empty(t, lessons)
	})
}

func TestGetByStudentID(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM lessons WHERE student_id = \$1 ORDER BY lesson_date DESC, start_time DESC`).
		WithArgs(int64(2)).
		WillReturnRows(lessonRows(sampleLesson()))

	lessons, err := repo.GetByStudentID(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Len(t, lessons, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE lessons SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("confirmed", int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 10, domain.LessonStatusConfirmed)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing lesson", func(t *testing.T) {
		repo, mock, cleanup := newMock(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE lessons SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("confirmed", int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 404, domain.LessonStatusConfirmed)
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}
