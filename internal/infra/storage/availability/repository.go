package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/pkg/dbmetrics"
	"github.com/m04kA/MTC-LessonService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий еженедельных окон доступности преподавателя.
// Окна создаются и удаляются целиком (delete+recreate), никогда не
// обновляются на месте.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, window *domain.Availability) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availabilities").
		Columns("teacher_id", "day_of_week", "start_time", "end_time").
		Values(window.TeacherID, int(window.DayOfWeek), window.StartTime, window.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	return window, nil
}

// Delete удаляет окно доступности преподавателя
func (r *Repository) Delete(ctx context.Context, id, teacherID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availabilities").
		Where(squirrel.Eq{"id": id, "teacher_id": teacherID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// ListByTeacher получает все окна доступности преподавателя,
// отсортированные по дню недели и времени начала
func (r *Repository) ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "teacher_id", "day_of_week", "start_time", "end_time", "created_at").
		From("availabilities").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		OrderBy("day_of_week ASC, start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeacher - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeacher - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.Availability, 0)
	for rows.Next() {
		var window domain.Availability
		var dayOfWeek int
		var createdAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.TeacherID,
			&dayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTeacher - scan row: %v", ErrScanRow, err)
		}

		window.DayOfWeek = time.Weekday(dayOfWeek)
		window.CreatedAt = createdAt.Time
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTeacher - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
