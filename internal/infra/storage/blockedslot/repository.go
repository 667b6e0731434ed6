package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/pkg/dbmetrics"
	"github.com/m04kA/MTC-LessonService/pkg/psqlbuilder"
	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var blockedSlotColumns = []string{
	"id",
	"teacher_id",
	"blocked_date",
	"all_day",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий разовых блокировок расписания преподавателя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("teacher_id", "blocked_date", "all_day", "start_time", "end_time", "reason").
		Values(slot.TeacherID, slot.Date, slot.AllDay, slot.StartTime, slot.EndTime, slot.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	return slot, nil
}

// Delete удаляет блокировку преподавателя
func (r *Repository) Delete(ctx context.Context, id, teacherID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
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
		return ErrBlockedSlotNotFound
	}

	return nil
}

// ListByTeacher получает все блокировки преподавателя
func (r *Repository) ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.BlockedSlot, error) {
	return r.list(ctx, squirrel.Eq{"teacher_id": teacherID})
}

// ListByTeacherBetween получает блокировки преподавателя за период дат
// (включительно). Используется резолвером слотов и проверкой доступности дат.
func (r *Repository) ListByTeacherBetween(ctx context.Context, teacherID int64, from, to time.Time) ([]*domain.BlockedSlot, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"teacher_id": teacherID},
		squirrel.GtOrEq{"blocked_date": from},
		squirrel.LtOrEq{"blocked_date": to},
	})
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedSlotColumns...).
		From("blocked_slots").
		Where(where).
		OrderBy("blocked_date ASC, start_time ASC NULLS FIRST, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var slot domain.BlockedSlot
		var startTime, endTime types.TimeString
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.Date,
			&slot.AllDay,
			&startTime,
			&endTime,
			&slot.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}

		if !startTime.IsZero() {
			slot.StartTime = &startTime
		}
		if !endTime.IsZero() {
			slot.EndTime = &endTime
		}
		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
