package teacherprofile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/pkg/dbmetrics"
	"github.com/m04kA/MTC-LessonService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации преподавателя (ставка, допустимые
// длительности занятий, политика авто-подтверждения)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTeacherID получает профиль преподавателя
func (r *Repository) GetByTeacherID(ctx context.Context, teacherID int64) (*domain.TeacherProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"teacher_id",
		"hourly_rate",
		"lesson_durations",
		"auto_accept",
		"bio",
		"created_at",
		"updated_at",
	).
		From("teacher_profiles").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTeacherID - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.TeacherProfile
	var durations pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.TeacherID,
		&profile.HourlyRate,
		&durations,
		&profile.AutoAccept,
		&profile.Bio,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTeacherID - scan profile: %v", ErrScanRow, err)
	}

	profile.LessonDurations = make([]int, len(durations))
	for i, d := range durations {
		profile.LessonDurations[i] = int(d)
	}
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

// Upsert создает или полностью заменяет профиль преподавателя
func (r *Repository) Upsert(ctx context.Context, profile *domain.TeacherProfile) (*domain.TeacherProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	durations := make(pq.Int64Array, len(profile.LessonDurations))
	for i, d := range profile.LessonDurations {
		durations[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("teacher_profiles").
		Columns("teacher_id", "hourly_rate", "lesson_durations", "auto_accept", "bio").
		Values(profile.TeacherID, profile.HourlyRate, durations, profile.AutoAccept, profile.Bio).
		Suffix(`ON CONFLICT (teacher_id) DO UPDATE SET
			hourly_rate = EXCLUDED.hourly_rate,
			lesson_durations = EXCLUDED.lesson_durations,
			auto_accept = EXCLUDED.auto_accept,
			bio = EXCLUDED.bio,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return profile, nil
}
