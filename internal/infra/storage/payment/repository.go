package payment

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

var paymentColumns = []string{
	"id",
	"lesson_id",
	"teacher_id",
	"student_id",
	"amount",
	"status",
	"month",
	"paid_at",
	"created_at",
}

// Repository репозиторий платёжных записей.
// Платёж создается атомарно вместе со своим занятием (внутри транзакции
// бронирования) и никогда - отдельно.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёжную запись.
// Вызывается только из транзакции бронирования (исполнитель из контекста).
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("lesson_id", "teacher_id", "student_id", "amount", "status", "month").
		Values(
			payment.LessonID,
			payment.TeacherID,
			payment.StudentID,
			payment.Amount,
			payment.Status,
			payment.Month,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	return payment, nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var payment domain.Payment
	var paidAt sql.NullTime
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.LessonID,
		&payment.TeacherID,
		&payment.StudentID,
		&payment.Amount,
		&payment.Status,
		&payment.Month,
		&paidAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	if paidAt.Valid {
		payment.PaidAt = &paidAt.Time
	}
	payment.CreatedAt = createdAt.Time

	return &payment, nil
}

// ListWithFilter получает платежи преподавателя с опциональной фильтрацией
// по месяцу и статусу
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"teacher_id": filter.TeacherID}).
		OrderBy("created_at DESC, id DESC")

	if filter.Month != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"month": *filter.Month})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var payment domain.Payment
		var paidAt, createdAt sql.NullTime

		err := rows.Scan(
			&payment.ID,
			&payment.LessonID,
			&payment.TeacherID,
			&payment.StudentID,
			&payment.Amount,
			&payment.Status,
			&payment.Month,
			&paidAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}

		if paidAt.Valid {
			payment.PaidAt = &paidAt.Time
		}
		payment.CreatedAt = createdAt.Time
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// UpdateStatus переключает статус платежа. При отметке "paid" фиксируется
// момент оплаты, при возврате в "unpaid" - сбрасывается.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("paid_at", paidAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// SummaryByMonth считает агрегаты по месяцу преподавателя
func (r *Repository) SummaryByMonth(ctx context.Context, teacherID int64, month string) (*domain.PaymentSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(SUM(amount), 0)",
		"COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0)",
		"COUNT(*) FILTER (WHERE status = 'unpaid')",
		"COUNT(*) FILTER (WHERE status = 'paid')",
	).
		From("payments").
		Where(squirrel.Eq{"teacher_id": teacherID, "month": month}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SummaryByMonth - build select query: %v", ErrBuildQuery, err)
	}

	summary := &domain.PaymentSummary{TeacherID: teacherID, Month: month}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalAmount,
		&summary.PaidAmount,
		&summary.UnpaidCount,
		&summary.PaidCount,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: SummaryByMonth - scan summary: %v", ErrScanRow, err)
	}

	return summary, nil
}
