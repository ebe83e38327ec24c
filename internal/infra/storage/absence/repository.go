package absence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableName = "doctor_absences"

var columns = []string{
	"id",
	"doctor_id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// Repository репозиторий периодов отсутствия врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindCovering возвращает первый период отсутствия врача, покрывающий календарную дату day.
// Дата передается строкой YYYY-MM-DD и сравнивается как DATE, время суток и пояс не участвуют.
func (r *Repository) FindCovering(ctx context.Context, doctorID int64, day time.Time) (*domain.AbsencePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	date := day.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Expr("start_date <= ?::date", date)).
		Where(squirrel.Expr("end_date >= ?::date", date)).
		OrderBy("start_date ASC", "id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - build select query: %v", ErrBuildQuery, err)
	}

	absence, err := scanAbsence(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - scan absence: %v", ErrScanRow, err)
	}

	return absence, nil
}

// GetByID получает период отсутствия по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AbsencePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	absence, err := scanAbsence(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan absence: %v", ErrScanRow, err)
	}

	return absence, nil
}

// ListByDoctor возвращает все периоды отсутствия врача по дате начала
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.AbsencePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("start_date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	absences := make([]*domain.AbsencePeriod, 0)
	for rows.Next() {
		absence, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDoctor - scan row: %v", ErrScanRow, err)
		}
		absences = append(absences, absence)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}

// Create создает период отсутствия
func (r *Repository) Create(ctx context.Context, absence *domain.AbsencePeriod) (*domain.AbsencePeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("doctor_id", "start_date", "end_date", "reason").
		Values(
			absence.DoctorID,
			squirrel.Expr("?::date", absence.StartDate.Format(domain.DateFormat)),
			squirrel.Expr("?::date", absence.EndDate.Format(domain.DateFormat)),
			absence.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&absence.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	absence.CreatedAt = createdAt.Time

	return absence, nil
}

// Delete удаляет период отсутствия
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
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
		return ErrAbsenceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAbsence(row rowScanner) (*domain.AbsencePeriod, error) {
	var absence domain.AbsencePeriod
	var createdAt sql.NullTime

	if err := row.Scan(
		&absence.ID,
		&absence.DoctorID,
		&absence.StartDate,
		&absence.EndDate,
		&absence.Reason,
		&createdAt,
	); err != nil {
		return nil, err
	}

	absence.StartDate = domain.DateOnly(absence.StartDate)
	absence.EndDate = domain.DateOnly(absence.EndDate)
	absence.CreatedAt = createdAt.Time

	return &absence, nil
}
