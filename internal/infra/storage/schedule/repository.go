package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableName = "doctor_schedules"

var columns = []string{
	"id",
	"doctor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий недельного расписания врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDoctorAndDay возвращает правила врача на день недели, упорядоченные по времени начала
func (r *Repository) GetByDoctorAndDay(ctx context.Context, doctorID int64, day time.Weekday) ([]*domain.WeeklyScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID, "day_of_week": int(day)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetByDoctorAndDay", query, args)
}

// GetByDoctor возвращает все правила врача, упорядоченные по дню и времени начала
func (r *Repository) GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.WeeklyScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetByDoctor", query, args)
}

// DeleteByDoctor удаляет все правила врача и возвращает количество удаленных строк
func (r *Repository) DeleteByDoctor(ctx context.Context, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDoctor - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDoctor - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDoctor - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// CreateMany вставляет правила одним запросом. Пустой список ничего не делает.
func (r *Repository) CreateMany(ctx context.Context, rules []*domain.WeeklyScheduleRule) error {
	if len(rules) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableName).
		Columns("doctor_id", "day_of_week", "start_time", "end_time")

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(rule.DoctorID, int(rule.DayOfWeek), rule.StartTime, rule.EndTime)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateMany - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateMany - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.WeeklyScheduleRule, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]*domain.WeeklyScheduleRule, 0)
	for rows.Next() {
		var rule domain.WeeklyScheduleRule
		var day int
		var createdAt sql.NullTime

		if err := rows.Scan(
			&rule.ID,
			&rule.DoctorID,
			&day,
			&rule.StartTime,
			&rule.EndTime,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		rule.DayOfWeek = time.Weekday(day)
		rule.CreatedAt = createdAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return rules, nil
}
