package appointments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/dbx"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
)

const selectColumns = `SELECT id, customer_id, staff_id, appt_date, start_minute, end_minute, status, created_at
		 FROM appointments`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	query :=
		`INSERT INTO appointments (customer_id, staff_id, appt_date, start_minute, end_minute, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		appt.CustomerID, appt.StaffID, appt.Date, int(appt.StartTime), int(appt.EndTime), string(appt.Status)).
		Scan(&appt.ID, &appt.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return appt, nil
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Appointment, error) {
	query := selectColumns + `
		 WHERE customer_id = $1
		 ORDER BY appt_date, start_minute, id
		 `

	return r.list(ctx, query, customerID)
}

func (r *PostgresRepository) ListByStaff(ctx context.Context, staffID int64) ([]*models.Appointment, error) {
	query := selectColumns + `
		 WHERE staff_id = $1
		 ORDER BY appt_date, start_minute, id
		 `

	return r.list(ctx, query, staffID)
}

func (r *PostgresRepository) FindOverlap(ctx context.Context, staffID int64, date time.Time, start, end models.TimeOfDay) (*models.Appointment, error) {
	query := selectColumns + `
		 WHERE staff_id = $1 AND appt_date = $2 AND status <> $3
		   AND start_minute < $4 AND end_minute > $5
		 ORDER BY start_minute
		 LIMIT 1
		 `

	row := r.db.QueryRowContext(ctx, query, staffID, date, string(models.StatusCancelled), int(end), int(start))

	appt, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return appt, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, staffID int64, status models.Status) error {
	query :=
		`UPDATE appointments SET status = $3
		 WHERE id = $1 AND staff_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, staffID, string(status))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Appointment
	for rows.Next() {
		appt, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Appointment, error) {
	a := &models.Appointment{}
	var start, end int
	var status string
	if err := s.Scan(&a.ID, &a.CustomerID, &a.StaffID, &a.Date, &start, &end, &status, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.StartTime = models.TimeOfDay(start)
	a.EndTime = models.TimeOfDay(end)
	a.Status = models.Status(status)
	return a, nil
}
