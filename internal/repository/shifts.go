package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
)

func (r *Repository) InsertShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	// shifts_resource_id_date_key 唯一约束在这里兜底：
	// 两个并发请求都通过了应用层检查时，后写入的一方会收到约束冲突而不是写出第二条记录
	query := `
		INSERT INTO shifts (resource_id, time_slot_id, date, week_number, year, hours, overtime_hours, extra_overtime_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	args := []any{shift.ResourceID, shift.TimeSlotID, shift.Date, shift.WeekNumber, shift.Year, shift.Hours, shift.OvertimeHours, shift.ExtraOvertimeHours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT resource_id, time_slot_id, date, week_number, year, hours, overtime_hours, extra_overtime_hours, created_at
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.ResourceID, &shift.TimeSlotID, &shift.Date, &shift.WeekNumber, &shift.Year, &shift.Hours, &shift.OvertimeHours, &shift.ExtraOvertimeHours, &shift.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetShiftByResourceAndDate(resourceID int64, date time.Time) (*domain.Shift, error) {
	query := `
		SELECT id, time_slot_id, week_number, year, hours, overtime_hours, extra_overtime_hours, created_at
		FROM shifts WHERE resource_id = $1 AND date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ResourceID: resourceID,
		Date:       date,
	}

	dst := []any{&shift.ID, &shift.TimeSlotID, &shift.WeekNumber, &shift.Year, &shift.Hours, &shift.OvertimeHours, &shift.ExtraOvertimeHours, &shift.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, resourceID, date).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetShiftsByResourceAndWeek(resourceID int64, week, year int32) ([]*domain.Shift, error) {
	query := `
		SELECT id, time_slot_id, date, hours, overtime_hours, extra_overtime_hours, created_at
		FROM shifts WHERE resource_id = $1 AND week_number = $2 AND year = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, resourceID, week, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{
			ResourceID: resourceID,
			WeekNumber: week,
			Year:       year,
		}
		dst := []any{&shift.ID, &shift.TimeSlotID, &shift.Date, &shift.Hours, &shift.OvertimeHours, &shift.ExtraOvertimeHours, &shift.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

const shiftDetailColumns = `
	s.id, s.resource_id, s.time_slot_id, s.date, s.week_number, s.year,
	s.hours, s.overtime_hours, s.extra_overtime_hours, s.created_at,
	r.name, r.email, ts.name, ts.start_time, ts.end_time
`

func scanShiftDetails(rows *sql.Rows) ([]*domain.ShiftDetail, error) {
	details := make([]*domain.ShiftDetail, 0)
	for rows.Next() {
		detail := &domain.ShiftDetail{}
		dst := []any{
			&detail.ID, &detail.ResourceID, &detail.TimeSlotID, &detail.Date, &detail.WeekNumber, &detail.Year,
			&detail.Hours, &detail.OvertimeHours, &detail.ExtraOvertimeHours, &detail.CreatedAt,
			&detail.ResourceName, &detail.ResourceEmail, &detail.SlotName, &detail.SlotStartTime, &detail.SlotEndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// GetShiftDetailsByResourceBetween 返回某个资源在日期区间内的班次及其时段信息，
// 一次连接查询取回，避免休息时间校验时逐条回查时段
func (r *Repository) GetShiftDetailsByResourceBetween(resourceID int64, from, to time.Time) ([]*domain.ShiftDetail, error) {
	query := `
		SELECT ` + shiftDetailColumns + `
		FROM shifts s
		JOIN resources r ON r.id = s.resource_id
		JOIN time_slots ts ON ts.id = s.time_slot_id
		WHERE s.resource_id = $1 AND s.date BETWEEN $2 AND $3
		ORDER BY s.date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShiftDetails(rows)
}

func (r *Repository) GetShiftDetailsByWeek(week, year int32) ([]*domain.ShiftDetail, error) {
	query := `
		SELECT ` + shiftDetailColumns + `
		FROM shifts s
		JOIN resources r ON r.id = s.resource_id
		JOIN time_slots ts ON ts.id = s.time_slot_id
		WHERE s.week_number = $1 AND s.year = $2
		ORDER BY s.date, ts.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, week, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShiftDetails(rows)
}

func (r *Repository) GetAllShiftDetails() ([]*domain.ShiftDetail, error) {
	query := `
		SELECT ` + shiftDetailColumns + `
		FROM shifts s
		JOIN resources r ON r.id = s.resource_id
		JOIN time_slots ts ON ts.id = s.time_slot_id
		ORDER BY s.date, ts.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShiftDetails(rows)
}

// GetPublishedShiftDetails 只返回落在已发布周计划中的班次，供员工端读取
func (r *Repository) GetPublishedShiftDetails() ([]*domain.ShiftDetail, error) {
	query := `
		SELECT ` + shiftDetailColumns + `
		FROM shifts s
		JOIN resources r ON r.id = s.resource_id
		JOIN time_slots ts ON ts.id = s.time_slot_id
		JOIN weekly_plans wp ON wp.week_number = s.week_number AND wp.year = s.year
		WHERE wp.status = $1
		ORDER BY s.date, ts.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.PlanStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShiftDetails(rows)
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
