package repository

import (
	"context"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
)

func (r *Repository) CreateTimeSlot(slot *domain.TimeSlot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO time_slots (name, start_time, end_time, is_custom)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{slot.Name, slot.StartTime, slot.EndTime, slot.IsCustom}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt, &slot.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimeSlotByID(id int64) (*domain.TimeSlot, error) {
	query := `
		SELECT name, start_time, end_time, is_custom, created_at, version
		FROM time_slots WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	slot := &domain.TimeSlot{
		ID: id,
	}

	dst := []any{&slot.Name, &slot.StartTime, &slot.EndTime, &slot.IsCustom, &slot.CreatedAt, &slot.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return slot, nil
}

func (r *Repository) GetAllTimeSlots() ([]*domain.TimeSlot, error) {
	query := `
		SELECT id, name, start_time, end_time, is_custom, created_at, version
		FROM time_slots ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot := &domain.TimeSlot{}
		dst := []any{&slot.ID, &slot.Name, &slot.StartTime, &slot.EndTime, &slot.IsCustom, &slot.CreatedAt, &slot.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *Repository) UpdateTimeSlot(slot *domain.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			is_custom = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{slot.Name, slot.StartTime, slot.EndTime, slot.IsCustom, slot.ID, slot.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&slot.CreatedAt, &slot.Version); err != nil {
		return err
	}

	return nil
}

// DeleteTimeSlot 依赖 shifts_time_slot_id_fkey 外键约束，
// 时段被班次引用时删除会失败，由 handler 把约束错误翻译成业务提示
func (r *Repository) DeleteTimeSlot(id int64) error {
	query := `
		DELETE FROM time_slots WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
