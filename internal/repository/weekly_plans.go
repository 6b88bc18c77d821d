package repository

import (
	"context"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
)

func (r *Repository) GetAllWeeklyPlans() ([]*domain.WeeklyPlan, error) {
	query := `
		SELECT id, week_number, year, status, published_at, created_at, updated_at, version
		FROM weekly_plans
		ORDER BY year DESC, week_number DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.WeeklyPlan, 0)
	for rows.Next() {
		plan := &domain.WeeklyPlan{}
		dst := []any{&plan.ID, &plan.WeekNumber, &plan.Year, &plan.Status, &plan.PublishedAt, &plan.CreatedAt, &plan.UpdatedAt, &plan.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) GetWeeklyPlanByWeek(week, year int32) (*domain.WeeklyPlan, error) {
	query := `
		SELECT id, status, published_at, created_at, updated_at, version
		FROM weekly_plans WHERE week_number = $1 AND year = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	plan := &domain.WeeklyPlan{
		WeekNumber: week,
		Year:       year,
	}

	dst := []any{&plan.ID, &plan.Status, &plan.PublishedAt, &plan.CreatedAt, &plan.UpdatedAt, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, week, year).Scan(dst...); err != nil {
		return nil, err
	}

	return plan, nil
}

// UpsertPublishedWeeklyPlan 将某周的计划置为已发布。重复发布同一周会刷新发布时间，
// 由 weekly_plans 上 (week_number, year) 的唯一约束保证不会出现第二条记录
func (r *Repository) UpsertPublishedWeeklyPlan(plan *domain.WeeklyPlan) error {
	query := `
		INSERT INTO weekly_plans (week_number, year, status, published_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (week_number, year) DO UPDATE
		SET status = EXCLUDED.status, published_at = EXCLUDED.published_at, updated_at = now(), version = weekly_plans.version + 1
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{plan.WeekNumber, plan.Year, plan.Status, plan.PublishedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt, &plan.Version); err != nil {
		return err
	}

	return nil
}
