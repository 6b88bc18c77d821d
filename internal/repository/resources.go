package repository

import (
	"context"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
)

func (r *Repository) CreateResource(resource *domain.Resource) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO resources (name, email, weekly_hour_limit, min_rest_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	args := []any{resource.Name, resource.Email, resource.WeeklyHourLimit, resource.MinRestHours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&resource.ID, &resource.IsActive, &resource.CreatedAt, &resource.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetResourceByID(id int64) (*domain.Resource, error) {
	query := `
		SELECT name, email, weekly_hour_limit, min_rest_hours, is_active, created_at, version
		FROM resources WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	resource := &domain.Resource{
		ID: id,
	}

	dst := []any{&resource.Name, &resource.Email, &resource.WeeklyHourLimit, &resource.MinRestHours, &resource.IsActive, &resource.CreatedAt, &resource.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return resource, nil
}

func (r *Repository) GetAllActiveResources() ([]*domain.Resource, error) {
	query := `
		SELECT id, name, email, weekly_hour_limit, min_rest_hours, is_active, created_at, version
		FROM resources WHERE is_active = TRUE ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		resource := &domain.Resource{}
		dst := []any{&resource.ID, &resource.Name, &resource.Email, &resource.WeeklyHourLimit, &resource.MinRestHours, &resource.IsActive, &resource.CreatedAt, &resource.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *Repository) UpdateResource(resource *domain.Resource) error {
	query := `
		UPDATE resources
		SET
			name = $1,
			email = $2,
			weekly_hour_limit = $3,
			min_rest_hours = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{resource.Name, resource.Email, resource.WeeklyHourLimit, resource.MinRestHours, resource.IsActive, resource.ID, resource.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&resource.CreatedAt, &resource.Version); err != nil {
		return err
	}

	return nil
}

// DeleteResourceCascade 在一个事务里先级联删除资源的所有班次再删除资源本身
// 返回被删除的班次数量，供调用方回报
func (r *Repository) DeleteResourceCascade(id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE resource_id = $1`, id)
	if err != nil {
		return 0, err
	}
	deletedShifts, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return deletedShifts, nil
}

func (r *Repository) CheckResourceEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM resources WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
