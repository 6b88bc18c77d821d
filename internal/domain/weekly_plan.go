package domain

import "time"

type PlanStatus string

// 周计划只有两个状态，且只允许从草稿变为已发布，不存在撤回发布的转换
const (
	PlanStatusDraft     PlanStatus = "草稿"
	PlanStatusPublished PlanStatus = "已发布"
)

type WeeklyPlan struct {
	ID          int64      `json:"id"`
	WeekNumber  int32      `json:"weekNumber"`
	Year        int32      `json:"year"`
	Status      PlanStatus `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int32      `json:"-"`
}

func (p *WeeklyPlan) IsPublished() bool {
	return p.Status == PlanStatusPublished
}
