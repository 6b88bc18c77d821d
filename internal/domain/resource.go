package domain

import "time"

// Resource 表示一个可以被排班的员工
type Resource struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	WeeklyHourLimit int32     `json:"weeklyHourLimit"` // 每周工时上限，超出部分自动计为加班
	MinRestHours    int32     `json:"minRestHours"`    // 两个班次之间的最小休息小时数
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}
