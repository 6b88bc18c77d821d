package domain

import "time"

// Publication 是一次发布动作的审计记录，只追加不修改
type Publication struct {
	ID          string    `json:"id"` // uuid
	WeekNumber  int32     `json:"weekNumber"`
	Year        int32     `json:"year"`
	PublishedBy int64     `json:"publishedBy"`
	PublishedAt time.Time `json:"publishedAt"`
	ChangesLog  []string  `json:"changesLog"`
}
