package domain

import "time"

// TimeSlot 表示一个可复用的时段模板，开始和结束时间均为 HH:MM 格式
// 当结束时间小于等于开始时间时，表示这个时段跨越了午夜（例如 22:00-06:00 的夜班）
type TimeSlot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsCustom  bool      `json:"isCustom"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
