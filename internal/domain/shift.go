package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift 表示某个资源在某一天被分配到某个时段
// weekNumber 和 year 由日期按 ISO-8601 周历推导，不由客户端提供
type Shift struct {
	ID                 int64           `json:"id"`
	ResourceID         int64           `json:"resourceID"`
	TimeSlotID         int64           `json:"timeSlotID"`
	Date               time.Time       `json:"date"`
	WeekNumber         int32           `json:"weekNumber"`
	Year               int32           `json:"year"`
	Hours              decimal.Decimal `json:"hours"`
	OvertimeHours      decimal.Decimal `json:"overtimeHours"`
	ExtraOvertimeHours decimal.Decimal `json:"extraOvertimeHours"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ShiftDetail 是列表查询用的预连接投影，避免逐条回查资源和时段
type ShiftDetail struct {
	Shift
	ResourceName  string `json:"resourceName"`
	ResourceEmail string `json:"resourceEmail"`
	SlotName      string `json:"slotName"`
	SlotStartTime string `json:"slotStartTime"`
	SlotEndTime   string `json:"slotEndTime"`
}
