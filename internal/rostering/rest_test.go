package rostering_test

import (
	"testing"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResource() *domain.Resource {
	return &domain.Resource{
		ID:              1,
		Name:            "张伟",
		Email:           "zhangwei@planshift.dev",
		WeeklyHourLimit: 40,
		MinRestHours:    12,
		IsActive:        true,
	}
}

func windowShift(date time.Time, start, end string) *domain.ShiftDetail {
	return &domain.ShiftDetail{
		Shift:         domain.Shift{ResourceID: 1, Date: date},
		SlotStartTime: start,
		SlotEndTime:   end,
	}
}

func TestCheckRestPeriod_GapTooSmall(t *testing.T) {
	// 前一天 14:00-22:00，候选次日 06:00 开始，间隔只有 8 小时
	dayN := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	window := []*domain.ShiftDetail{windowShift(dayN, "14:00", "22:00")}

	slot := &domain.TimeSlot{Name: "早班", StartTime: "06:00", EndTime: "14:00"}
	err := rostering.CheckRestPeriod(dayN.AddDate(0, 0, 1), slot, testResource(), window)

	require.Error(t, err)
	var violation *rostering.RestViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, int32(12), violation.RequiredHours)
	assert.InDelta(t, 8.0, violation.ActualHours, 0.01)
}

func TestCheckRestPeriod_GapExactlyAtLimit(t *testing.T) {
	// 间隔恰好等于最小休息时间时允许排班，校验条件是严格小于
	dayN := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	window := []*domain.ShiftDetail{windowShift(dayN, "14:00", "22:00")}

	slot := &domain.TimeSlot{Name: "午班", StartTime: "10:00", EndTime: "18:00"}
	err := rostering.CheckRestPeriod(dayN.AddDate(0, 0, 1), slot, testResource(), window)

	assert.NoError(t, err)
}

func TestCheckRestPeriod_ZeroGapAdjacency(t *testing.T) {
	// 完全首尾相接（间隔为 0）按现有规则不算违规
	dayN := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	window := []*domain.ShiftDetail{windowShift(dayN, "16:00", "00:00")} // 跨午夜，次日 00:00 结束

	slot := &domain.TimeSlot{Name: "凌晨班", StartTime: "00:00", EndTime: "08:00"}
	err := rostering.CheckRestPeriod(dayN.AddDate(0, 0, 1), slot, testResource(), window)

	assert.NoError(t, err)
}

func TestCheckRestPeriod_OvernightCandidate(t *testing.T) {
	// 候选是 22:00-06:00 的夜班，结束时间延伸到次日，与次日白班间隔不足
	dayN := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	window := []*domain.ShiftDetail{windowShift(dayN.AddDate(0, 0, 1), "10:00", "18:00")}

	slot := &domain.TimeSlot{Name: "夜班", StartTime: "22:00", EndTime: "06:00"}
	err := rostering.CheckRestPeriod(dayN, slot, testResource(), window)

	require.Error(t, err)
	var violation *rostering.RestViolationError
	require.ErrorAs(t, err, &violation)
	assert.InDelta(t, 4.0, violation.ActualHours, 0.01)
}

func TestCheckRestPeriod_SameDateShiftSkipped(t *testing.T) {
	// 与候选同一天的班次由重复排班检查负责，这里跳过
	dayN := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	window := []*domain.ShiftDetail{windowShift(dayN, "06:00", "14:00")}

	slot := &domain.TimeSlot{Name: "午班", StartTime: "15:00", EndTime: "23:00"}
	err := rostering.CheckRestPeriod(dayN, slot, testResource(), window)

	assert.NoError(t, err)
}

func TestCheckRestPeriod_EmptyWindow(t *testing.T) {
	slot := &domain.TimeSlot{Name: "早班", StartTime: "06:00", EndTime: "14:00"}
	err := rostering.CheckRestPeriod(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), slot, testResource(), nil)

	assert.NoError(t, err)
}
