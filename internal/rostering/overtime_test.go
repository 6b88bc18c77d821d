package rostering_test

import (
	"testing"

	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func weekShifts(hours ...string) []*domain.Shift {
	shifts := make([]*domain.Shift, 0, len(hours))
	for _, h := range hours {
		shifts = append(shifts, &domain.Shift{Hours: decimal.RequireFromString(h)})
	}
	return shifts
}

func TestWeeklyOvertime_UnderLimit(t *testing.T) {
	resource := testResource() // 周上限 40 小时

	overtime, total := rostering.WeeklyOvertime(resource, weekShifts("8", "8"), decimal.NewFromInt(8), decimal.Zero)

	assert.True(t, total.Equal(decimal.NewFromInt(24)), "总工时应为 24，实际 %s", total)
	assert.True(t, overtime.IsZero(), "未超上限不应产生加班，实际 %s", overtime)
}

func TestWeeklyOvertime_AutomaticAndExtra(t *testing.T) {
	// 已有 38 小时，新班次 6 小时，自动加班 4 小时，手工申报 1 小时
	resource := testResource()

	overtime, total := rostering.WeeklyOvertime(resource, weekShifts("8", "8", "8", "8", "6"), decimal.NewFromInt(6), decimal.NewFromInt(1))

	assert.True(t, total.Equal(decimal.NewFromInt(44)), "总工时应为 44，实际 %s", total)
	assert.True(t, overtime.Equal(decimal.NewFromInt(5)), "加班应为 4+1=5，实际 %s", overtime)
}

func TestWeeklyOvertime_ExactlyAtLimit(t *testing.T) {
	resource := testResource()

	overtime, total := rostering.WeeklyOvertime(resource, weekShifts("8", "8", "8", "8"), decimal.NewFromInt(8), decimal.Zero)

	assert.True(t, total.Equal(decimal.NewFromInt(40)))
	assert.True(t, overtime.IsZero(), "恰好达到上限不算加班，实际 %s", overtime)
}

func TestWeeklyOvertime_FractionalHours(t *testing.T) {
	resource := testResource()

	newHours := decimal.RequireFromString("7.5")
	overtime, total := rostering.WeeklyOvertime(resource, weekShifts("8", "8", "8", "8", "6.5"), newHours, decimal.Zero)

	assert.True(t, total.Equal(decimal.NewFromInt(46)), "总工时应为 46，实际 %s", total)
	assert.True(t, overtime.Equal(decimal.NewFromInt(6)), "加班应为 6，实际 %s", overtime)
}
