package rostering_test

import (
	"testing"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftHours(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"普通白班", "09:00", "17:00", "8"},
		{"跨午夜的夜班", "22:00", "06:00", "8"},
		{"不足一小时", "23:30", "00:15", "0.75"},
		{"结束等于开始视为整天", "08:00", "08:00", "24"},
		{"分钟精度", "13:30", "16:10", "2.6666666666666667"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hours, err := rostering.ShiftHours(tc.start, tc.end)
			require.NoError(t, err)
			assert.True(t, hours.Equal(decimal.RequireFromString(tc.want)), "期望 %s，实际 %s", tc.want, hours)
		})
	}
}

func TestShiftHours_AlwaysPositive(t *testing.T) {
	for startHour := 0; startHour < 24; startHour += 3 {
		for endHour := 0; endHour < 24; endHour += 3 {
			start := time.Date(2025, 1, 1, startHour, 0, 0, 0, time.UTC).Format("15:04")
			end := time.Date(2025, 1, 1, endHour, 30, 0, 0, time.UTC).Format("15:04")

			hours, err := rostering.ShiftHours(start, end)
			require.NoError(t, err)
			assert.True(t, hours.GreaterThan(decimal.Zero), "%s-%s 的时长应为正数，实际 %s", start, end, hours)
		}
	}
}

func TestShiftHours_MalformedClock(t *testing.T) {
	for _, clock := range []string{"9", "25:00", "08:60", "ab:cd", "08:00:00", ""} {
		_, err := rostering.ShiftHours(clock, "17:00")
		assert.Error(t, err, "时刻 %q 应当解析失败", clock)
	}
}

func TestWeekOf_ISOYearBoundaries(t *testing.T) {
	cases := []struct {
		date     time.Time
		wantWeek int32
		wantYear int32
	}{
		// 2024-12-31 落在 2025 年第 1 周
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 1, 2025},
		// 2023-01-01 是周日，落在 2022 年第 52 周
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 52, 2022},
		{time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), 25, 2025},
	}

	for _, tc := range cases {
		week, year := rostering.WeekOf(tc.date)
		assert.Equal(t, tc.wantWeek, week, "日期 %s", tc.date.Format("2006-01-02"))
		assert.Equal(t, tc.wantYear, year, "日期 %s", tc.date.Format("2006-01-02"))
	}
}
