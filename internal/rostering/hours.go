package rostering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// ParseClock 将 HH:MM 格式的时刻解析为当天的分钟数
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("时刻 %q 格式错误，应为 HH:MM", clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("时刻 %q 格式错误，应为 HH:MM", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("时刻 %q 格式错误，应为 HH:MM", clock)
	}

	return hour*60 + minute, nil
}

// ShiftHours 计算一个时段的时长（小时，保留分数部分）
// 当结束时刻小于等于开始时刻时视为跨越午夜，给结束时刻加上 24 小时
func ShiftHours(startTime, endTime string) (decimal.Decimal, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return decimal.Zero, err
	}

	if end <= start {
		end += minutesPerDay
	}

	return decimal.NewFromInt(int64(end - start)).Div(sixty), nil
}

// WeekOf 返回日期所在的 ISO-8601 周数和周年份
// 注意周年份在年初年末可能和日历年份不同，例如 2024-12-31 属于 2025 年第 1 周
func WeekOf(date time.Time) (week int32, year int32) {
	y, w := date.ISOWeek()
	return int32(w), int32(y)
}
