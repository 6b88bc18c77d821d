package rostering

import (
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
)

// RestWindowDays 是休息时间校验的查询窗口（前后各两天）
// 一个班次最长约 24 小时，加上最小休息时间也不会和两天以外的班次产生冲突
const RestWindowDays = 2

// shiftInstants 把日期和时段的起止时刻组合成绝对时间点，跨午夜的班次延伸到次日
func shiftInstants(date time.Time, startClock, endClock string) (time.Time, time.Time, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if end <= start {
		end += minutesPerDay
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(start) * time.Minute), midnight.Add(time.Duration(end) * time.Minute), nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CheckRestPeriod 校验候选班次和窗口内已有班次之间是否满足资源的最小休息时间
// 窗口内与候选同一天的班次会被跳过，同日冲突由更早的重复排班检查负责
// 返回第一个发现的违规，没有违规时返回 nil
func CheckRestPeriod(date time.Time, slot *domain.TimeSlot, resource *domain.Resource, window []*domain.ShiftDetail) error {
	candStart, candEnd, err := shiftInstants(date, slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}

	for _, existing := range window {
		if sameDate(existing.Date, date) {
			continue
		}

		exStart, exEnd, err := shiftInstants(existing.Date, existing.SlotStartTime, existing.SlotEndTime)
		if err != nil {
			return err
		}

		// 两个方向的间隔都取绝对值，较小者才是真正的休息时间
		gap1 := candStart.Sub(exEnd).Hours()
		if gap1 < 0 {
			gap1 = -gap1
		}
		gap2 := exStart.Sub(candEnd).Hours()
		if gap2 < 0 {
			gap2 = -gap2
		}
		gap := min(gap1, gap2)

		// 间隔恰好为 0 表示两个班次完全首尾相接，按现有规则不算违规
		if 0 < gap && gap < float64(resource.MinRestHours) {
			return &RestViolationError{
				RequiredHours: resource.MinRestHours,
				ActualHours:   gap,
			}
		}
	}

	return nil
}
