package rostering

import (
	"github.com/planshift-dev/planshift/backend/internal/domain"
)

// CheckSlotOverlap 检查候选时段是否和已有时段重叠，重叠的写入必须被整体拒绝
// 判断把区间当作不跨午夜的分钟区间处理，首尾相接（一个的结束等于另一个的开始）不算重叠
// 对于跨午夜的时段这个判断并不完全准确，目前保持现状
func CheckSlotOverlap(candidate *domain.TimeSlot, existing []*domain.TimeSlot) error {
	candStart, err := ParseClock(candidate.StartTime)
	if err != nil {
		return err
	}
	candEnd, err := ParseClock(candidate.EndTime)
	if err != nil {
		return err
	}

	for _, slot := range existing {
		if slot.ID == candidate.ID {
			// 更新时不和自己比较
			continue
		}

		start, err := ParseClock(slot.StartTime)
		if err != nil {
			return err
		}
		end, err := ParseClock(slot.EndTime)
		if err != nil {
			return err
		}

		if !(candEnd <= start || candStart >= end) {
			return &SlotOverlapError{ConflictName: slot.Name}
		}
	}

	return nil
}
