package rostering

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNotFound    = errors.New("资源不存在")
	ErrTimeSlotNotFound    = errors.New("时段不存在")
	ErrDuplicateAssignment = errors.New("该资源在这一天已有排班")
	ErrTimeSlotInUse       = errors.New("该时段已被排班引用，无法删除")
)

// RestViolationError 携带诊断信息：要求的休息小时数和实际的间隔
type RestViolationError struct {
	RequiredHours int32
	ActualHours   float64
}

func (e *RestViolationError) Error() string {
	return fmt.Sprintf("违反最小休息时间：班次之间需要至少 %d 小时休息（实际只有 %.1f 小时）", e.RequiredHours, e.ActualHours)
}

// SlotOverlapError 在创建或更新时段时发现与已有时段重叠
type SlotOverlapError struct {
	ConflictName string
}

func (e *SlotOverlapError) Error() string {
	return fmt.Sprintf("时段与已有时段 %q 重叠", e.ConflictName)
}
