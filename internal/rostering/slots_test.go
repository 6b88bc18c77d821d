package rostering_test

import (
	"testing"

	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingSlots() []*domain.TimeSlot {
	return []*domain.TimeSlot{
		{ID: 1, Name: "早班", StartTime: "06:00", EndTime: "14:00"},
		{ID: 2, Name: "午班", StartTime: "14:00", EndTime: "22:00"},
	}
}

func TestCheckSlotOverlap_StrictOverlapRejected(t *testing.T) {
	candidate := &domain.TimeSlot{Name: "上午班", StartTime: "08:00", EndTime: "16:00"}

	err := rostering.CheckSlotOverlap(candidate, existingSlots())

	require.Error(t, err)
	var overlap *rostering.SlotOverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, "早班", overlap.ConflictName)
}

func TestCheckSlotOverlap_AdjacentAllowed(t *testing.T) {
	// 首尾相接不算重叠
	candidate := &domain.TimeSlot{Name: "晚班", StartTime: "22:00", EndTime: "23:59"}

	err := rostering.CheckSlotOverlap(candidate, existingSlots())

	assert.NoError(t, err)
}

func TestCheckSlotOverlap_ContainedRejected(t *testing.T) {
	candidate := &domain.TimeSlot{Name: "小午班", StartTime: "15:00", EndTime: "18:00"}

	err := rostering.CheckSlotOverlap(candidate, existingSlots())

	var overlap *rostering.SlotOverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, "午班", overlap.ConflictName)
}

func TestCheckSlotOverlap_UpdateSkipsSelf(t *testing.T) {
	// 更新时段时不和自己比较，否则永远无法更新
	candidate := &domain.TimeSlot{ID: 1, Name: "早班", StartTime: "06:30", EndTime: "13:30"}

	err := rostering.CheckSlotOverlap(candidate, existingSlots())

	assert.NoError(t, err)
}
