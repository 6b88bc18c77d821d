package rostering_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 是内存版的 Storage，只用于测试引擎的编排逻辑
type fakeStore struct {
	resources map[int64]*domain.Resource
	slots     map[int64]*domain.TimeSlot
	shifts    []*domain.Shift
	plans     map[string]*domain.WeeklyPlan
	pubs      []*domain.Publication
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resources: make(map[int64]*domain.Resource),
		slots:     make(map[int64]*domain.TimeSlot),
		plans:     make(map[string]*domain.WeeklyPlan),
		nextID:    1,
	}
}

func (s *fakeStore) GetResourceByID(id int64) (*domain.Resource, error) {
	resource, ok := s.resources[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return resource, nil
}

func (s *fakeStore) GetTimeSlotByID(id int64) (*domain.TimeSlot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return slot, nil
}

func (s *fakeStore) GetShiftByResourceAndDate(resourceID int64, date time.Time) (*domain.Shift, error) {
	for _, shift := range s.shifts {
		if shift.ResourceID == resourceID && shift.Date.Equal(date) {
			return shift, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) GetShiftDetailsByResourceBetween(resourceID int64, from, to time.Time) ([]*domain.ShiftDetail, error) {
	details := make([]*domain.ShiftDetail, 0)
	for _, shift := range s.shifts {
		if shift.ResourceID != resourceID || shift.Date.Before(from) || shift.Date.After(to) {
			continue
		}
		slot := s.slots[shift.TimeSlotID]
		details = append(details, &domain.ShiftDetail{
			Shift:         *shift,
			SlotName:      slot.Name,
			SlotStartTime: slot.StartTime,
			SlotEndTime:   slot.EndTime,
		})
	}
	return details, nil
}

func (s *fakeStore) GetShiftsByResourceAndWeek(resourceID int64, week, year int32) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	for _, shift := range s.shifts {
		if shift.ResourceID == resourceID && shift.WeekNumber == week && shift.Year == year {
			shifts = append(shifts, shift)
		}
	}
	return shifts, nil
}

func (s *fakeStore) InsertShift(shift *domain.Shift) error {
	shift.ID = s.nextID
	s.nextID++
	shift.CreatedAt = time.Now()
	s.shifts = append(s.shifts, shift)
	return nil
}

func (s *fakeStore) UpsertPublishedWeeklyPlan(plan *domain.WeeklyPlan) error {
	key := fmt.Sprintf("%d-%d", plan.Year, plan.WeekNumber)
	if existing, ok := s.plans[key]; ok {
		existing.Status = plan.Status
		existing.PublishedAt = plan.PublishedAt
		existing.UpdatedAt = time.Now()
		*plan = *existing
		return nil
	}
	plan.ID = s.nextID
	s.nextID++
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	s.plans[key] = plan
	return nil
}

func (s *fakeStore) InsertPublication(pub *domain.Publication) error {
	s.pubs = append(s.pubs, pub)
	return nil
}

func newTestEngine() (*rostering.Engine, *fakeStore) {
	store := newFakeStore()
	store.resources[1] = testResource()
	store.slots[1] = &domain.TimeSlot{ID: 1, Name: "早班", StartTime: "06:00", EndTime: "14:00"}
	store.slots[2] = &domain.TimeSlot{ID: 2, Name: "夜班", StartTime: "22:00", EndTime: "06:00"}
	return rostering.NewEngine(store), store
}

func TestEngine_CreateShift_Success(t *testing.T) {
	engine, store := newTestEngine()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	shift, err := engine.CreateShift(rostering.CreateShiftInput{
		ResourceID:         1,
		TimeSlotID:         1,
		Date:               date,
		ExtraOvertimeHours: decimal.Zero,
	})

	require.NoError(t, err)
	assert.True(t, shift.Hours.Equal(decimal.NewFromInt(8)), "早班时长应为 8 小时，实际 %s", shift.Hours)
	assert.True(t, shift.OvertimeHours.IsZero())
	assert.Equal(t, int32(11), shift.WeekNumber, "周数应由日期推导")
	assert.Equal(t, int32(2025), shift.Year)
	assert.Len(t, store.shifts, 1)
}

func TestEngine_CreateShift_ResourceNotFound(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := engine.CreateShift(rostering.CreateShiftInput{
		ResourceID: 99,
		TimeSlotID: 1,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, rostering.ErrResourceNotFound)
}

func TestEngine_CreateShift_TimeSlotNotFound(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := engine.CreateShift(rostering.CreateShiftInput{
		ResourceID: 1,
		TimeSlotID: 99,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, rostering.ErrTimeSlotNotFound)
}

func TestEngine_CreateShift_DuplicateDateRejected(t *testing.T) {
	engine, store := newTestEngine()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := engine.CreateShift(rostering.CreateShiftInput{ResourceID: 1, TimeSlotID: 1, Date: date})
	require.NoError(t, err)

	// 同一天再排一次必须被拒绝，不管用哪个时段
	_, err = engine.CreateShift(rostering.CreateShiftInput{ResourceID: 1, TimeSlotID: 2, Date: date})

	assert.ErrorIs(t, err, rostering.ErrDuplicateAssignment)
	assert.Len(t, store.shifts, 1, "被拒绝的请求不应产生任何写入")
}

func TestEngine_CreateShift_RestViolationRejected(t *testing.T) {
	engine, store := newTestEngine()

	// 第一天排夜班（22:00-06:00，结束于次日 06:00）
	dayN := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := engine.CreateShift(rostering.CreateShiftInput{ResourceID: 1, TimeSlotID: 2, Date: dayN})
	require.NoError(t, err)

	// 次日的早班 06:00 开始，间隔为 0，按现有规则允许
	_, err = engine.CreateShift(rostering.CreateShiftInput{ResourceID: 1, TimeSlotID: 1, Date: dayN.AddDate(0, 0, 1)})
	require.NoError(t, err)

	// 第三天换一个资源相同的早班则没有任何冲突
	store.resources[2] = &domain.Resource{ID: 2, Name: "李娜", Email: "lina@planshift.dev", WeeklyHourLimit: 40, MinRestHours: 12, IsActive: true}
	_, err = engine.CreateShift(rostering.CreateShiftInput{ResourceID: 2, TimeSlotID: 1, Date: dayN})
	require.NoError(t, err)

	// 夜班次日 10:00 的班次间隔只有 4 小时，必须被拒绝
	store.slots[3] = &domain.TimeSlot{ID: 3, Name: "午班", StartTime: "10:00", EndTime: "18:00"}
	_, err = engine.CreateShift(rostering.CreateShiftInput{ResourceID: 2, TimeSlotID: 2, Date: dayN.AddDate(0, 0, 2)})
	require.NoError(t, err)
	_, err = engine.CreateShift(rostering.CreateShiftInput{ResourceID: 2, TimeSlotID: 3, Date: dayN.AddDate(0, 0, 3)})

	var violation *rostering.RestViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, int32(12), violation.RequiredHours)
	assert.InDelta(t, 4.0, violation.ActualHours, 0.01)
}

func TestEngine_CreateShift_OvertimeAccumulatesAcrossWeek(t *testing.T) {
	engine, store := newTestEngine()

	// 降低休息限制，便于连续排班
	store.resources[1].MinRestHours = 0
	store.resources[1].WeeklyHourLimit = 38

	// 2025 年第 11 周：3 月 10 日（周一）起连续排班
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, err := engine.CreateShift(rostering.CreateShiftInput{ResourceID: 1, TimeSlotID: 1, Date: monday.AddDate(0, 0, i)})
		require.NoError(t, err)
	}

	// 第 5 个 8 小时班次使周工时达到 40，超出 38 的部分记为自动加班
	shift, err := engine.CreateShift(rostering.CreateShiftInput{
		ResourceID:         1,
		TimeSlotID:         1,
		Date:               monday.AddDate(0, 0, 4),
		ExtraOvertimeHours: decimal.NewFromInt(1),
	})

	require.NoError(t, err)
	assert.True(t, shift.OvertimeHours.Equal(decimal.NewFromInt(3)), "加班应为自动 2 + 额外 1，实际 %s", shift.OvertimeHours)
	assert.True(t, shift.ExtraOvertimeHours.Equal(decimal.NewFromInt(1)))
}

func TestEngine_PublishWeek_IdempotentWithAuditTrail(t *testing.T) {
	engine, store := newTestEngine()
	admin := &domain.User{ID: 7, FullName: "系统管理员", Role: domain.RoleAdmin}

	plan1, pub1, err := engine.PublishWeek(11, 2025, admin)
	require.NoError(t, err)
	require.NotNil(t, plan1.PublishedAt)
	assert.Equal(t, domain.PlanStatusPublished, plan1.Status)
	assert.Equal(t, int64(7), pub1.PublishedBy)
	assert.NotEmpty(t, pub1.ID)

	firstPublishedAt := *plan1.PublishedAt

	// 重复发布不报错：刷新发布时间并追加第二条审计记录
	time.Sleep(10 * time.Millisecond)
	plan2, pub2, err := engine.PublishWeek(11, 2025, admin)
	require.NoError(t, err)

	assert.Equal(t, plan1.ID, plan2.ID, "同一 (week, year) 只有一行周计划")
	assert.True(t, plan2.PublishedAt.After(firstPublishedAt), "重复发布应刷新发布时间")
	assert.Len(t, store.pubs, 2, "每次发布都追加一条审计记录")
	assert.NotEqual(t, pub1.ID, pub2.ID)
}
