package rostering

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Storage 是排班引擎依赖的存储接口，由 repository 实现
// 查询不到记录时应返回 sql.ErrNoRows
// InsertShift 的实现必须在持久层强制 (resource_id, date) 的唯一约束，
// 这样并发创建时先通过检查的请求也只会退化为被拒绝的重复排班，而不会写坏数据
type Storage interface {
	GetResourceByID(id int64) (*domain.Resource, error)
	GetTimeSlotByID(id int64) (*domain.TimeSlot, error)
	GetShiftByResourceAndDate(resourceID int64, date time.Time) (*domain.Shift, error)
	GetShiftDetailsByResourceBetween(resourceID int64, from, to time.Time) ([]*domain.ShiftDetail, error)
	GetShiftsByResourceAndWeek(resourceID int64, week, year int32) ([]*domain.Shift, error)
	InsertShift(shift *domain.Shift) error
	UpsertPublishedWeeklyPlan(plan *domain.WeeklyPlan) error
	InsertPublication(pub *domain.Publication) error
}

type Engine struct {
	store Storage
}

func NewEngine(store Storage) *Engine {
	return &Engine{store: store}
}

type CreateShiftInput struct {
	ResourceID         int64
	TimeSlotID         int64
	Date               time.Time
	ExtraOvertimeHours decimal.Decimal
}

// CreateShift 执行完整的排班校验并持久化一条新班次
// 任何一步校验失败都会在写入前返回，不存在部分写入
func (e *Engine) CreateShift(in CreateShiftInput) (*domain.Shift, error) {
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, time.UTC)

	// 资源必须存在
	resource, err := e.store.GetResourceByID(in.ResourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	// 时段必须存在
	slot, err := e.store.GetTimeSlotByID(in.TimeSlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}

	// 同一资源同一天最多一个班次
	if _, err := e.store.GetShiftByResourceAndDate(in.ResourceID, date); err == nil {
		return nil, ErrDuplicateAssignment
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// 最小休息时间校验，窗口为前后两天
	window, err := e.store.GetShiftDetailsByResourceBetween(
		in.ResourceID,
		date.AddDate(0, 0, -RestWindowDays),
		date.AddDate(0, 0, RestWindowDays),
	)
	if err != nil {
		return nil, err
	}
	if err := CheckRestPeriod(date, slot, resource, window); err != nil {
		return nil, err
	}

	// 计算班次时长
	hours, err := ShiftHours(slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}

	// 计算周工时和应记在这个班次上的加班
	week, year := WeekOf(date)
	weekShifts, err := e.store.GetShiftsByResourceAndWeek(in.ResourceID, week, year)
	if err != nil {
		return nil, err
	}
	overtime, _ := WeeklyOvertime(resource, weekShifts, hours, in.ExtraOvertimeHours)

	shift := &domain.Shift{
		ResourceID:         in.ResourceID,
		TimeSlotID:         in.TimeSlotID,
		Date:               date,
		WeekNumber:         week,
		Year:               year,
		Hours:              hours,
		OvertimeHours:      overtime,
		ExtraOvertimeHours: in.ExtraOvertimeHours,
	}

	if err := e.store.InsertShift(shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// PublishWeek 把 (week, year) 的周计划置为已发布并追加一条发布审计记录
// 重复发布不报错，只会刷新发布时间并再追加一条审计记录
func (e *Engine) PublishWeek(week, year int32, publisher *domain.User) (*domain.WeeklyPlan, *domain.Publication, error) {
	now := time.Now().UTC()

	plan := &domain.WeeklyPlan{
		WeekNumber:  week,
		Year:        year,
		Status:      domain.PlanStatusPublished,
		PublishedAt: &now,
	}
	if err := e.store.UpsertPublishedWeeklyPlan(plan); err != nil {
		return nil, nil, err
	}

	pub := &domain.Publication{
		ID:          uuid.NewString(),
		WeekNumber:  week,
		Year:        year,
		PublishedBy: publisher.ID,
		PublishedAt: now,
		ChangesLog:  []string{fmt.Sprintf("周计划由 %s 发布", publisher.FullName)},
	}
	if err := e.store.InsertPublication(pub); err != nil {
		return nil, nil, err
	}

	return plan, pub, nil
}
