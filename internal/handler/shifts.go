package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/shopspring/decimal"
)

// GetShifts 返回排班明细，可以通过 week 和 year 查询参数过滤出某一周
func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	weekParam := r.URL.Query().Get("week")
	yearParam := r.URL.Query().Get("year")

	if weekParam == "" && yearParam == "" {
		details, err := h.repository.GetAllShiftDetails()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "获取班次列表成功", details)
		return
	}

	week, err := strconv.ParseInt(weekParam, 10, 32)
	if err != nil {
		h.errorResponse(w, r, "周数无效")
		return
	}
	year, err := strconv.ParseInt(yearParam, 10, 32)
	if err != nil {
		h.errorResponse(w, r, "年份无效")
		return
	}

	details, err := h.repository.GetShiftDetailsByWeek(int32(week), int32(year))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", details)
}

// GetPublishedShifts 是员工端的查询入口，只返回已发布周计划中的班次
func (h *Handler) GetPublishedShifts(w http.ResponseWriter, r *http.Request) {
	details, err := h.repository.GetPublishedShiftDetails()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", details)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResourceID         int64           `json:"resourceID" validate:"required"`
		TimeSlotID         int64           `json:"timeSlotID" validate:"required"`
		Date               string          `json:"date" validate:"required"`
		ExtraOvertimeHours decimal.Decimal `json:"extraOvertimeHours"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, errors.New("日期格式无效，应为 YYYY-MM-DD"))
		return
	}

	if req.ExtraOvertimeHours.IsNegative() {
		h.badRequest(w, r, errors.New("额外加班时长不能为负数"))
		return
	}

	shift, err := h.engine.CreateShift(rostering.CreateShiftInput{
		ResourceID:         req.ResourceID,
		TimeSlotID:         req.TimeSlotID,
		Date:               date,
		ExtraOvertimeHours: req.ExtraOvertimeHours,
	})
	if err != nil {
		var restErr *rostering.RestViolationError
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, rostering.ErrResourceNotFound),
			errors.Is(err, rostering.ErrTimeSlotNotFound),
			errors.Is(err, rostering.ErrDuplicateAssignment):
			h.errorResponse(w, r, err.Error())
		case errors.As(err, &restErr):
			h.errorResponse(w, r, restErr.Error())
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			// 并发创建时数据库约束兜底，对客户端表现为普通的重复排班
			case "shifts_resource_id_date_key":
				h.errorResponse(w, r, rostering.ErrDuplicateAssignment.Error())
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}
