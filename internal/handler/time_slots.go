package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
)

func (h *Handler) GetAllTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.repository.GetAllTimeSlots()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时段列表成功", slots)
}

func (h *Handler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := rostering.ParseClock(req.StartTime); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := rostering.ParseClock(req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slot := &domain.TimeSlot{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsCustom:  true,
	}

	// 与已有时段重叠的自定义时段不允许创建
	existing, err := h.repository.GetAllTimeSlots()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := rostering.CheckSlotOverlap(slot, existing); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateTimeSlot(slot); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "time_slots_name_key":
				h.errorResponse(w, r, "时段名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建时段成功", slot)
}

func (h *Handler) GetTimeSlot(w http.ResponseWriter, r *http.Request) {
	slot := r.Context().Value(TimeSlotCtx).(*domain.TimeSlot)
	h.successResponse(w, r, "获取时段成功", slot)
}

func (h *Handler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	slot := r.Context().Value(TimeSlotCtx).(*domain.TimeSlot)

	var req struct {
		Name      *string `json:"name"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		slot.Name = *req.Name
	}
	if req.StartTime != nil {
		if _, err := rostering.ParseClock(*req.StartTime); err != nil {
			h.badRequest(w, r, err)
			return
		}
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if _, err := rostering.ParseClock(*req.EndTime); err != nil {
			h.badRequest(w, r, err)
			return
		}
		slot.EndTime = *req.EndTime
	}

	// 重叠检查会跳过自身，只拦截与其他时段的冲突
	existing, err := h.repository.GetAllTimeSlots()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := rostering.CheckSlotOverlap(slot, existing); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateTimeSlot(slot); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "time_slots_name_key":
				h.errorResponse(w, r, "时段名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新时段失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新时段成功", slot)
}

func (h *Handler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	slot := r.Context().Value(TimeSlotCtx).(*domain.TimeSlot)

	if err := h.repository.DeleteTimeSlot(slot.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_time_slot_id_fkey":
				h.errorResponse(w, r, rostering.ErrTimeSlotInUse.Error())
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除时段成功", nil)
}
