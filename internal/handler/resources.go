package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/planshift-dev/planshift/backend/internal/domain"
)

const (
	defaultWeeklyHourLimit = 40
	defaultMinRestHours    = 12
)

func (h *Handler) GetAllResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.repository.GetAllActiveResources()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取资源列表成功", resources)
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name" validate:"required"`
		Email           string `json:"email" validate:"required,email"`
		WeeklyHourLimit int32  `json:"weeklyHourLimit" validate:"omitempty,gte=1,lte=168"`
		MinRestHours    int32  `json:"minRestHours" validate:"omitempty,gte=0,lte=24"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.WeeklyHourLimit == 0 {
		req.WeeklyHourLimit = defaultWeeklyHourLimit
	}
	if req.MinRestHours == 0 {
		req.MinRestHours = defaultMinRestHours
	}

	// 先做一次友好检查，并发场景下由唯一约束兜底
	isExists, err := h.repository.CheckResourceEmailIfExists(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if isExists {
		h.errorResponse(w, r, "邮箱已存在")
		return
	}

	resource := &domain.Resource{
		Name:            req.Name,
		Email:           req.Email,
		WeeklyHourLimit: req.WeeklyHourLimit,
		MinRestHours:    req.MinRestHours,
		IsActive:        true,
	}

	if err := h.repository.CreateResource(resource); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "resources_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建资源成功", resource)
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	resource := r.Context().Value(ResourceCtx).(*domain.Resource)
	h.successResponse(w, r, "获取资源成功", resource)
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resource := r.Context().Value(ResourceCtx).(*domain.Resource)

	var req struct {
		Name            *string `json:"name"`
		Email           *string `json:"email" validate:"omitempty,email"`
		WeeklyHourLimit *int32  `json:"weeklyHourLimit" validate:"omitempty,gte=1,lte=168"`
		MinRestHours    *int32  `json:"minRestHours" validate:"omitempty,gte=0,lte=24"`
		IsActive        *bool   `json:"isActive"`
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
		resource.Name = *req.Name
	}
	if req.Email != nil {
		resource.Email = *req.Email
	}
	if req.WeeklyHourLimit != nil {
		resource.WeeklyHourLimit = *req.WeeklyHourLimit
	}
	if req.MinRestHours != nil {
		resource.MinRestHours = *req.MinRestHours
	}
	if req.IsActive != nil {
		resource.IsActive = *req.IsActive
	}

	// 修改工时上限或休息时间只影响之后创建的班次，已有班次不会被重算
	if err := h.repository.UpdateResource(resource); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "resources_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新资源失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新资源成功", resource)
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resource := r.Context().Value(ResourceCtx).(*domain.Resource)

	deletedShifts, err := h.repository.DeleteResourceCascade(resource.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("删除资源成功，同时删除了 %d 条班次", deletedShifts), map[string]int64{
		"deletedShifts": deletedShifts,
	})
}
