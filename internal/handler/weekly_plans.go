package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/planshift-dev/planshift/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

func (h *Handler) GetAllWeeklyPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repository.GetAllWeeklyPlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取周计划列表成功", plans)
}

func (h *Handler) PublishWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		WeekNumber int32 `json:"weekNumber" validate:"required,gte=1,lte=53"`
		Year       int32 `json:"year" validate:"required,gte=2000"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan, publication, err := h.engine.PublishWeek(req.WeekNumber, req.Year, myInfo)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 发布后通知这一周所有被排班的资源
	details, err := h.repository.GetShiftDetailsByWeek(req.WeekNumber, req.Year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	notified := make(map[string]struct{})
	for _, detail := range details {
		if _, ok := notified[detail.ResourceEmail]; ok {
			continue
		}
		notified[detail.ResourceEmail] = struct{}{}

		mailMessage := domain.MailMessage{
			Type: "plan_published",
			To:   detail.ResourceEmail,
			Data: domain.PlanPublishedMailData{
				FullName:   detail.ResourceName,
				WeekNumber: req.WeekNumber,
				Year:       req.Year,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		if err := h.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		); err != nil {
			cancel()
			h.internalServerError(w, r, err)
			return
		}
		cancel()
	}

	h.successResponse(w, r, "周计划发布成功", map[string]any{
		"plan":        plan,
		"publication": publication,
	})
}

func (h *Handler) GetWeekPublications(w http.ResponseWriter, r *http.Request) {
	yearParam := chi.URLParam(r, "year")
	weekParam := chi.URLParam(r, "week")

	year, err := strconv.ParseInt(yearParam, 10, 32)
	if err != nil {
		h.errorResponse(w, r, "年份无效")
		return
	}
	week, err := strconv.ParseInt(weekParam, 10, 32)
	if err != nil {
		h.errorResponse(w, r, "周数无效")
		return
	}

	publications, err := h.repository.GetPublicationsByWeek(int32(week), int32(year))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取发布记录成功", publications)
}
