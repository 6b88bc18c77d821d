package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

type weeklyReportRow struct {
	ResourceID      int64           `json:"resourceID"`
	ResourceName    string          `json:"resourceName"`
	ShiftCount      int             `json:"shiftCount"`
	TotalHours      decimal.Decimal `json:"totalHours"`
	OvertimeHours   decimal.Decimal `json:"overtimeHours"`
	WeeklyHourLimit int32           `json:"weeklyHourLimit"`
	Utilization     decimal.Decimal `json:"utilization"` // 总工时占每周上限的比例
}

type weeklyReport struct {
	WeekNumber    int32              `json:"weekNumber"`
	Year          int32              `json:"year"`
	TotalHours    decimal.Decimal    `json:"totalHours"`
	OvertimeHours decimal.Decimal    `json:"overtimeHours"`
	Rows          []*weeklyReportRow `json:"rows"`
}

// GetWeeklyReport 汇总某一周每个资源的工时、加班和利用率
func (h *Handler) GetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.ParseInt(r.URL.Query().Get("week"), 10, 32)
	if err != nil {
		h.errorResponse(w, r, "周数无效")
		return
	}
	year, err := strconv.ParseInt(r.URL.Query().Get("year"), 10, 32)
	if err != nil {
		h.errorResponse(w, r, "年份无效")
		return
	}

	details, err := h.repository.GetShiftDetailsByWeek(int32(week), int32(year))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	resources, err := h.repository.GetAllActiveResources()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	limits := make(map[int64]int32, len(resources))
	for _, resource := range resources {
		limits[resource.ID] = resource.WeeklyHourLimit
	}

	report := &weeklyReport{
		WeekNumber: int32(week),
		Year:       int32(year),
		Rows:       make([]*weeklyReportRow, 0),
	}

	rowsByResource := make(map[int64]*weeklyReportRow)
	for _, detail := range details {
		row, ok := rowsByResource[detail.ResourceID]
		if !ok {
			row = &weeklyReportRow{
				ResourceID:      detail.ResourceID,
				ResourceName:    detail.ResourceName,
				WeeklyHourLimit: limits[detail.ResourceID],
			}
			rowsByResource[detail.ResourceID] = row
			report.Rows = append(report.Rows, row)
		}

		row.ShiftCount++
		row.TotalHours = row.TotalHours.Add(detail.Hours)
		row.OvertimeHours = row.OvertimeHours.Add(detail.OvertimeHours)
		report.TotalHours = report.TotalHours.Add(detail.Hours)
		report.OvertimeHours = report.OvertimeHours.Add(detail.OvertimeHours)
	}

	for _, row := range report.Rows {
		// 已停用的资源不在上限表里，利用率记为 0
		if row.WeeklyHourLimit > 0 {
			row.Utilization = row.TotalHours.Div(decimal.NewFromInt32(row.WeeklyHourLimit)).Round(4)
		}
	}

	h.successResponse(w, r, "获取周报表成功", report)
}
