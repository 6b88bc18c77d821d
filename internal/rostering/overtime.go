package rostering

import (
	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// WeeklyOvertime 计算把新班次计入某一周后的总工时和应记在新班次上的加班小时数
// 自动加班是总工时超出每周上限的部分，额外加班由调用方手工申报（例如节假日加班）
// 加班只记在新插入的班次上，不会回溯重新分摊到本周已有的班次
func WeeklyOvertime(resource *domain.Resource, weekShifts []*domain.Shift, newShiftHours, extraOvertime decimal.Decimal) (overtime, totalHours decimal.Decimal) {
	totalHours = newShiftHours
	for _, s := range weekShifts {
		totalHours = totalHours.Add(s.Hours)
	}

	limit := decimal.NewFromInt32(resource.WeeklyHourLimit)

	automatic := decimal.Zero
	if totalHours.GreaterThan(limit) {
		automatic = totalHours.Sub(limit)
	}

	return automatic.Add(extraOvertime), totalHours
}
