package seed

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/planshift-dev/planshift/backend/internal/domain"
	"github.com/planshift-dev/planshift/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// 系统预置的五个时段，其中夜班跨越午夜
var DefaultTimeSlots = []domain.TimeSlot{
	{Name: "清晨班", StartTime: "06:00", EndTime: "14:00"},
	{Name: "早班", StartTime: "08:00", EndTime: "16:00"},
	{Name: "午后班", StartTime: "14:00", EndTime: "22:00"},
	{Name: "晚班", StartTime: "16:00", EndTime: "23:59"},
	{Name: "夜班", StartTime: "22:00", EndTime: "06:00"},
}

// SeedDefaultTimeSlots 在时段表为空时插入预置时段，重复执行不会产生重复记录
func SeedDefaultTimeSlots(r *repository.Repository) {
	existing, err := r.GetAllTimeSlots()
	if err != nil {
		slog.Error("无法获取时段列表", "error", err)
		return
	}

	if len(existing) > 0 {
		slog.Info("时段表不为空，跳过预置时段", slog.Int("count", len(existing)))
		return
	}

	cnt := 0
	for _, slot := range DefaultTimeSlots {
		s := slot
		if err := r.CreateTimeSlot(&s); err != nil {
			slog.Error("无法插入预置时段", slog.String("name", s.Name), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("插入预置时段成功", slog.Int("count", cnt))
}

// SeedEmployeeUsersFromResources 为每个还没有账号的在职资源创建员工账号，
// 用户名取邮箱 @ 前的部分
func SeedEmployeeUsersFromResources(r *repository.Repository, password string) {
	resources, err := r.GetAllActiveResources()
	if err != nil {
		slog.Error("无法获取资源列表", "error", err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("无法生成密码哈希", "error", err)
		return
	}

	cnt := 0
	for _, resource := range resources {
		username := strings.SplitN(resource.Email, "@", 2)[0]

		if _, err := r.GetUserByUsername(username); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("无法查询用户", slog.String("username", username), slog.String("error", err.Error()))
			continue
		}

		user := &domain.User{
			Username:     username,
			PasswordHash: string(passwordHash),
			FullName:     resource.Name,
			Email:        resource.Email,
			Role:         domain.RoleEmployee,
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("无法插入员工账号", slog.String("username", username), slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("插入员工账号成功", slog.Int("count", cnt))
}
