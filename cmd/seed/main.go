package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/planshift-dev/planshift/backend/internal/config"
	"github.com/planshift-dev/planshift/backend/internal/repository"
	"github.com/planshift-dev/planshift/backend/internal/rostering"
	"github.com/planshift-dev/planshift/backend/internal/seed"
	"github.com/planshift-dev/planshift/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机资源, 3: 插入预置时段, 4: 为资源创建员工账号, 5: 插入随机班次)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的资源数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				resource := utils.GenerateRandomResource(cfg.Email.UserDomain)
				if err := repo.CreateResource(resource); err != nil {
					slog.Error("无法插入资源", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入资源成功", slog.Int("count", n-cnt))
		}
	case 3:
		seed.SeedDefaultTimeSlots(repo)
	case 4:
		seed.SeedEmployeeUsersFromResources(repo, cfg.Seed.User.Password)
	case 5:
		if n <= 0 {
			slog.Error("请输入合法的班次数量")
			return
		}

		resources, err := repo.GetAllActiveResources()
		if err != nil {
			slog.Error("无法获取资源列表", slog.String("error", err.Error()))
			return
		}
		slots, err := repo.GetAllTimeSlots()
		if err != nil {
			slog.Error("无法获取时段列表", slog.String("error", err.Error()))
			return
		}
		if len(resources) == 0 || len(slots) == 0 {
			slog.Error("请先插入资源和时段")
			return
		}

		// 随机班次也要通过完整的排班校验，被拒绝的组合直接跳过
		engine := rostering.NewEngine(repo)
		cnt := 0
		for i := 0; i < n; i++ {
			resource := resources[rand.Intn(len(resources))]
			slot := slots[rand.Intn(len(slots))]
			date := time.Now().UTC().AddDate(0, 0, rand.Intn(14))

			if _, err := engine.CreateShift(rostering.CreateShiftInput{
				ResourceID: resource.ID,
				TimeSlotID: slot.ID,
				Date:       date,
			}); err != nil {
				slog.Info("跳过被拒绝的随机班次", slog.String("reason", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入随机班次成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
