package model

// Student 报名主体 — 对应 students 表
// 邮箱即主键，首次报名任意活动时隐式创建，退出活动不删除
type Student struct {
	Email string `gorm:"type:varchar(255);primaryKey" json:"email"`
	BaseModel

	Memberships []ActivityMembership `gorm:"foreignKey:StudentEmail;references:Email;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
