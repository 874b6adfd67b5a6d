package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cmac277/webgen4/internal/api/middleware"
	"github.com/cmac277/webgen4/internal/model"
	"github.com/cmac277/webgen4/internal/model/dto"
	"github.com/cmac277/webgen4/internal/pkg/response"
	"github.com/cmac277/webgen4/internal/service"
)

type EngagementHandler struct {
	engagementService *service.EngagementService
}

func NewEngagementHandler(engagementService *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

// Like 点赞（再次点赞取消，点踩状态下切换为点赞）
// POST /api/v1/videos/:id/like
func (h *EngagementHandler) Like(c *gin.Context) {
	h.applyReaction(c, model.ReactionLike)
}

// Dislike 点踩（再次点踩取消，点赞状态下切换为点踩）
// POST /api/v1/videos/:id/dislike
func (h *EngagementHandler) Dislike(c *gin.Context) {
	h.applyReaction(c, model.ReactionDislike)
}

func (h *EngagementHandler) applyReaction(c *gin.Context, kind string) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的视频ID")
		return
	}

	resp, err := h.engagementService.ApplyReaction(userID, videoID, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidReactionKind):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// RecordView 记录一次浏览
// POST /api/v1/videos/:id/view
func (h *EngagementHandler) RecordView(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的视频ID")
		return
	}

	resp, err := h.engagementService.RecordView(videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFoundError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// GetEngagement 获取视频互动计数
// GET /api/v1/videos/:id/engagement
func (h *EngagementHandler) GetEngagement(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的视频ID")
		return
	}

	snap, err := h.engagementService.GetEngagement(videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFoundError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, snap)
}

// ListMyReactions 获取当前用户点赞/点踩过的视频列表
// GET /api/v1/users/me/reactions?kind=like&page=1&page_size=20
func (h *EngagementHandler) ListMyReactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	kind := c.DefaultQuery("kind", model.ReactionLike)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.engagementService.ListUserReactions(userID, kind, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReactionKind) {
			response.ParamError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// GetViewerReaction 获取当前用户对视频的反应状态
// GET /api/v1/videos/:id/reaction
func (h *EngagementHandler) GetViewerReaction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的视频ID")
		return
	}

	reaction, err := h.engagementService.GetViewerReaction(userID, videoID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.ViewerReactionResponse{Reaction: reaction})
}
