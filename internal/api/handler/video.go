package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cmac277/webgen4/internal/api/middleware"
	"github.com/cmac277/webgen4/internal/model/dto"
	"github.com/cmac277/webgen4/internal/pkg/response"
	"github.com/cmac277/webgen4/internal/service"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
	}
}

// Create 创建视频
// POST /api/v1/videos
func (h *VideoHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.videoService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "视频创建成功", resp)
}

// List 获取视频列表
// GET /api/v1/videos
func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")
	category := c.Query("category")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.videoService.List(page, pageSize, search, category)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 获取视频详情（并记录一次浏览）
// GET /api/v1/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的视频ID")
		return
	}

	// 获取用户ID（可选）
	var userID *int64
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	detail, err := h.videoService.Get(videoID, userID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFoundError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}
