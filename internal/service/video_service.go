package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cmac277/webgen4/config"
	"github.com/cmac277/webgen4/internal/model"
	"github.com/cmac277/webgen4/internal/model/dto"
	"github.com/cmac277/webgen4/internal/repository"
)

type VideoService struct {
	videoRepo         *repository.VideoRepository
	engagementService *EngagementService
	cfg               *config.Config
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	engagementService *EngagementService,
	cfg *config.Config,
) *VideoService {
	return &VideoService{
		videoRepo:         videoRepo,
		engagementService: engagementService,
		cfg:               cfg,
	}
}

// Create 创建视频（仅元数据，文件由外部存储服务负责）
func (s *VideoService) Create(uploaderID int64, req *dto.CreateVideoRequest) (*dto.CreateVideoResponse, error) {
	video := &model.Video{
		UploaderID:   uploaderID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Tags:         req.Tags,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	return &dto.CreateVideoResponse{VideoID: video.ID}, nil
}

// List 分页获取视频列表
func (s *VideoService) List(page, pageSize int, search, category string) ([]*dto.VideoItem, int64, error) {
	videos, total, err := s.videoRepo.List(page, pageSize, search, category)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.VideoItem, len(videos))
	for i, v := range videos {
		items[i] = buildVideoItem(v)
	}

	return items, total, nil
}

// Get 获取视频详情并记录一次浏览。
// userID 非 nil 时附带该用户的反应状态。
func (s *VideoService) Get(videoID int64, userID *int64) (*dto.VideoDetail, error) {
	video, err := s.videoRepo.GetByIDWithUploader(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	// 每次详情访问都计一次浏览，不去重
	view, err := s.engagementService.RecordView(videoID)
	if err != nil {
		return nil, err
	}

	detail := &dto.VideoDetail{
		VideoItem: *buildVideoItem(video),
		VideoURL:  video.VideoURL,
	}
	detail.ViewCount = view.Views

	if userID != nil {
		reaction, err := s.engagementService.GetViewerReaction(*userID, videoID)
		if err == nil {
			detail.ViewerReaction = reaction
		}
	}

	return detail, nil
}

func buildVideoItem(v *model.Video) *dto.VideoItem {
	item := &dto.VideoItem{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		ViewCount:    v.ViewCount,
		LikeCount:    v.LikeCount,
		DislikeCount: v.DislikeCount,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}

	if v.Tags != nil {
		item.Tags = v.Tags
	} else {
		item.Tags = []string{}
	}

	if v.Uploader != nil {
		item.Uploader = &dto.UploaderInfo{
			ID:        v.Uploader.ID,
			Username:  v.Uploader.Username,
			AvatarURL: v.Uploader.AvatarURL,
		}
	}

	return item
}
