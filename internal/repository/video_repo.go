package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cmac277/webgen4/internal/model"
)

// ErrCounterUnderflow 计数调整会使计数变负。调用方保证视频存在时，
// 零行更新只可能意味着计数与反应记录失配。
var ErrCounterUnderflow = errors.New("counter underflow")

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *VideoRepository) WithTx(tx *gorm.DB) *VideoRepository {
	return &VideoRepository{db: tx}
}

// Create 创建视频
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithUploader 获取视频及上传者信息
func (r *VideoRepository) GetByIDWithUploader(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Preload("Uploader").First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// Exists 检查视频是否存在
func (r *VideoRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List 分页获取视频列表，支持搜索和分类过滤
func (r *VideoRepository) List(page, pageSize int, search, category string) ([]*model.Video, int64, error) {
	var total int64
	var videos []*model.Video

	query := r.db.Model(&model.Video{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Uploader").Order("created_at DESC").
		Offset(offset).Limit(pageSize).Find(&videos).Error
	return videos, total, err
}

// ListByIDs 按 ID 列表获取视频，保持入参顺序
func (r *VideoRepository) ListByIDs(ids []int64) ([]*model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var videos []*model.Video
	if err := r.db.Preload("Uploader").Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]*model.Video, 0, len(videos))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// IncrementViewCount 浏览数加一（原子更新），视频不存在返回 gorm.ErrRecordNotFound
func (r *VideoRepository) IncrementViewCount(id int64) error {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustLikeCount 点赞数原子增减，WHERE 条件拒绝将计数调成负数。
// 调用方需先确认视频存在；零行更新返回 ErrCounterUnderflow。
func (r *VideoRepository) AdjustLikeCount(id int64, delta int) error {
	result := r.db.Model(&model.Video{}).
		Where("id = ? AND like_count + ? >= 0", id, delta).
		Update("like_count", gorm.Expr("like_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCounterUnderflow
	}
	return nil
}

// AdjustDislikeCount 点踩数原子增减，约束同 AdjustLikeCount
func (r *VideoRepository) AdjustDislikeCount(id int64, delta int) error {
	result := r.db.Model(&model.Video{}).
		Where("id = ? AND dislike_count + ? >= 0", id, delta).
		Update("dislike_count", gorm.Expr("dislike_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCounterUnderflow
	}
	return nil
}
