package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cmac277/webgen4/internal/model"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *ReactionRepository) WithTx(tx *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: tx}
}

// Get 获取用户对视频的反应，不存在返回 nil（不是错误）
func (r *ReactionRepository) Get(userID, videoID int64) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

// Set 写入用户对视频的反应，已存在则原地替换 kind（upsert）
func (r *ReactionRepository) Set(userID, videoID int64, kind string) error {
	reaction := &model.Reaction{
		UserID:  userID,
		VideoID: videoID,
		Kind:    kind,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
	}).Create(reaction).Error
}

// Delete 删除用户对视频的反应
func (r *ReactionRepository) Delete(userID, videoID int64) error {
	return r.db.Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&model.Reaction{}).Error
}

// CountByVideo 统计视频某类反应的记录数
func (r *ReactionRepository) CountByVideo(videoID int64, kind string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Reaction{}).
		Where("video_id = ? AND kind = ?", videoID, kind).
		Count(&count).Error
	return count, err
}

// GetUserReactedVideos 获取用户点过某类反应的视频列表
func (r *ReactionRepository) GetUserReactedVideos(userID int64, kind string, page, pageSize int) ([]int64, int64, error) {
	var total int64
	var ids []int64

	query := r.db.Model(&model.Reaction{}).Where("user_id = ? AND kind = ?", userID, kind)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Pluck("video_id", &ids).Error
	return ids, total, err
}
