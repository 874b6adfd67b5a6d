package model

import (
	"time"
)

// 反应类型
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction 每个用户对每个视频至多一条记录，kind 在点赞/点踩间切换
type Reaction struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uk_user_video,priority:1" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uk_user_video,priority:2;index" json:"video_id"`
	Kind      string    `gorm:"size:20;not null" json:"kind"` // like, dislike
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// ValidReactionKind 校验反应类型
func ValidReactionKind(kind string) bool {
	return kind == ReactionLike || kind == ReactionDislike
}
