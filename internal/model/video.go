package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray 用于 JSON 数组字段
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

type Video struct {
	ID           int64       `gorm:"primaryKey" json:"id"`
	UploaderID   int64       `gorm:"not null;index" json:"uploader_id"`
	Title        string      `gorm:"size:200;not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description,omitempty"`
	Category     string      `gorm:"size:50;index" json:"category,omitempty"`
	Tags         StringArray `gorm:"type:json" json:"tags,omitempty"`
	VideoURL     string      `gorm:"size:500" json:"video_url,omitempty"`
	ThumbnailURL string      `gorm:"size:500" json:"thumbnail_url,omitempty"`
	Duration     int         `json:"duration,omitempty"` // 时长（秒）
	ViewCount    int         `gorm:"default:0" json:"view_count"`
	LikeCount    int         `gorm:"default:0" json:"like_count"`
	DislikeCount int         `gorm:"default:0" json:"dislike_count"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// 关联
	Uploader *User `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
