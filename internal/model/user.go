package model

import (
	"time"
)

// User 观众身份，认证由外部服务负责，这里只保留身份信息
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
