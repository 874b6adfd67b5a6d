package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/cmac277/webgen4/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	email := fmt.Sprintf("test_%d@example.com", seq)
	user := &model.User{
		Username: fmt.Sprintf("testuser_%d", seq),
		Email:    &email,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(name string) func(*model.User) {
	return func(u *model.User) {
		u.Username = name
	}
}

// TestVideo 创建测试视频
func TestVideo(t *testing.T, db *gorm.DB, uploaderID int64, opts ...func(*model.Video)) *model.Video {
	t.Helper()

	video := &model.Video{
		UploaderID: uploaderID,
		Title:      fmt.Sprintf("Test Video %d", nextSeq()),
		Tags:       model.StringArray{},
	}

	for _, opt := range opts {
		opt(video)
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("Failed to create test video: %v", err)
	}

	return video
}

// WithTitle 设置视频标题
func WithTitle(title string) func(*model.Video) {
	return func(v *model.Video) {
		v.Title = title
	}
}

// WithCategory 设置视频分类
func WithCategory(category string) func(*model.Video) {
	return func(v *model.Video) {
		v.Category = category
	}
}

// WithCounts 设置初始计数
func WithCounts(views, likes, dislikes int) func(*model.Video) {
	return func(v *model.Video) {
		v.ViewCount = views
		v.LikeCount = likes
		v.DislikeCount = dislikes
	}
}

// TestReaction 创建测试反应记录
func TestReaction(t *testing.T, db *gorm.DB, userID, videoID int64, kind string) *model.Reaction {
	t.Helper()

	reaction := &model.Reaction{
		UserID:  userID,
		VideoID: videoID,
		Kind:    kind,
	}

	if err := db.Create(reaction).Error; err != nil {
		t.Fatalf("Failed to create test reaction: %v", err)
	}

	return reaction
}
