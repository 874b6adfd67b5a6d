package dto

// CreateVideoRequest 创建视频（仅元数据，文件上传由外部服务负责）
type CreateVideoRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Duration     int      `json:"duration"`
}

// CreateVideoResponse 创建视频结果
type CreateVideoResponse struct {
	VideoID int64 `json:"video_id"`
}

// UploaderInfo 上传者信息
type UploaderInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// VideoItem 视频列表项
type VideoItem struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Category     string        `json:"category,omitempty"`
	Tags         []string      `json:"tags"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	Duration     int           `json:"duration,omitempty"`
	ViewCount    int           `json:"view_count"`
	LikeCount    int           `json:"like_count"`
	DislikeCount int           `json:"dislike_count"`
	CreatedAt    string        `json:"created_at"`
	Uploader     *UploaderInfo `json:"uploader,omitempty"`
}

// VideoDetail 视频详情，登录用户附带其反应状态
type VideoDetail struct {
	VideoItem
	VideoURL       string `json:"video_url,omitempty"`
	ViewerReaction string `json:"viewer_reaction,omitempty"`
}
