package dto

// EngagementSnapshot 互动计数快照
type EngagementSnapshot struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// ReactionResponse 点赞/点踩操作结果
type ReactionResponse struct {
	Likes          int    `json:"likes"`
	Dislikes       int    `json:"dislikes"`
	ViewerReaction string `json:"viewer_reaction"` // like, dislike, 空字符串表示无反应
}

// ViewResponse 浏览计数结果
type ViewResponse struct {
	Views int `json:"views"`
}

// ViewerReactionResponse 当前用户的反应状态
type ViewerReactionResponse struct {
	Reaction string `json:"reaction"` // like, dislike, 空字符串表示无反应
}
