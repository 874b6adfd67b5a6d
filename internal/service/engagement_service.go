package service

import (
	"context"
	"errors"
	"hash/fnv"
	"log"
	"strconv"
	"sync"

	"gorm.io/gorm"

	"github.com/cmac277/webgen4/config"
	"github.com/cmac277/webgen4/internal/model"
	"github.com/cmac277/webgen4/internal/model/dto"
	"github.com/cmac277/webgen4/internal/pkg/cache"
	"github.com/cmac277/webgen4/internal/pkg/pubsub"
	"github.com/cmac277/webgen4/internal/repository"
)

var (
	ErrVideoNotFound       = errors.New("视频不存在")
	ErrInvalidReactionKind = errors.New("无效的反应类型")
)

// 按视频分片的锁，同一视频上的状态切换串行执行
const lockStripes = 64

type EngagementService struct {
	db           *gorm.DB
	videoRepo    *repository.VideoRepository
	reactionRepo *repository.ReactionRepository
	cache        *cache.EngagementCache // 可为 nil（未配置 Redis）
	publisher    *pubsub.Publisher      // 可为 nil
	cfg          *config.Config
	locks        [lockStripes]sync.Mutex
}

func NewEngagementService(
	db *gorm.DB,
	videoRepo *repository.VideoRepository,
	reactionRepo *repository.ReactionRepository,
	engagementCache *cache.EngagementCache,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *EngagementService {
	return &EngagementService{
		db:           db,
		videoRepo:    videoRepo,
		reactionRepo: reactionRepo,
		cache:        engagementCache,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *EngagementService) lockFor(videoID int64) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatInt(videoID, 10)))
	return &s.locks[h.Sum32()%lockStripes]
}

// ApplyReaction 执行点赞/点踩状态机。
// 同类反应再次请求为取消，异类反应为切换；记录变更和计数调整在同一事务内提交。
func (s *EngagementService) ApplyReaction(userID, videoID int64, kind string) (*dto.ReactionResponse, error) {
	if !model.ValidReactionKind(kind) {
		return nil, ErrInvalidReactionKind
	}

	lock := s.lockFor(videoID)
	lock.Lock()
	defer lock.Unlock()

	var resp *dto.ReactionResponse
	var priorKind string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		videoRepo := s.videoRepo.WithTx(tx)
		reactionRepo := s.reactionRepo.WithTx(tx)

		if _, err := videoRepo.GetByID(videoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoNotFound
			}
			return err
		}

		current, err := reactionRepo.Get(userID, videoID)
		if err != nil {
			return err
		}

		var newKind string
		switch {
		case current == nil:
			// 无反应 → 新增
			if err := reactionRepo.Set(userID, videoID, kind); err != nil {
				return err
			}
			if err := s.adjustCounter(videoRepo, videoID, kind, 1); err != nil {
				return err
			}
			newKind = kind

		case current.Kind == kind:
			// 同类反应 → 取消
			priorKind = current.Kind
			if err := reactionRepo.Delete(userID, videoID); err != nil {
				return err
			}
			if err := s.adjustCounter(videoRepo, videoID, kind, -1); err != nil {
				return err
			}
			newKind = ""

		default:
			// 异类反应 → 切换，旧计数减一、新计数加一，记录原地替换
			priorKind = current.Kind
			if err := reactionRepo.Set(userID, videoID, kind); err != nil {
				return err
			}
			if err := s.adjustCounter(videoRepo, videoID, current.Kind, -1); err != nil {
				return err
			}
			if err := s.adjustCounter(videoRepo, videoID, kind, 1); err != nil {
				return err
			}
			newKind = kind
		}

		updated, err := videoRepo.GetByID(videoID)
		if err != nil {
			return err
		}

		resp = &dto.ReactionResponse{
			Likes:          updated.LikeCount,
			Dislikes:       updated.DislikeCount,
			ViewerReaction: newKind,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, repository.ErrCounterUnderflow) {
			log.Printf("engagement invariant violation: user=%d video=%d requested=%s prior=%q: %v",
				userID, videoID, kind, priorKind, err)
		}
		return nil, err
	}

	s.afterCommit(videoID)
	return resp, nil
}

func (s *EngagementService) adjustCounter(videoRepo *repository.VideoRepository, videoID int64, kind string, delta int) error {
	if kind == model.ReactionLike {
		return videoRepo.AdjustLikeCount(videoID, delta)
	}
	return videoRepo.AdjustDislikeCount(videoID, delta)
}

// RecordView 浏览数加一，不去重、不加锁
func (s *EngagementService) RecordView(videoID int64) (*dto.ViewResponse, error) {
	if err := s.videoRepo.IncrementViewCount(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}

	s.afterCommit(videoID)
	return &dto.ViewResponse{Views: video.ViewCount}, nil
}

// GetEngagement 获取互动计数快照，配置了 Redis 时走快照缓存
func (s *EngagementService) GetEngagement(videoID int64) (*dto.EngagementSnapshot, error) {
	ctx := context.Background()

	if s.cache != nil {
		if snap, err := s.cache.Get(ctx, videoID); err == nil && snap != nil {
			return snap, nil
		}
	}

	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	snap := &dto.EngagementSnapshot{
		Views:    video.ViewCount,
		Likes:    video.LikeCount,
		Dislikes: video.DislikeCount,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, videoID, snap); err != nil {
			log.Printf("Failed to cache engagement snapshot for video %d: %v", videoID, err)
		}
	}

	return snap, nil
}

// ListUserReactions 分页获取用户点过某类反应的视频列表
func (s *EngagementService) ListUserReactions(userID int64, kind string, page, pageSize int) ([]*dto.VideoItem, int64, error) {
	if !model.ValidReactionKind(kind) {
		return nil, 0, ErrInvalidReactionKind
	}

	ids, total, err := s.reactionRepo.GetUserReactedVideos(userID, kind, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	videos, err := s.videoRepo.ListByIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.VideoItem, len(videos))
	for i, v := range videos {
		items[i] = buildVideoItem(v)
	}
	return items, total, nil
}

// GetViewerReaction 获取用户对视频的当前反应，无反应返回空字符串
func (s *EngagementService) GetViewerReaction(userID, videoID int64) (string, error) {
	reaction, err := s.reactionRepo.Get(userID, videoID)
	if err != nil {
		return "", err
	}
	if reaction == nil {
		return "", nil
	}
	return reaction.Kind, nil
}

// afterCommit 提交后失效缓存并广播最新计数
func (s *EngagementService) afterCommit(videoID int64) {
	ctx := context.Background()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, videoID); err != nil {
			log.Printf("Failed to invalidate engagement cache for video %d: %v", videoID, err)
		}
	}

	if s.publisher != nil {
		video, err := s.videoRepo.GetByID(videoID)
		if err != nil {
			return
		}
		msg := &pubsub.EngagementMessage{
			VideoID:  videoID,
			Views:    video.ViewCount,
			Likes:    video.LikeCount,
			Dislikes: video.DislikeCount,
		}
		if err := s.publisher.PublishEngagement(ctx, msg); err != nil {
			log.Printf("Failed to publish engagement update for video %d: %v", videoID, err)
		}
	}
}
