package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cmac277/webgen4/internal/model"
	"github.com/cmac277/webgen4/internal/testutil"
)

func TestVideoRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)

	video := &model.Video{
		UploaderID:  user.ID,
		Title:       "My Video",
		Description: "A test video",
		Category:    "tech",
		Tags:        model.StringArray{"go", "backend"},
	}
	require.NoError(t, repo.Create(video))
	assert.NotZero(t, video.ID)

	got, err := repo.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Video", got.Title)
	assert.Equal(t, 0, got.ViewCount)
	assert.Equal(t, 0, got.LikeCount)
	assert.Equal(t, 0, got.DislikeCount)
}

func TestVideoRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)

	_, err := repo.GetByID(99999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestVideoRepository_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)
	video := testutil.TestVideo(t, db, user.ID)

	exists, err := repo.Exists(video.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(99999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVideoRepository_List_SearchAndCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestVideo(t, db, user.ID, testutil.WithTitle("Go Tutorial"), testutil.WithCategory("tech"))
	testutil.TestVideo(t, db, user.ID, testutil.WithTitle("Cooking Pasta"), testutil.WithCategory("food"))
	testutil.TestVideo(t, db, user.ID, testutil.WithTitle("Go Concurrency"), testutil.WithCategory("tech"))

	videos, total, err := repo.List(1, 10, "Go", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, videos, 2)

	videos, total, err = repo.List(1, 10, "", "food")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Cooking Pasta", videos[0].Title)
}

func TestVideoRepository_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)

	for i := 0; i < 5; i++ {
		testutil.TestVideo(t, db, user.ID, testutil.WithTitle(fmt.Sprintf("Video %d", i)))
	}

	videos, total, err := repo.List(1, 2, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, videos, 2)

	videos, total, err = repo.List(3, 2, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, videos, 1)
}

func TestVideoRepository_ListByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)
	videoA := testutil.TestVideo(t, db, user.ID)
	videoB := testutil.TestVideo(t, db, user.ID)

	// Order follows the input IDs, missing IDs are skipped
	videos, err := repo.ListByIDs([]int64{videoB.ID, 99999, videoA.ID})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, videoB.ID, videos[0].ID)
	assert.Equal(t, videoA.ID, videos[1].ID)

	videos, err = repo.ListByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestVideoRepository_IncrementViewCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)
	video := testutil.TestVideo(t, db, user.ID)

	require.NoError(t, repo.IncrementViewCount(video.ID))
	require.NoError(t, repo.IncrementViewCount(video.ID))

	got, err := repo.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
}

func TestVideoRepository_IncrementViewCount_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)

	err := repo.IncrementViewCount(99999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestVideoRepository_AdjustLikeCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)
	video := testutil.TestVideo(t, db, user.ID)

	require.NoError(t, repo.AdjustLikeCount(video.ID, 1))
	require.NoError(t, repo.AdjustLikeCount(video.ID, 1))
	require.NoError(t, repo.AdjustLikeCount(video.ID, -1))

	got, err := repo.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)
}

func TestVideoRepository_AdjustLikeCount_Underflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)
	video := testutil.TestVideo(t, db, user.ID)

	// Counter is 0: decrement must be rejected, not clamped
	err := repo.AdjustLikeCount(video.ID, -1)
	assert.True(t, errors.Is(err, ErrCounterUnderflow))

	got, err := repo.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
}

func TestVideoRepository_AdjustDislikeCount_Underflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewVideoRepository(db)
	user := testutil.TestUser(t, db)
	video := testutil.TestVideo(t, db, user.ID)

	err := repo.AdjustDislikeCount(video.ID, -1)
	assert.True(t, errors.Is(err, ErrCounterUnderflow))
}
