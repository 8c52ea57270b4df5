package catalog

import (
	"context"
	"testing"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ids(problems []model.Problem) []int {
	out := make([]int, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.ID)
	}
	return out
}

func TestStatic_Search(t *testing.T) {
	ctx := context.Background()
	c := NewStatic()

	tests := []struct {
		name    string
		query   string
		want    []int
		wantErr error
	}{
		{name: "タイトル (大文字小文字を無視)", query: "two sum", want: []int{1}},
		{name: "slug の部分一致", query: "linked-list", want: []int{21, 206}},
		{name: "問題番号", query: "121", want: []int{121}},
		{name: "前後の空白は無視", query: "  anagram ", want: []int{242, 49}},
		{name: "該当なし", query: "dijkstra", want: []int{}},
		{name: "異常系: 空のクエリ", query: "   ", wantErr: model.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Search(ctx, tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestStatic_Suggested(t *testing.T) {
	c := NewStatic()
	got, err := c.Suggested(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 18)
	assert.Equal(t, "Two Sum", got[0].Title)
	assert.Equal(t, "Hash Map", got[0].Topic)

	// 返した一覧を書き換えても同梱リストは変わらない
	got[0].Title = "changed"
	again, _ := c.Suggested(context.Background())
	assert.Equal(t, "Two Sum", again[0].Title)
}

func TestGormCatalog_Search(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	repo := repository.NewGormProblemRepository()
	require.NoError(t, repo.Upsert(ctx, db, &model.Problem{ID: 1, Title: "Two Sum", TitleSlug: "two-sum", Difficulty: model.DifficultyEasy}))
	require.NoError(t, repo.Upsert(ctx, db, &model.Problem{ID: 167, Title: "Two Sum II - Input Array Is Sorted", TitleSlug: "two-sum-ii-input-array-is-sorted", Difficulty: model.DifficultyMedium}))

	c := NewGormCatalog(db, repo)

	got, err := c.Search(ctx, "two sum")
	require.NoError(t, err)
	// 登録済みの問題が先、同梱リストとの重複は除く
	assert.Equal(t, []int{1, 167}, ids(got))

	got, err = c.Search(ctx, "island")
	require.NoError(t, err)
	assert.Equal(t, []int{200}, ids(got))

	_, err = c.Search(ctx, "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	_, err = c.Search(ctx, "two")
	assert.ErrorIs(t, err, model.ErrUnavailable)
}
