package service

import (
	"context"
	"testing"

	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/pkg/tasks"
	"knowledge-wiki-go/pkg/vectorizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMissing(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		{ChunkID: "m1", DocTitle: "데이터 보고서", Text: "데이터 거버넌스", Tags: "[]"},
		{ChunkID: "m2", DocTitle: "ai 전략", Text: "ai 자동화", Tags: "[]"},
		embeddedChunk(v, "done", "데이터"),
	}}
	svc := NewEmbeddingService(repo, v)

	count, err := svc.GenerateMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []string{"m1", "m2"} {
		c := repo.byID(id)
		require.NotEmpty(t, c.Embedding, "分块 %s 应已写回向量", id)
		assert.Equal(t, "test-3", c.EmbedModel)

		vec, err := vectorizer.ParseVector([]byte(c.Embedding))
		require.NoError(t, err)
		assert.Len(t, vec, v.Dimension())
	}
}

func TestGenerateMissingIdempotent(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		{ChunkID: "m1", Text: "데이터", Tags: "[]"},
	}}
	svc := NewEmbeddingService(repo, v)

	first, err := svc.GenerateMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.GenerateMissing(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second, "已有向量的分块不得重算")
}

func TestGenerateMissingUsesMetadata(t *testing.T) {
	v := testVectorizer()
	// 正文不含词表词条，仅标题与标签命中：合成输入必须包含元数据
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		{ChunkID: "meta", DocTitle: "데이터 현황", Tags: `["거버넌스"]`, Text: "어휘 밖 본문"},
	}}
	svc := NewEmbeddingService(repo, v)

	_, err := svc.GenerateMissing(context.Background())
	require.NoError(t, err)

	vec, err := vectorizer.ParseVector([]byte(repo.byID("meta").Embedding))
	require.NoError(t, err)
	assert.NotZero(t, vec[0], "标题中的 '데이터' 应参与编码")
	assert.NotZero(t, vec[1], "标签中的 '거버넌스' 应参与编码")
}

func TestEmbeddingStats(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "e1", "데이터"),
		embeddedChunk(v, "e2", "거버넌스"),
		{ChunkID: "m1", Text: "대기", Tags: "[]"},
		{ChunkID: "m2", Text: "대기", Tags: "[]"},
	}}
	repo.byID("e1").EmbedModel = "test-3"
	repo.byID("e2").EmbedModel = "test-3"
	svc := NewEmbeddingService(repo, v)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalChunks)
	assert.Equal(t, int64(2), stats.WithEmbeddings)
	assert.Equal(t, 50, stats.Coverage)
	require.Len(t, stats.Models, 1)
	assert.Equal(t, "test-3", stats.Models[0].Model)
	assert.Equal(t, int64(2), stats.Models[0].Count)
}

func TestEmbeddingStatsCoverageRounds(t *testing.T) {
	v := testVectorizer()
	// 2/3 覆盖率取整到 67，而不是截断到 66
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "e1", "데이터"),
		embeddedChunk(v, "e2", "거버넌스"),
		{ChunkID: "m1", Text: "대기", Tags: "[]"},
	}}
	svc := NewEmbeddingService(repo, v)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 67, stats.Coverage)
}

func TestProcessTaskTriggersGeneration(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		{ChunkID: "m1", Text: "데이터", Tags: "[]"},
	}}
	svc := NewEmbeddingService(repo, v)

	err := svc.Process(context.Background(), tasks.EmbeddingTask{BatchID: "b1", ChunkCount: 1, Source: "api"})
	require.NoError(t, err)
	assert.NotEmpty(t, repo.byID("m1").Embedding)
}
