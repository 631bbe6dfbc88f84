package service

import (
	"context"
	"errors"
	"testing"

	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/pkg/es"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearchService(repo *fakeChunkRepo, lexical *fakeLexical) SearchService {
	return NewSearchService(repo, lexical, testVectorizer(), testRetrievalConfig())
}

func TestSemanticSearchEmptyQuery(t *testing.T) {
	svc := newTestSearchService(&fakeChunkRepo{}, &fakeLexical{})

	_, err := svc.SemanticSearch(context.Background(), "", repository.ChunkFilter{}, 0, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	// 纯空白查询同样视为空
	_, err = svc.SemanticSearch(context.Background(), "   ", repository.ChunkFilter{}, 0, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = svc.Lexical(context.Background(), "  ", repository.ChunkFilter{}, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSemanticSearchKeepsBoundaryMatch(t *testing.T) {
	v := testVectorizer()
	// 单词条文本的向量恰为单位基向量，与同文本查询的余弦相似度精确等于 1.0
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "exact", "데이터"),
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터", repository.ChunkFilter{}, 1.0, 10)
	require.NoError(t, err)
	require.Len(t, result.Results, 1, "相似度等于阈值的结果必须保留")
	assert.Equal(t, "exact", result.Results[0].ChunkID)
	assert.Equal(t, 1.0, result.Results[0].Similarity)
}

func TestSemanticSearchThresholdAndOrder(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "c1", "데이터 거버넌스 체계 수립"),
		embeddedChunk(v, "c2", "데이터 플랫폼 현황"),
		embeddedChunk(v, "c3", "ai 자동화 전략"), // 与查询正交
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터 거버넌스", repository.ChunkFilter{}, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "c1", result.Results[0].ChunkID, "完全匹配的分块必须排在最前")
	assert.Equal(t, "c2", result.Results[1].ChunkID)
	assert.Greater(t, result.Results[0].Similarity, result.Results[1].Similarity)
	assert.Equal(t, "test-3", result.Model)
	assert.Equal(t, 0.1, result.Threshold)
	assert.Empty(t, result.Hint)
}

func TestSemanticSearchLimitKeepsTotal(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "c1", "데이터 거버넌스"),
		embeddedChunk(v, "c2", "데이터 거버넌스 추가"),
		embeddedChunk(v, "c3", "데이터"),
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터 거버넌스", repository.ChunkFilter{}, 0, 1)
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
	assert.Equal(t, 3, result.Total, "Total 必须是截断前的候选数")
}

func TestSemanticSearchTieBreakByChunkID(t *testing.T) {
	v := testVectorizer()
	// 相同文本产出相同向量，相似度并列
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "zz", "데이터 거버넌스"),
		embeddedChunk(v, "aa", "데이터 거버넌스"),
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터 거버넌스", repository.ChunkFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "aa", result.Results[0].ChunkID, "同分时按分块 ID 升序")
	assert.Equal(t, "zz", result.Results[1].ChunkID)
}

func TestSemanticSearchHintWhenNoEmbeddings(t *testing.T) {
	svc := newTestSearchService(&fakeChunkRepo{}, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터", repository.ChunkFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Zero(t, result.Total)
	assert.NotEmpty(t, result.Hint)
}

func TestSemanticSearchSkipsUndecodableEmbedding(t *testing.T) {
	v := testVectorizer()
	broken := embeddedChunk(v, "broken", "데이터 거버넌스")
	broken.Embedding = "not-json"
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		broken,
		embeddedChunk(v, "ok", "데이터 거버넌스"),
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터 거버넌스", repository.ChunkFilter{}, 0, 10)
	require.NoError(t, err, "脏向量不得中断检索")
	require.Len(t, result.Results, 1)
	assert.Equal(t, "ok", result.Results[0].ChunkID)
}

func TestSemanticSearchAppliesFilter(t *testing.T) {
	v := testVectorizer()
	pdf := embeddedChunk(v, "pdf1", "데이터 거버넌스")
	pdf.FileType = "pdf"
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "ppt1", "데이터 거버넌스"),
		pdf,
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.SemanticSearch(context.Background(), "데이터", repository.ChunkFilter{FileType: "pdf"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "pdf1", result.Results[0].ChunkID)
}

func TestSimilarExcludesSource(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "src", "데이터 거버넌스"),
		embeddedChunk(v, "near", "데이터 거버넌스 추가"),
		embeddedChunk(v, "far", "ai"),
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.Similar(context.Background(), "src", 10)
	require.NoError(t, err)
	for _, r := range result.Results {
		assert.NotEqual(t, "src", r.ChunkID, "相似结果不得包含源分块自身")
	}
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "near", result.Results[0].ChunkID)
}

func TestSimilarChunkNotFound(t *testing.T) {
	svc := newTestSearchService(&fakeChunkRepo{}, &fakeLexical{})
	_, err := svc.Similar(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, repository.ErrChunkNotFound)
}

func TestSimilarSourceWithoutEmbedding(t *testing.T) {
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		{ChunkID: "plain", Text: "아직 벡터 없음"},
	}}
	svc := newTestSearchService(repo, &fakeLexical{})

	result, err := svc.Similar(context.Background(), "plain", 10)
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.NotEmpty(t, result.Hint)
}

func TestRetrieveContextSemanticFirstDedupe(t *testing.T) {
	v := testVectorizer()
	c1 := embeddedChunk(v, "c1", "데이터 거버넌스")
	c2 := embeddedChunk(v, "c2", "데이터")
	c3 := &model.Chunk{ChunkID: "c3", Text: "어휘 밖 텍스트", Tags: "[]"}
	repo := &fakeChunkRepo{chunks: []*model.Chunk{c1, c2, c3}}
	lexical := &fakeLexical{hits: []es.Hit{
		{ChunkID: "c2", Score: 8.1}, // 语义路已有，应去重
		{ChunkID: "c3", Score: 5.5},
	}}
	svc := newTestSearchService(repo, lexical)

	context_, err := svc.RetrieveContext(context.Background(), "데이터 거버넌스")
	require.NoError(t, err)
	require.Len(t, context_, 3)
	assert.Equal(t, "c1", context_[0].Chunk.ChunkID, "语义结果排在词法结果之前")
	assert.Equal(t, "c2", context_[1].Chunk.ChunkID)
	assert.Equal(t, "c3", context_[2].Chunk.ChunkID)
	assert.Greater(t, context_[0].Similarity, 0.0)
	assert.Zero(t, context_[2].Similarity)
	assert.Equal(t, 5.5, context_[2].LexicalScore)
}

func TestRetrieveContextMaxContext(t *testing.T) {
	v := testVectorizer()
	var chunks []*model.Chunk
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		chunks = append(chunks, embeddedChunk(v, id, "데이터 거버넌스"))
	}
	repo := &fakeChunkRepo{chunks: chunks}
	lexical := &fakeLexical{hits: []es.Hit{
		{ChunkID: "x1", Score: 3}, {ChunkID: "x2", Score: 2},
	}}
	for _, id := range []string{"x1", "x2"} {
		repo.chunks = append(repo.chunks, &model.Chunk{ChunkID: id, Tags: "[]"})
	}

	cfg := testRetrievalConfig()
	cfg.MaxContext = 6
	svc := NewSearchService(repo, lexical, testVectorizer(), cfg)

	context_, err := svc.RetrieveContext(context.Background(), "데이터")
	require.NoError(t, err)
	assert.Len(t, context_, 6, "上下文不得超过配置上限")
}

func TestRetrieveContextLexicalFailureDegrades(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "c1", "데이터 거버넌스"),
	}}
	lexical := &fakeLexical{err: errors.New("es down")}
	svc := newTestSearchService(repo, lexical)

	context_, err := svc.RetrieveContext(context.Background(), "데이터")
	require.NoError(t, err, "词法后端故障只降级，不报错")
	require.Len(t, context_, 1)
	assert.Equal(t, "c1", context_[0].Chunk.ChunkID)
}

func TestLexicalSearchPreservesESOrder(t *testing.T) {
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		{ChunkID: "a", Tags: "[]"},
		{ChunkID: "b", Tags: "[]"},
	}}
	lexical := &fakeLexical{hits: []es.Hit{
		{ChunkID: "b", Score: 9.9},
		{ChunkID: "a", Score: 1.2},
		{ChunkID: "orphan", Score: 0.5}, // 文档库中不存在
	}}
	svc := newTestSearchService(repo, lexical)

	result, err := svc.Lexical(context.Background(), "질의", repository.ChunkFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, result.Results, 2, "孤儿命中应被跳过")
	assert.Equal(t, "b", result.Results[0].ChunkID)
	assert.Equal(t, 9.9, result.Results[0].Score)
	assert.Equal(t, "a", result.Results[1].ChunkID)
}
