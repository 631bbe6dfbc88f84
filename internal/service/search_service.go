// Package service 实现了应用的核心业务逻辑。
package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/pkg/es"
	"knowledge-wiki-go/pkg/log"
	"knowledge-wiki-go/pkg/vectorizer"
)

// ErrEmptyQuery 表示检索请求的查询串为空。
var ErrEmptyQuery = errors.New("empty query")

// 检索结果正文摘要的截断长度（rune）。
const snippetLen = 200

// 库中尚无任何向量时给调用方的提示。
const noEmbeddingsHint = "No embeddings found. Call POST /api/v1/embeddings/generate first."

// LexicalSearcher 抽象词法检索后端，便于测试时替换 Elasticsearch。
type LexicalSearcher interface {
	Search(ctx context.Context, query string, filter es.SearchFilter, size int) ([]es.Hit, error)
}

// esSearcher 是 LexicalSearcher 的 Elasticsearch 实现。
type esSearcher struct {
	indexName string
}

// NewESSearcher 创建基于 Elasticsearch 的词法检索器。
func NewESSearcher(indexName string) LexicalSearcher {
	return &esSearcher{indexName: indexName}
}

func (s *esSearcher) Search(ctx context.Context, query string, filter es.SearchFilter, size int) ([]es.Hit, error) {
	return es.Search(ctx, s.indexName, query, filter, size)
}

// toESFilter 把文档库过滤条件映射为索引过滤条件。
func toESFilter(filter repository.ChunkFilter) es.SearchFilter {
	return es.SearchFilter{
		FileType: filter.FileType,
		Category: filter.Category,
		Project:  filter.Project,
		Tag:      filter.Tag,
	}
}

// ScoredChunk 是混合检索的内部结果：分块加上两路得分。
// Similarity > 0 表示由语义路召回，LexicalScore > 0 表示由词法路召回。
type ScoredChunk struct {
	Chunk        *model.Chunk
	Similarity   float64
	LexicalScore float64
}

// SearchService 接口定义了词法、语义与混合检索的业务逻辑。
type SearchService interface {
	// Lexical 执行 Elasticsearch 全文检索，过滤条件下推到索引。
	Lexical(ctx context.Context, query string, filter repository.ChunkFilter, limit int) (*model.SemanticSearchResult, error)
	// SemanticSearch 对持久化向量做余弦相似度检索。
	// threshold <= 0 时使用配置的默认下限。
	SemanticSearch(ctx context.Context, query string, filter repository.ChunkFilter, threshold float64, limit int) (*model.SemanticSearchResult, error)
	// Similar 返回与指定分块向量最接近的其他分块。
	Similar(ctx context.Context, chunkID string, limit int) (*model.SemanticSearchResult, error)
	// RetrieveContext 为问答执行混合检索：语义与词法两路召回、
	// 语义优先去重、截断到配置的上下文上限。
	RetrieveContext(ctx context.Context, question string) ([]ScoredChunk, error)
}

type searchService struct {
	chunkRepo repository.ChunkRepository
	lexical   LexicalSearcher
	vec       *vectorizer.Vectorizer
	cfg       config.RetrievalConfig
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(chunkRepo repository.ChunkRepository, lexical LexicalSearcher, vec *vectorizer.Vectorizer, cfg config.RetrievalConfig) SearchService {
	return &searchService{chunkRepo: chunkRepo, lexical: lexical, vec: vec, cfg: cfg}
}

// toScoredDTO 把分块与得分转换为响应条目。
func toScoredDTO(chunk *model.Chunk, similarity, score float64) model.ScoredChunkDTO {
	return model.ScoredChunkDTO{
		ChunkID:        chunk.ChunkID,
		FilePath:       chunk.FilePath,
		FileType:       chunk.FileType,
		ProjectPath:    chunk.ProjectPath,
		DocTitle:       chunk.DocTitle,
		LocationDetail: chunk.LocationDetail,
		Snippet:        chunk.Snippet(snippetLen),
		Tags:           chunk.TagList(),
		Category:       chunk.Category,
		SubCategory:    chunk.SubCategory,
		Org:            chunk.Org,
		DocStage:       chunk.DocStage,
		DocYear:        chunk.DocYear,
		Summary:        chunk.Summary,
		Importance:     chunk.Importance,
		ViewCount:      chunk.ViewCount,
		Similarity:     similarity,
		Score:          score,
	}
}

func (s *searchService) Lexical(ctx context.Context, query string, filter repository.ChunkFilter, limit int) (*model.SemanticSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	hits, err := s.lexical.Search(ctx, query, toESFilter(filter), limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(hits))
	scores := make(map[string]float64, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ChunkID)
		scores[h.ChunkID] = h.Score
	}

	chunks, err := s.chunkRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ChunkID] = c
	}

	// 按 Elasticsearch 的相关度顺序输出
	results := make([]model.ScoredChunkDTO, 0, len(hits))
	for _, h := range hits {
		chunk, ok := byID[h.ChunkID]
		if !ok {
			// 索引比文档库超前时跳过孤儿命中
			continue
		}
		results = append(results, toScoredDTO(chunk, 0, scores[h.ChunkID]))
	}

	return &model.SemanticSearchResult{
		Results: results,
		Total:   len(results),
		Query:   query,
	}, nil
}

// scoreAgainst 加载已向量化的分块并与查询向量打分。
// inclusive 控制阈值边界：语义检索保留等于阈值的结果，
// 相似分块发现与问答召回只保留严格大于阈值的结果。
// 解码失败的向量按缺失处理：告警后跳过，绝不中断整次检索。
func (s *searchService) scoreAgainst(queryVec []float64, filter repository.ChunkFilter, threshold float64, inclusive bool) ([]ScoredChunk, bool, error) {
	chunks, err := s.chunkRepo.FindEmbedded(filter)
	if err != nil {
		return nil, false, err
	}
	if len(chunks) == 0 {
		return nil, false, nil
	}

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := vectorizer.ParseVector([]byte(chunk.Embedding))
		if err != nil {
			log.Warnf("分块 %s 的持久化向量无法解码，按缺失处理: %v", chunk.ChunkID, err)
			continue
		}
		sim := vectorizer.CosineSimilarity(queryVec, vec)
		if sim > threshold || (inclusive && sim == threshold) {
			scored = append(scored, ScoredChunk{Chunk: chunk, Similarity: sim})
		}
	}

	// 相似度降序；同分时按分块 ID 升序，保证结果可复现
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Chunk.ChunkID < scored[j].Chunk.ChunkID
	})
	return scored, true, nil
}

func (s *searchService) SemanticSearch(ctx context.Context, query string, filter repository.ChunkFilter, threshold float64, limit int) (*model.SemanticSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if threshold <= 0 {
		threshold = s.cfg.Threshold
	}
	if limit <= 0 {
		limit = 20
	}

	queryVec := s.vec.Vectorize(query)
	scored, hasEmbedded, err := s.scoreAgainst(queryVec, filter, threshold, true)
	if err != nil {
		return nil, err
	}

	result := &model.SemanticSearchResult{
		Results:   []model.ScoredChunkDTO{},
		Total:     len(scored),
		Query:     query,
		Model:     s.vec.Model(),
		Threshold: threshold,
	}
	if !hasEmbedded {
		result.Hint = noEmbeddingsHint
		return result, nil
	}

	if len(scored) > limit {
		scored = scored[:limit]
	}
	for _, sc := range scored {
		result.Results = append(result.Results, toScoredDTO(sc.Chunk, sc.Similarity, 0))
	}
	return result, nil
}

func (s *searchService) Similar(ctx context.Context, chunkID string, limit int) (*model.SemanticSearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	encoded, err := s.chunkRepo.GetEmbedding(chunkID)
	if err != nil {
		return nil, err
	}

	result := &model.SemanticSearchResult{
		Results:   []model.ScoredChunkDTO{},
		Query:     chunkID,
		Model:     s.vec.Model(),
		Threshold: s.cfg.SimilarThreshold,
	}

	sourceVec, err := vectorizer.ParseVector([]byte(encoded))
	if err != nil {
		// 源分块尚无可用向量：返回空结果而不是错误
		result.Hint = noEmbeddingsHint
		return result, nil
	}

	scored, _, err := s.scoreAgainst(sourceVec, repository.ChunkFilter{}, s.cfg.SimilarThreshold, false)
	if err != nil {
		return nil, err
	}

	// 排除源分块自身
	filtered := scored[:0]
	for _, sc := range scored {
		if sc.Chunk.ChunkID != chunkID {
			filtered = append(filtered, sc)
		}
	}
	result.Total = len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	for _, sc := range filtered {
		result.Results = append(result.Results, toScoredDTO(sc.Chunk, sc.Similarity, 0))
	}
	return result, nil
}

func (s *searchService) RetrieveContext(ctx context.Context, question string) ([]ScoredChunk, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuery
	}

	// 1. 语义路召回
	queryVec := s.vec.Vectorize(question)
	semantic, _, err := s.scoreAgainst(queryVec, repository.ChunkFilter{}, s.cfg.Threshold, false)
	if err != nil {
		return nil, err
	}
	if len(semantic) > s.cfg.SemanticK {
		semantic = semantic[:s.cfg.SemanticK]
	}

	// 2. 词法路召回。词法后端故障只降级为纯语义检索
	var lexicalChunks []ScoredChunk
	hits, err := s.lexical.Search(ctx, question, es.SearchFilter{}, s.cfg.LexicalK)
	if err != nil {
		log.Warnf("词法检索失败，问答降级为纯语义召回: %v", err)
	} else if len(hits) > 0 {
		ids := make([]string, 0, len(hits))
		scores := make(map[string]float64, len(hits))
		for _, h := range hits {
			ids = append(ids, h.ChunkID)
			scores[h.ChunkID] = h.Score
		}
		chunks, err := s.chunkRepo.FindByIDs(ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*model.Chunk, len(chunks))
		for _, c := range chunks {
			byID[c.ChunkID] = c
		}
		for _, h := range hits {
			if chunk, ok := byID[h.ChunkID]; ok {
				lexicalChunks = append(lexicalChunks, ScoredChunk{Chunk: chunk, LexicalScore: scores[h.ChunkID]})
			}
		}
	}

	// 3. 合并去重：语义结果优先，截断到上下文上限
	seen := make(map[string]bool)
	var context []ScoredChunk
	for _, sc := range append(semantic, lexicalChunks...) {
		if seen[sc.Chunk.ChunkID] {
			continue
		}
		seen[sc.Chunk.ChunkID] = true
		context = append(context, sc)
		if len(context) >= s.cfg.MaxContext {
			break
		}
	}
	return context, nil
}
