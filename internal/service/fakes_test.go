package service

import (
	"context"
	"strings"
	"time"

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/pkg/es"
	"knowledge-wiki-go/pkg/vectorizer"
)

// fakeChunkRepo 是 ChunkRepository 的内存实现，测试用。
type fakeChunkRepo struct {
	chunks []*model.Chunk
}

func (f *fakeChunkRepo) byID(id string) *model.Chunk {
	for _, c := range f.chunks {
		if c.ChunkID == id {
			return c
		}
	}
	return nil
}

func (f *fakeChunkRepo) BatchUpsert(chunks []*model.Chunk) error {
	f.chunks = append(f.chunks, chunks...)
	return nil
}

func (f *fakeChunkRepo) DeleteAll() error {
	f.chunks = nil
	return nil
}

func (f *fakeChunkRepo) FindByID(chunkID string) (*model.Chunk, error) {
	if c := f.byID(chunkID); c != nil {
		return c, nil
	}
	return nil, repository.ErrChunkNotFound
}

func (f *fakeChunkRepo) FindByIDs(chunkIDs []string) ([]*model.Chunk, error) {
	var result []*model.Chunk
	for _, id := range chunkIDs {
		if c := f.byID(id); c != nil {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeChunkRepo) FindRelated(filePath, excludeID string, limit int) ([]*model.Chunk, error) {
	var result []*model.Chunk
	for _, c := range f.chunks {
		if c.FilePath == filePath && c.ChunkID != excludeID && len(result) < limit {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeChunkRepo) FindSameCategory(category, excludeID string, limit int) ([]*model.Chunk, error) {
	var result []*model.Chunk
	for _, c := range f.chunks {
		if c.Category == category && c.ChunkID != excludeID && len(result) < limit {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeChunkRepo) Browse(filter repository.ChunkFilter, sort string, offset, limit int) ([]*model.Chunk, int64, error) {
	return f.chunks, int64(len(f.chunks)), nil
}

func (f *fakeChunkRepo) FindMissingEmbedding() ([]*model.Chunk, error) {
	var result []*model.Chunk
	for _, c := range f.chunks {
		if c.Embedding == "" {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeChunkRepo) UpdateEmbeddings(updates []repository.EmbeddingUpdate) error {
	for _, u := range updates {
		if c := f.byID(u.ChunkID); c != nil {
			c.Embedding = u.Embedding
			c.EmbedModel = u.Model
		}
	}
	return nil
}

func (f *fakeChunkRepo) FindEmbedded(filter repository.ChunkFilter) ([]*model.Chunk, error) {
	var result []*model.Chunk
	for _, c := range f.chunks {
		if c.Embedding == "" {
			continue
		}
		if filter.FileType != "" && c.FileType != filter.FileType {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Project != "" && !strings.Contains(c.ProjectPath, filter.Project) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeChunkRepo) GetEmbedding(chunkID string) (string, error) {
	if c := f.byID(chunkID); c != nil {
		return c.Embedding, nil
	}
	return "", repository.ErrChunkNotFound
}

func (f *fakeChunkRepo) CountAll() (int64, error) {
	return int64(len(f.chunks)), nil
}

func (f *fakeChunkRepo) CountEmbedded() (int64, error) {
	var count int64
	for _, c := range f.chunks {
		if c.Embedding != "" {
			count++
		}
	}
	return count, nil
}

func (f *fakeChunkRepo) CountByModel() ([]model.ModelCountDTO, error) {
	counts := make(map[string]int64)
	for _, c := range f.chunks {
		if c.EmbedModel != "" {
			counts[c.EmbedModel]++
		}
	}
	var result []model.ModelCountDTO
	for m, n := range counts {
		result = append(result, model.ModelCountDTO{Model: m, Count: n})
	}
	return result, nil
}

func (f *fakeChunkRepo) CountDistinctFiles() (int64, error)               { return 0, nil }
func (f *fakeChunkRepo) Facet(string, int) ([]model.FacetCountDTO, error) { return nil, nil }
func (f *fakeChunkRepo) CountByType() ([]model.TypeCountDTO, error)       { return nil, nil }
func (f *fakeChunkRepo) CountByProject(int) ([]model.ProjectCountDTO, error) {
	return nil, nil
}
func (f *fakeChunkRepo) CountByCategoryPair() ([]model.CategoryCountDTO, error) { return nil, nil }
func (f *fakeChunkRepo) CountByOrg(int) ([]model.OrgCountDTO, error)            { return nil, nil }
func (f *fakeChunkRepo) ListProjects() ([]model.ProjectCountDTO, error)         { return nil, nil }
func (f *fakeChunkRepo) AllTags() ([]string, error)                             { return nil, nil }
func (f *fakeChunkRepo) TopViewed(int) ([]*model.Chunk, error)                  { return nil, nil }
func (f *fakeChunkRepo) RecentlyIndexed(int) ([]*model.Chunk, error)            { return nil, nil }
func (f *fakeChunkRepo) LastIndexedAt() (*time.Time, error)                     { return nil, nil }
func (f *fakeChunkRepo) IncrementViewCount(context.Context, string) error       { return nil }
func (f *fakeChunkRepo) TrendingIDs(context.Context, int) ([]string, error)     { return nil, nil }

// fakeLexical 是 LexicalSearcher 的测试替身。
type fakeLexical struct {
	hits []es.Hit
	err  error
}

func (f *fakeLexical) Search(ctx context.Context, query string, filter es.SearchFilter, size int) ([]es.Hit, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.hits) > size {
		return f.hits[:size], nil
	}
	return f.hits, nil
}

// fakeCompleter 是 llm.Client 的测试替身。
type fakeCompleter struct {
	enabled   bool
	reply     string
	err       error
	gotSystem string
	gotUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.gotSystem = systemPrompt
	f.gotUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) Enabled() bool     { return f.enabled }
func (f *fakeCompleter) ModelName() string { return "gpt-4o-mini" }

// 测试共用的小词表与检索参数。
func testVectorizer() *vectorizer.Vectorizer {
	return vectorizer.New(vectorizer.Vocabulary{
		Model: "test-3",
		Terms: []string{"데이터", "거버넌스", "ai"},
	})
}

func testRetrievalConfig() config.RetrievalConfig {
	return config.RetrievalConfig{
		Threshold:        0.1,
		SimilarThreshold: 0.05,
		LexicalK:         5,
		SemanticK:        5,
		MaxContext:       6,
	}
}

// embeddedChunk 构造一个带持久化向量的分块。
func embeddedChunk(v *vectorizer.Vectorizer, id, text string) *model.Chunk {
	encoded, _ := vectorizer.EncodeVector(v.Vectorize(text))
	return &model.Chunk{
		ChunkID:   id,
		FilePath:  "demo/" + id + ".pptx",
		FileType:  "pptx",
		DocTitle:  "doc-" + id,
		Text:      text,
		Tags:      "[]",
		Embedding: encoded,
	}
}
