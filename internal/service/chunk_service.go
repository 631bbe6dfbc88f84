// Package service 实现了应用的核心业务逻辑。
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/pkg/es"
	"knowledge-wiki-go/pkg/kafka"
	"knowledge-wiki-go/pkg/log"
	"knowledge-wiki-go/pkg/storage"
	"knowledge-wiki-go/pkg/tasks"
	"knowledge-wiki-go/pkg/token"
)

// 入库的批次大小。一个批次一次写入，批内失败记入 errors 并继续下一批。
const ingestBatchSize = 50

// 详情页关联分块的数量上限。
const relatedLimit = 5

// ChunkService 接口定义了分块入库、浏览、统计与清理的业务逻辑。
type ChunkService interface {
	// Ingest 批量写入分块，随后索引到 Elasticsearch、归档原始负载、
	// 发布向量生成任务。部分批次失败不是错误，结果里逐批记录。
	Ingest(ctx context.Context, inputs []model.ChunkInput, rawPayload []byte, source string) (*model.IngestResultDTO, error)
	// Detail 返回分块详情（附带同文件与同类别的关联分块），并累加浏览量。
	Detail(ctx context.Context, chunkID string) (*model.ChunkDetailDTO, error)
	// Browse 按过滤条件分页浏览分块。
	Browse(filter repository.ChunkFilter, sortKey string, page, pageSize int) (*model.BrowseResultDTO, error)
	// Stats 返回知识库总览统计。
	Stats() (*model.StatsDTO, error)
	// TagCounts 解析 tags 列并聚合出标签云。
	TagCounts() ([]model.FacetCountDTO, error)
	Categories() ([]model.CategoryCountDTO, error)
	Projects() ([]model.ProjectCountDTO, error)
	FileTypes() ([]model.FacetCountDTO, error)
	Orgs() ([]model.OrgCountDTO, error)
	// Trending 返回热度榜：Redis 榜单优先，冷启动时退回数据库浏览量。
	Trending(ctx context.Context, limit int) (*model.TrendingDTO, error)
	// Seed 写入演示数据。
	Seed(ctx context.Context) (*model.IngestResultDTO, error)
	// DeleteAll 清空数据库与 Elasticsearch 索引。
	DeleteAll(ctx context.Context) error
}

type chunkService struct {
	chunkRepo repository.ChunkRepository
	esCfg     config.ElasticsearchConfig
	demoData  func() []model.ChunkInput
}

// NewChunkService 创建一个新的 ChunkService 实例。
// demoData 提供 Seed 使用的演示分块。
func NewChunkService(chunkRepo repository.ChunkRepository, esCfg config.ElasticsearchConfig, demoData func() []model.ChunkInput) ChunkService {
	return &chunkService{chunkRepo: chunkRepo, esCfg: esCfg, demoData: demoData}
}

func (s *chunkService) Ingest(ctx context.Context, inputs []model.ChunkInput, rawPayload []byte, source string) (*model.IngestResultDTO, error) {
	result := &model.IngestResultDTO{Errors: []string{}, TotalSent: len(inputs)}
	if len(inputs) == 0 {
		return result, nil
	}

	batchID := token.GenerateRandomString(8)
	log.Infof("1. 开始入库批次 %s：共 %d 个分块 (来源 %s)", batchID, len(inputs), source)

	// 1. 分批写入数据库，批内失败记入 errors 并继续
	var written []*model.Chunk
	for start := 0; start < len(inputs); start += ingestBatchSize {
		end := start + ingestBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := make([]*model.Chunk, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, inputs[i].ToChunk())
		}
		if err := s.chunkRepo.BatchUpsert(batch); err != nil {
			msg := fmt.Sprintf("batch %d-%d: %v", start, end, err)
			log.Errorf("入库批次写入失败: %s", msg)
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.Inserted += len(batch)
		written = append(written, batch...)
	}

	// 2. 同步写入 Elasticsearch 词法索引
	if len(written) > 0 {
		if err := es.IndexChunks(ctx, s.esCfg.IndexName, written); err != nil {
			log.Errorf("分块写入 Elasticsearch 失败: %v", err)
			result.Errors = append(result.Errors, fmt.Sprintf("elasticsearch: %v", err))
		}
	}

	// 3. 归档原始负载（MinIO 未配置时为空操作）
	if len(rawPayload) > 0 {
		if objectName, err := storage.ArchiveBatch(ctx, batchID, rawPayload); err == nil && objectName != "" {
			log.Infof("2. 入库批次已归档: %s", objectName)
		}
	}

	// 4. 发布向量生成任务，由消费者异步补齐向量
	task := tasks.EmbeddingTask{BatchID: batchID, ChunkCount: result.Inserted, Source: source}
	if err := kafka.ProduceEmbeddingTask(task); err != nil {
		log.Errorf("发布向量生成任务失败: %v", err)
		result.Errors = append(result.Errors, fmt.Sprintf("kafka: %v", err))
	}

	log.Infof("3. 入库批次 %s 完成：写入 %d/%d", batchID, result.Inserted, result.TotalSent)
	return result, nil
}

// toBrief 把关联分块转换为简要条目（正文截断到 100 rune）。
func toBrief(chunk *model.Chunk) model.ScoredChunkDTO {
	dto := toScoredDTO(chunk, 0, 0)
	dto.Snippet = chunk.Snippet(100)
	return dto
}

func (s *chunkService) Detail(ctx context.Context, chunkID string) (*model.ChunkDetailDTO, error) {
	chunk, err := s.chunkRepo.FindByID(chunkID)
	if err != nil {
		return nil, err
	}

	// 浏览计数失败不影响详情返回
	if err := s.chunkRepo.IncrementViewCount(ctx, chunkID); err != nil {
		log.Warnf("累加分块 %s 浏览量失败: %v", chunkID, err)
	} else {
		chunk.ViewCount++
	}

	related, err := s.chunkRepo.FindRelated(chunk.FilePath, chunkID, relatedLimit)
	if err != nil {
		return nil, err
	}
	similar, err := s.chunkRepo.FindSameCategory(chunk.Category, chunkID, relatedLimit)
	if err != nil {
		return nil, err
	}

	detail := &model.ChunkDetailDTO{
		Chunk:   chunk,
		Related: []model.ScoredChunkDTO{},
		Similar: []model.ScoredChunkDTO{},
	}
	for _, c := range related {
		detail.Related = append(detail.Related, toBrief(c))
	}
	for _, c := range similar {
		detail.Similar = append(detail.Similar, toBrief(c))
	}
	return detail, nil
}

func (s *chunkService) Browse(filter repository.ChunkFilter, sortKey string, page, pageSize int) (*model.BrowseResultDTO, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	chunks, total, err := s.chunkRepo.Browse(filter, sortKey, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	result := &model.BrowseResultDTO{
		Results:  []model.ScoredChunkDTO{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, c := range chunks {
		result.Results = append(result.Results, toScoredDTO(c, 0, 0))
	}
	return result, nil
}

func (s *chunkService) Stats() (*model.StatsDTO, error) {
	total, err := s.chunkRepo.CountAll()
	if err != nil {
		return nil, err
	}
	totalFiles, err := s.chunkRepo.CountDistinctFiles()
	if err != nil {
		return nil, err
	}
	byType, err := s.chunkRepo.CountByType()
	if err != nil {
		return nil, err
	}
	byProject, err := s.chunkRepo.CountByProject(20)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.chunkRepo.Facet("category", 0)
	if err != nil {
		return nil, err
	}
	byStage, err := s.chunkRepo.Facet("doc_stage", 0)
	if err != nil {
		return nil, err
	}
	byOrg, err := s.chunkRepo.CountByOrg(10)
	if err != nil {
		return nil, err
	}
	byYear, err := s.chunkRepo.Facet("doc_year", 0)
	if err != nil {
		return nil, err
	}
	topViewed, err := s.chunkRepo.TopViewed(10)
	if err != nil {
		return nil, err
	}
	lastIndexed, err := s.chunkRepo.LastIndexedAt()
	if err != nil {
		return nil, err
	}

	stats := &model.StatsDTO{
		TotalChunks: total,
		TotalFiles:  totalFiles,
		ByType:      byType,
		ByProject:   byProject,
		ByCategory:  byCategory,
		ByStage:     byStage,
		ByOrg:       byOrg,
		ByYear:      byYear,
		TopViewed:   []model.ScoredChunkDTO{},
	}
	for _, c := range topViewed {
		stats.TopViewed = append(stats.TopViewed, toBrief(c))
	}
	if lastIndexed != nil {
		stats.LastIndexed = lastIndexed.Format(time.RFC3339)
	}
	return stats, nil
}

func (s *chunkService) TagCounts() ([]model.FacetCountDTO, error) {
	rows, err := s.chunkRepo.AllTags()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, raw := range rows {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			// 脏数据跳过
			continue
		}
		for _, t := range tags {
			counts[t]++
		}
	}

	result := make([]model.FacetCountDTO, 0, len(counts))
	for tag, count := range counts {
		result = append(result, model.FacetCountDTO{Value: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result, nil
}

func (s *chunkService) Categories() ([]model.CategoryCountDTO, error) {
	return s.chunkRepo.CountByCategoryPair()
}

func (s *chunkService) Projects() ([]model.ProjectCountDTO, error) {
	return s.chunkRepo.ListProjects()
}

func (s *chunkService) FileTypes() ([]model.FacetCountDTO, error) {
	return s.chunkRepo.Facet("file_type", 0)
}

func (s *chunkService) Orgs() ([]model.OrgCountDTO, error) {
	return s.chunkRepo.CountByOrg(0)
}

func (s *chunkService) Trending(ctx context.Context, limit int) (*model.TrendingDTO, error) {
	if limit <= 0 {
		limit = 10
	}

	result := &model.TrendingDTO{
		Popular:         []model.ScoredChunkDTO{},
		RecentlyIndexed: []model.ScoredChunkDTO{},
	}

	// Redis 榜单优先；不可用或为空时退回数据库的 view_count 排序
	ids, err := s.chunkRepo.TrendingIDs(ctx, limit)
	if err != nil {
		log.Warnf("读取 Redis 热度榜失败，退回数据库排序: %v", err)
		ids = nil
	}
	if len(ids) > 0 {
		chunks, err := s.chunkRepo.FindByIDs(ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*model.Chunk, len(chunks))
		for _, c := range chunks {
			byID[c.ChunkID] = c
		}
		for _, id := range ids {
			if c, ok := byID[id]; ok {
				result.Popular = append(result.Popular, toBrief(c))
			}
		}
	} else {
		chunks, err := s.chunkRepo.TopViewed(limit)
		if err != nil {
			return nil, err
		}
		for _, c := range chunks {
			result.Popular = append(result.Popular, toBrief(c))
		}
	}

	recent, err := s.chunkRepo.RecentlyIndexed(limit)
	if err != nil {
		return nil, err
	}
	for _, c := range recent {
		result.RecentlyIndexed = append(result.RecentlyIndexed, toBrief(c))
	}
	return result, nil
}

func (s *chunkService) Seed(ctx context.Context) (*model.IngestResultDTO, error) {
	demo := s.demoData()
	payload, err := json.Marshal(map[string]interface{}{"chunks": demo})
	if err != nil {
		return nil, err
	}
	return s.Ingest(ctx, demo, payload, "seed")
}

func (s *chunkService) DeleteAll(ctx context.Context) error {
	if err := s.chunkRepo.DeleteAll(); err != nil {
		return err
	}
	if err := es.DeleteAll(ctx, s.esCfg.IndexName); err != nil {
		// 索引清理失败只告警：词法命中在检索时会因文档库缺失被过滤
		log.Warnf("清空 Elasticsearch 索引失败: %v", err)
	}
	log.Info("知识库已清空")
	return nil
}
