// Package service 实现了应用的核心业务逻辑。
package service

import (
	"context"
	"math"
	"strings"

	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/pkg/log"
	"knowledge-wiki-go/pkg/tasks"
	"knowledge-wiki-go/pkg/vectorizer"
)

// 向量写回的批次大小。一个批次一个事务，批内全成或全弃。
const embeddingBatchSize = 10

// EmbeddingService 接口定义了向量生成与覆盖率统计的业务逻辑。
type EmbeddingService interface {
	// GenerateMissing 为所有尚无向量的分块生成并写回向量，返回写回数量。
	// 重复调用是幂等的：已有向量的分块不会被重算。
	GenerateMissing(ctx context.Context) (int, error)
	// Stats 返回向量覆盖率统计。
	Stats() (*model.EmbeddingStatsDTO, error)
	// Process 实现 kafka.TaskProcessor，入库完成后异步补齐向量。
	Process(ctx context.Context, task tasks.EmbeddingTask) error
	// Model 与 Dimension 暴露当前编码方案的标签与维度。
	Model() string
	Dimension() int
}

type embeddingService struct {
	chunkRepo repository.ChunkRepository
	vec       *vectorizer.Vectorizer
}

// NewEmbeddingService 创建一个新的 EmbeddingService 实例。
func NewEmbeddingService(chunkRepo repository.ChunkRepository, vec *vectorizer.Vectorizer) EmbeddingService {
	return &embeddingService{chunkRepo: chunkRepo, vec: vec}
}

// combineText 把标题、类别、标签、项目路径与正文拼成编码输入。
// 元数据在前，让标题/标签中的词参与匹配，提升短查询的召回。
func combineText(chunk *model.Chunk) string {
	parts := []string{
		chunk.DocTitle,
		chunk.Category,
		strings.Join(chunk.TagList(), " "),
		chunk.ProjectPath,
		chunk.Text,
	}
	return strings.Join(parts, " ")
}

func (s *embeddingService) GenerateMissing(ctx context.Context) (int, error) {
	// 1. 找出所有缺失向量的分块
	chunks, err := s.chunkRepo.FindMissingEmbedding()
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		log.Info("所有分块均已有向量，无需生成")
		return 0, nil
	}
	log.Infof("1. 发现 %d 个缺失向量的分块，开始生成 (model=%s, dims=%d)",
		len(chunks), s.vec.Model(), s.vec.Dimension())

	// 2. 分批向量化并写回，单批失败只丢弃该批
	updated := 0
	for start := 0; start < len(chunks); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		updates := make([]repository.EmbeddingUpdate, 0, len(batch))
		for _, chunk := range batch {
			vec := s.vec.Vectorize(combineText(chunk))
			encoded, err := vectorizer.EncodeVector(vec)
			if err != nil {
				log.Errorf("序列化分块 %s 的向量失败: %v", chunk.ChunkID, err)
				continue
			}
			updates = append(updates, repository.EmbeddingUpdate{
				ChunkID:   chunk.ChunkID,
				Embedding: encoded,
				Model:     s.vec.Model(),
			})
		}

		if err := s.chunkRepo.UpdateEmbeddings(updates); err != nil {
			log.Errorf("写回向量批次失败 (offset=%d, size=%d): %v", start, len(updates), err)
			continue
		}
		updated += len(updates)
	}

	log.Infof("2. 向量生成完成，共写回 %d 个分块", updated)
	return updated, nil
}

func (s *embeddingService) Stats() (*model.EmbeddingStatsDTO, error) {
	total, err := s.chunkRepo.CountAll()
	if err != nil {
		return nil, err
	}
	embedded, err := s.chunkRepo.CountEmbedded()
	if err != nil {
		return nil, err
	}
	models, err := s.chunkRepo.CountByModel()
	if err != nil {
		return nil, err
	}

	coverage := 0
	if total > 0 {
		// 四舍五入到最近的整数百分比
		coverage = int(math.Round(float64(embedded) * 100 / float64(total)))
	}
	return &model.EmbeddingStatsDTO{
		TotalChunks:    total,
		WithEmbeddings: embedded,
		Coverage:       coverage,
		Models:         models,
	}, nil
}

func (s *embeddingService) Model() string {
	return s.vec.Model()
}

func (s *embeddingService) Dimension() int {
	return s.vec.Dimension()
}

// Process 消费入库事件：无论批次里写入了多少分块，都做一次全量缺失扫描。
// 任务本身只是触发器，重复消费不会产生重复向量。
func (s *embeddingService) Process(ctx context.Context, task tasks.EmbeddingTask) error {
	log.Infof("收到入库批次 %s (来源 %s, %d 个分块)，触发向量补齐",
		task.BatchID, task.Source, task.ChunkCount)
	_, err := s.GenerateMissing(ctx)
	return err
}
