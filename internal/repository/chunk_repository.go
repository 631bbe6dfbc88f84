// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"
	"errors"
	"time"

	"knowledge-wiki-go/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrChunkNotFound 表示请求的分块不存在。
var ErrChunkNotFound = errors.New("chunk not found")

// ChunkFilter 描述检索前置的等值/子串过滤条件。
// FileType 与 Category 为等值匹配，Project 与 Tag 为子串匹配（对齐索引器
// 产生的层级 project_path 与 JSON 数组 tags 的存储形态）。
type ChunkFilter struct {
	FileType string
	Project  string
	Category string
	Tag      string
}

// EmbeddingUpdate 是一次向量写回：分块 ID、序列化向量与模型标签。
type EmbeddingUpdate struct {
	ChunkID   string
	Embedding string
	Model     string
}

// ChunkRepository 接口定义了分块（文档库）相关的数据持久化操作。
// 向量列的读写也经由这里：核心只依赖接口，便于测试时替换为内存实现。
type ChunkRepository interface {
	// 入库与清理
	BatchUpsert(chunks []*model.Chunk) error
	DeleteAll() error

	// 单条与关联读取
	FindByID(chunkID string) (*model.Chunk, error)
	FindByIDs(chunkIDs []string) ([]*model.Chunk, error)
	FindRelated(filePath, excludeID string, limit int) ([]*model.Chunk, error)
	FindSameCategory(category, excludeID string, limit int) ([]*model.Chunk, error)
	Browse(filter ChunkFilter, sort string, offset, limit int) ([]*model.Chunk, int64, error)

	// 向量列访问
	FindMissingEmbedding() ([]*model.Chunk, error)
	UpdateEmbeddings(updates []EmbeddingUpdate) error
	FindEmbedded(filter ChunkFilter) ([]*model.Chunk, error)
	GetEmbedding(chunkID string) (string, error)

	// 统计与分面
	CountAll() (int64, error)
	CountEmbedded() (int64, error)
	CountByModel() ([]model.ModelCountDTO, error)
	CountDistinctFiles() (int64, error)
	Facet(column string, limit int) ([]model.FacetCountDTO, error)
	CountByType() ([]model.TypeCountDTO, error)
	CountByProject(limit int) ([]model.ProjectCountDTO, error)
	CountByCategoryPair() ([]model.CategoryCountDTO, error)
	CountByOrg(limit int) ([]model.OrgCountDTO, error)
	ListProjects() ([]model.ProjectCountDTO, error)
	AllTags() ([]string, error)
	TopViewed(limit int) ([]*model.Chunk, error)
	RecentlyIndexed(limit int) ([]*model.Chunk, error)
	LastIndexedAt() (*time.Time, error)

	// 浏览计数与热度榜（Redis ZSet）
	IncrementViewCount(ctx context.Context, chunkID string) error
	TrendingIDs(ctx context.Context, limit int) ([]string, error)
}

// chunkRepository 是 ChunkRepository 接口的 GORM+Redis 实现。
type chunkRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// 热度榜使用的 Redis 键。
const trendingKey = "chunks:views"

// NewChunkRepository 创建一个新的 ChunkRepository 实例。
func NewChunkRepository(db *gorm.DB, redisClient *redis.Client) ChunkRepository {
	return &chunkRepository{db: db, redisClient: redisClient}
}

// BatchUpsert 批量写入分块记录，主键冲突时整行覆盖（幂等重索引）。
// 覆盖时保留既有的向量列：文本未变时不必重新向量化，文本变化后的
// 向量失效由调用方通过重新生成处理。
func (r *chunkRepository) BatchUpsert(chunks []*model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chunk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"file_path", "file_type", "project_path", "doc_title",
			"location_type", "location_value", "location_detail",
			"text", "mtime", "hash", "tags", "category", "sub_category",
			"author", "org", "doc_stage", "doc_year", "summary", "importance",
		}),
	}).CreateInBatches(chunks, 100).Error
}

// DeleteAll 清空分块表。
func (r *chunkRepository) DeleteAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Chunk{}).Error
}

// FindByID 根据分块 ID 查找一条记录。
func (r *chunkRepository) FindByID(chunkID string) (*model.Chunk, error) {
	var chunk model.Chunk
	err := r.db.Where("chunk_id = ?", chunkID).First(&chunk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChunkNotFound
		}
		return nil, err
	}
	return &chunk, nil
}

// FindByIDs 批量查找分块记录（顺序不保证，调用方自行按 ID 重排）。
func (r *chunkRepository) FindByIDs(chunkIDs []string) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	if len(chunkIDs) == 0 {
		return chunks, nil
	}
	err := r.db.Where("chunk_id IN ?", chunkIDs).Find(&chunks).Error
	return chunks, err
}

// FindRelated 查找同一文件内的其他分块，按位置排序。
func (r *chunkRepository) FindRelated(filePath, excludeID string, limit int) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	err := r.db.Where("file_path = ? AND chunk_id != ?", filePath, excludeID).
		Order("location_value asc").Limit(limit).Find(&chunks).Error
	return chunks, err
}

// FindSameCategory 查找同类别的其他分块，按重要度排序。
func (r *chunkRepository) FindSameCategory(category, excludeID string, limit int) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	if category == "" {
		return chunks, nil
	}
	err := r.db.Where("category = ? AND chunk_id != ?", category, excludeID).
		Order("importance desc").Limit(limit).Find(&chunks).Error
	return chunks, err
}

// applyFilter 把过滤条件拼到查询上。过滤发生在打分之前，以约束打分成本。
func applyFilter(db *gorm.DB, filter ChunkFilter) *gorm.DB {
	if filter.FileType != "" {
		db = db.Where("file_type = ?", filter.FileType)
	}
	if filter.Project != "" {
		db = db.Where("project_path LIKE ?", "%"+filter.Project+"%")
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		db = db.Where("tags LIKE ?", "%"+filter.Tag+"%")
	}
	return db
}

// Browse 按过滤条件分页列出分块（不经过全文检索）。
func (r *chunkRepository) Browse(filter ChunkFilter, sort string, offset, limit int) ([]*model.Chunk, int64, error) {
	db := applyFilter(r.db.Model(&model.Chunk{}), filter)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := "mtime desc"
	switch sort {
	case "views":
		orderBy = "view_count desc"
	case "importance":
		orderBy = "importance desc"
	case "title":
		orderBy = "doc_title asc"
	}

	var chunks []*model.Chunk
	err := db.Order(orderBy).Offset(offset).Limit(limit).Find(&chunks).Error
	return chunks, total, err
}

// FindMissingEmbedding 选出所有尚无向量的分块（候选列表）。
func (r *chunkRepository) FindMissingEmbedding() ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	err := r.db.Where("embedding = '' OR embedding IS NULL").Find(&chunks).Error
	return chunks, err
}

// UpdateEmbeddings 在单个事务内写回一批向量。
// 事务粒度即批次粒度：一批失败不影响已提交的此前批次。
func (r *chunkRepository) UpdateEmbeddings(updates []EmbeddingUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&model.Chunk{}).Where("chunk_id = ?", u.ChunkID).
				Updates(map[string]interface{}{
					"embedding":   u.Embedding,
					"embed_model": u.Model,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// FindEmbedded 加载所有已有向量、且满足过滤条件的分块（含向量列）。
func (r *chunkRepository) FindEmbedded(filter ChunkFilter) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	db := r.db.Where("embedding != '' AND embedding IS NOT NULL")
	err := applyFilter(db, filter).Find(&chunks).Error
	return chunks, err
}

// GetEmbedding 返回某个分块的持久化向量字符串；分块不存在时返回 ErrChunkNotFound，
// 向量缺失时返回空字符串（缺失是值，不是错误）。
func (r *chunkRepository) GetEmbedding(chunkID string) (string, error) {
	var chunk model.Chunk
	err := r.db.Select("chunk_id", "embedding").Where("chunk_id = ?", chunkID).First(&chunk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrChunkNotFound
		}
		return "", err
	}
	return chunk.Embedding, nil
}

// CountAll 统计分块总数。
func (r *chunkRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Chunk{}).Count(&count).Error
	return count, err
}

// CountEmbedded 统计已有向量的分块数。
func (r *chunkRepository) CountEmbedded() (int64, error) {
	var count int64
	err := r.db.Model(&model.Chunk{}).
		Where("embedding != '' AND embedding IS NOT NULL").Count(&count).Error
	return count, err
}

// CountByModel 按向量模型标签分组统计。
func (r *chunkRepository) CountByModel() ([]model.ModelCountDTO, error) {
	var rows []model.ModelCountDTO
	err := r.db.Model(&model.Chunk{}).
		Select("embed_model as model, count(*) as count").
		Where("embed_model != ''").
		Group("embed_model").Scan(&rows).Error
	return rows, err
}

// CountDistinctFiles 统计被索引的源文件数。
func (r *chunkRepository) CountDistinctFiles() (int64, error) {
	var count int64
	err := r.db.Model(&model.Chunk{}).Distinct("file_path").Count(&count).Error
	return count, err
}

// Facet 对指定列做分组计数（列名来自固定白名单，由 service 层保证）。
func (r *chunkRepository) Facet(column string, limit int) ([]model.FacetCountDTO, error) {
	var rows []model.FacetCountDTO
	db := r.db.Model(&model.Chunk{}).
		Select(column + " as value, count(*) as count").
		Where(column + " != ''").
		Group(column).Order("count desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Scan(&rows).Error
	return rows, err
}

// CountByType 按文件类型统计分块数与源文件数。
func (r *chunkRepository) CountByType() ([]model.TypeCountDTO, error) {
	var rows []model.TypeCountDTO
	err := r.db.Model(&model.Chunk{}).
		Select("file_type, count(*) as count, count(distinct file_path) as file_count").
		Group("file_type").Order("count desc").Scan(&rows).Error
	return rows, err
}

// CountByProject 按项目统计分块数与源文件数。
func (r *chunkRepository) CountByProject(limit int) ([]model.ProjectCountDTO, error) {
	var rows []model.ProjectCountDTO
	db := r.db.Model(&model.Chunk{}).
		Select("project_path, count(*) as chunk_count, count(distinct file_path) as file_count").
		Group("project_path").Order("chunk_count desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Scan(&rows).Error
	return rows, err
}

// CountByCategoryPair 按类别/子类别组合统计。
func (r *chunkRepository) CountByCategoryPair() ([]model.CategoryCountDTO, error) {
	var rows []model.CategoryCountDTO
	err := r.db.Model(&model.Chunk{}).
		Select("category, sub_category, count(*) as count, count(distinct file_path) as file_count").
		Where("category != ''").
		Group("category, sub_category").Order("count desc").Scan(&rows).Error
	return rows, err
}

// CountByOrg 按机关统计分块数与项目数。
func (r *chunkRepository) CountByOrg(limit int) ([]model.OrgCountDTO, error) {
	var rows []model.OrgCountDTO
	db := r.db.Model(&model.Chunk{}).
		Select("org, count(*) as count, count(distinct project_path) as project_count").
		Where("org != ''").
		Group("org").Order("count desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Scan(&rows).Error
	return rows, err
}

// ListProjects 列出全部项目及其分块数、源文件数与起止年度。
func (r *chunkRepository) ListProjects() ([]model.ProjectCountDTO, error) {
	var rows []model.ProjectCountDTO
	err := r.db.Model(&model.Chunk{}).
		Select("project_path, count(*) as chunk_count, count(distinct file_path) as file_count, min(doc_year) as start_year, max(doc_year) as end_year").
		Group("project_path").Order("project_path asc").Scan(&rows).Error
	return rows, err
}

// LastIndexedAt 返回最近一次入库时间，空库时返回 nil。
func (r *chunkRepository) LastIndexedAt() (*time.Time, error) {
	var last *time.Time
	err := r.db.Model(&model.Chunk{}).Select("max(indexed_at)").Scan(&last).Error
	return last, err
}

// AllTags 返回所有非空的 tags 列原始值，标签计数在 service 层解析聚合。
func (r *chunkRepository) AllTags() ([]string, error) {
	var rows []string
	err := r.db.Model(&model.Chunk{}).
		Where("tags != '' AND tags != '[]'").Pluck("tags", &rows).Error
	return rows, err
}

// TopViewed 返回浏览量最高的分块。
func (r *chunkRepository) TopViewed(limit int) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	err := r.db.Order("view_count desc").Limit(limit).Find(&chunks).Error
	return chunks, err
}

// RecentlyIndexed 返回最近被索引的分块。
func (r *chunkRepository) RecentlyIndexed(limit int) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	err := r.db.Order("indexed_at desc").Limit(limit).Find(&chunks).Error
	return chunks, err
}

// IncrementViewCount 累加分块浏览量：数据库列 +1，同时更新 Redis 热度榜。
// Redis 不可用只降级热度榜，不影响主路径。
func (r *chunkRepository) IncrementViewCount(ctx context.Context, chunkID string) error {
	err := r.db.Model(&model.Chunk{}).Where("chunk_id = ?", chunkID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return err
	}
	if r.redisClient != nil {
		_ = r.redisClient.ZIncrBy(ctx, trendingKey, 1, chunkID).Err()
	}
	return nil
}

// TrendingIDs 从 Redis 热度榜取出浏览量最高的分块 ID（降序）。
func (r *chunkRepository) TrendingIDs(ctx context.Context, limit int) ([]string, error) {
	if r.redisClient == nil {
		return nil, nil
	}
	ids, err := r.redisClient.ZRevRange(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}
