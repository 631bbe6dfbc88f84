// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "encoding/json"

// ChunkInput 是本地索引器批量入库时的单条分块负载（snake_case 与索引器对齐）。
type ChunkInput struct {
	ChunkID        string   `json:"chunk_id" binding:"required"`
	FilePath       string   `json:"file_path" binding:"required"`
	FileType       string   `json:"file_type"`
	ProjectPath    string   `json:"project_path"`
	DocTitle       string   `json:"doc_title"`
	LocationType   string   `json:"location_type"`
	LocationValue  string   `json:"location_value"`
	LocationDetail string   `json:"location_detail"`
	Text           string   `json:"text"`
	MTime          string   `json:"mtime"`
	Hash           string   `json:"hash"`
	Tags           []string `json:"tags"`
	Category       string   `json:"category"`
	SubCategory    string   `json:"sub_category"`
	Author         string   `json:"author"`
	Org            string   `json:"org"`
	DocStage       string   `json:"doc_stage"`
	DocYear        string   `json:"doc_year"`
	Summary        string   `json:"summary"`
	Importance     int      `json:"importance"`
	ViewCount      int64    `json:"view_count"`
}

// ToChunk 把入库负载转换为持久化模型。缺省重要度为 50，标签序列化为 JSON 数组。
func (in *ChunkInput) ToChunk() *Chunk {
	tags := "[]"
	if len(in.Tags) > 0 {
		if b, err := json.Marshal(in.Tags); err == nil {
			tags = string(b)
		}
	}
	importance := in.Importance
	if importance == 0 {
		importance = 50
	}
	return &Chunk{
		ChunkID:        in.ChunkID,
		FilePath:       in.FilePath,
		FileType:       in.FileType,
		ProjectPath:    in.ProjectPath,
		DocTitle:       in.DocTitle,
		LocationType:   in.LocationType,
		LocationValue:  in.LocationValue,
		LocationDetail: in.LocationDetail,
		Text:           in.Text,
		MTime:          in.MTime,
		Hash:           in.Hash,
		Tags:           tags,
		Category:       in.Category,
		SubCategory:    in.SubCategory,
		Author:         in.Author,
		Org:            in.Org,
		DocStage:       in.DocStage,
		DocYear:        in.DocYear,
		Summary:        in.Summary,
		Importance:     importance,
		ViewCount:      in.ViewCount,
	}
}

// ScoredChunkDTO 定义了返回给前端的单条检索结果。
// Similarity 是余弦相似度（语义检索），Score 是 Elasticsearch 的词法相关度。
type ScoredChunkDTO struct {
	ChunkID        string   `json:"chunkId"`
	FilePath       string   `json:"filePath"`
	FileType       string   `json:"fileType"`
	ProjectPath    string   `json:"projectPath"`
	DocTitle       string   `json:"docTitle"`
	LocationDetail string   `json:"locationDetail"`
	Snippet        string   `json:"snippet"`
	Tags           []string `json:"tags"`
	Category       string   `json:"category"`
	SubCategory    string   `json:"subCategory"`
	Org            string   `json:"org"`
	DocStage       string   `json:"docStage"`
	DocYear        string   `json:"docYear"`
	Summary        string   `json:"summary"`
	Importance     int      `json:"importance"`
	ViewCount      int64    `json:"viewCount"`
	Similarity     float64  `json:"similarity,omitempty"`
	Score          float64  `json:"score,omitempty"`
}

// SemanticSearchResult 定义了语义检索的完整响应。
// Total 是截断前的候选数（供分页 UI 使用）；Hint 仅在库中尚无任何向量时给出。
type SemanticSearchResult struct {
	Results   []ScoredChunkDTO `json:"results"`
	Total     int              `json:"total"`
	Query     string           `json:"query"`
	Model     string           `json:"model"`
	Threshold float64          `json:"threshold"`
	Hint      string           `json:"hint,omitempty"`
}

// AnswerSourceDTO 是问答答案的单条引用来源。
// Similarity 与 LexicalScore 二者必居其一：语义召回的分块带相似度，
// 仅由词法检索召回的分块带 Elasticsearch 相关度。
type AnswerSourceDTO struct {
	ChunkID        string  `json:"chunkId"`
	DocTitle       string  `json:"docTitle"`
	FileType       string  `json:"fileType"`
	FilePath       string  `json:"filePath"`
	LocationDetail string  `json:"locationDetail"`
	Category       string  `json:"category"`
	ProjectPath    string  `json:"projectPath"`
	Summary        string  `json:"summary"`
	Similarity     float64 `json:"similarity,omitempty"`
	LexicalScore   float64 `json:"lexicalScore,omitempty"`
}

// 答案模式：generated 表示由生成式服务产出，extractive 表示抽取式降级。
const (
	AnswerModeGenerated  = "generated"
	AnswerModeExtractive = "extractive"
)

// AnswerDTO 定义了问答接口的完整响应。
// 无论哪种模式，Sources 始终携带全部召回分块，供前端渲染引用。
type AnswerDTO struct {
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Sources  []AnswerSourceDTO `json:"sources"`
	Mode     string            `json:"mode"`
	Model    string            `json:"model,omitempty"`
	Hint     string            `json:"hint,omitempty"`
}

// ModelCountDTO 统计某个向量模型标签下的分块数量。
type ModelCountDTO struct {
	Model string `json:"model"`
	Count int64  `json:"count"`
}

// EmbeddingStatsDTO 定义了向量覆盖率统计。
type EmbeddingStatsDTO struct {
	TotalChunks    int64           `json:"totalChunks"`
	WithEmbeddings int64           `json:"withEmbeddings"`
	Coverage       int             `json:"coverage"`
	Models         []ModelCountDTO `json:"models"`
}

// FacetCountDTO 是分面统计的通用条目（类别、阶段、年度、文件类型、标签）。
type FacetCountDTO struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// TypeCountDTO 按文件类型统计分块数与源文件数。
type TypeCountDTO struct {
	FileType  string `json:"fileType"`
	Count     int64  `json:"count"`
	FileCount int64  `json:"fileCount"`
}

// ProjectCountDTO 按项目统计分块数、源文件数与起止年度。
type ProjectCountDTO struct {
	ProjectPath string `json:"projectPath"`
	ChunkCount  int64  `json:"chunkCount"`
	FileCount   int64  `json:"fileCount"`
	StartYear   string `json:"startYear,omitempty"`
	EndYear     string `json:"endYear,omitempty"`
}

// CategoryCountDTO 按类别/子类别统计。
type CategoryCountDTO struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Count       int64  `json:"count"`
	FileCount   int64  `json:"fileCount"`
}

// OrgCountDTO 按机关统计分块数与项目数。
type OrgCountDTO struct {
	Org          string `json:"org"`
	Count        int64  `json:"count"`
	ProjectCount int64  `json:"projectCount"`
}

// StatsDTO 定义了知识库总览统计的响应。
type StatsDTO struct {
	TotalChunks int64             `json:"totalChunks"`
	TotalFiles  int64             `json:"totalFiles"`
	ByType      []TypeCountDTO    `json:"byType"`
	ByProject   []ProjectCountDTO `json:"byProject"`
	ByCategory  []FacetCountDTO   `json:"byCategory"`
	ByStage     []FacetCountDTO   `json:"byStage"`
	ByOrg       []OrgCountDTO     `json:"byOrg"`
	ByYear      []FacetCountDTO   `json:"byYear"`
	TopViewed   []ScoredChunkDTO  `json:"topViewed"`
	LastIndexed string            `json:"lastIndexed,omitempty"`
}

// TrendingDTO 定义了热度榜响应：浏览最多与最近入库两个列表。
type TrendingDTO struct {
	Popular         []ScoredChunkDTO `json:"popular"`
	RecentlyIndexed []ScoredChunkDTO `json:"recentlyIndexed"`
}

// ChunkDetailDTO 定义了分块详情响应：分块本体加同文件与同类别的关联分块。
type ChunkDetailDTO struct {
	Chunk   *Chunk           `json:"chunk"`
	Related []ScoredChunkDTO `json:"related"`
	Similar []ScoredChunkDTO `json:"similar"`
}

// BrowseResultDTO 定义了分页浏览的响应。
type BrowseResultDTO struct {
	Results  []ScoredChunkDTO `json:"results"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// IngestResultDTO 定义了批量入库接口的响应。
// Errors 携带失败批次的描述；部分失败不是错误，Inserted 是实际写入的数量。
type IngestResultDTO struct {
	Inserted  int      `json:"inserted"`
	Errors    []string `json:"errors"`
	TotalSent int      `json:"totalSent"`
}
