// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"encoding/json"
	"time"
)

// Chunk 对应于数据库中的 'chunks' 表。
// 一个 Chunk 是索引的最小单位：由外部本地索引器从办公文档
// （pptx/pdf/xlsx/csv/ipynb/docx）中抽取的一段文本及其出处元数据。
// Embedding 列保存该分块的持久化向量（扁平 JSON 数值数组），
// EmbedModel 记录生成该向量的编码方案版本标签。
type Chunk struct {
	ChunkID        string `gorm:"type:varchar(100);primaryKey;column:chunk_id" json:"chunk_id"`
	FilePath       string `gorm:"type:varchar(500);not null;index" json:"file_path"`
	FileType       string `gorm:"type:varchar(20);index" json:"file_type"`
	ProjectPath    string `gorm:"type:varchar(255);index" json:"project_path"`
	DocTitle       string `gorm:"type:varchar(255)" json:"doc_title"`
	LocationType   string `gorm:"type:varchar(20)" json:"location_type"`
	LocationValue  string `gorm:"type:varchar(100)" json:"location_value"`
	LocationDetail string `gorm:"type:varchar(255)" json:"location_detail"`
	Text           string `gorm:"type:text" json:"text"`
	MTime          string `gorm:"type:varchar(40);column:mtime" json:"mtime"`
	Hash           string `gorm:"type:varchar(64)" json:"hash"`
	// Tags 以 JSON 数组字符串存储，如 ["거버넌스","KPI"]。
	Tags        string `gorm:"type:text" json:"tags"`
	Category    string `gorm:"type:varchar(50);index" json:"category"`
	SubCategory string `gorm:"type:varchar(50)" json:"sub_category"`
	Author      string `gorm:"type:varchar(100)" json:"author"`
	Org         string `gorm:"type:varchar(100)" json:"org"`
	DocStage    string `gorm:"type:varchar(50)" json:"doc_stage"`
	DocYear     string `gorm:"type:varchar(10)" json:"doc_year"`
	Summary     string `gorm:"type:text" json:"summary"`
	Importance  int    `gorm:"not null;default:50" json:"importance"`
	ViewCount   int64  `gorm:"not null;default:0" json:"view_count"`
	// Embedding 为空字符串表示尚未生成向量。
	Embedding  string    `gorm:"type:mediumtext" json:"-"`
	EmbedModel string    `gorm:"type:varchar(50)" json:"embed_model"`
	IndexedAt  time.Time `gorm:"autoUpdateTime" json:"indexed_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Chunk) TableName() string {
	return "chunks"
}

// TagList 宽松地解析 Tags 列。内容不是合法 JSON 时返回空列表而不是报错，
// 与本地索引器历史上产生过的脏数据兼容。
func (c *Chunk) TagList() []string {
	if c.Tags == "" || c.Tags == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(c.Tags), &tags); err != nil {
		return nil
	}
	return tags
}

// Snippet 返回正文前 n 个字符（按 rune 截断，避免切断多字节韩文）。
func (c *Chunk) Snippet(n int) string {
	runes := []rune(c.Text)
	if len(runes) <= n {
		return c.Text
	}
	return string(runes[:n])
}
