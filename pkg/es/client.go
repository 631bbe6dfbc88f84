// Package es 提供了与 Elasticsearch 交互的客户端功能。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ESClient *elasticsearch.Client

// Hit 是词法检索的单条命中：分块 ID 与 Elasticsearch 相关度得分。
type Hit struct {
	ChunkID string
	Score   float64
}

// SearchFilter 是词法检索的可选过滤条件，零值字段不参与过滤。
type SearchFilter struct {
	FileType string
	Category string
	Project  string
	Tag      string
}

// esDocument 是写入索引的文档形态。向量不进索引，词法检索只覆盖文本列，
// 语义打分由文档库中的持久化向量承担。
type esDocument struct {
	ChunkID     string   `json:"chunk_id"`
	DocTitle    string   `json:"doc_title"`
	Text        string   `json:"text"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	ProjectPath string   `json:"project_path"`
	FileType    string   `json:"file_type"`
}

// InitES 初始化 Elasticsearch 客户端
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

// createIndexIfNotExists 检查索引是否存在，如果不存在则创建它
func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("检查索引是否存在时出错: %v", err)
		return err
	}
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("检查索引 '%s' 是否存在时收到意外的状态码: %d", indexName, res.StatusCode)
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	// 使用 nori 韩文分词器。正文与标题参与全文检索，
	// 类别/项目等保持 keyword 以便精确过滤。
	mapping := `{
		"mappings": {
			"properties": {
				"chunk_id": { "type": "keyword" },
				"doc_title": {
					"type": "text",
					"analyzer": "nori"
				},
				"text": {
					"type": "text",
					"analyzer": "nori"
				},
				"summary": {
					"type": "text",
					"analyzer": "nori"
				},
				"tags": { "type": "text" },
				"category": { "type": "keyword" },
				"project_path": { "type": "keyword" },
				"file_type": { "type": "keyword" }
			}
		}
	}`

	res, err = ESClient.Indices.Create(
		indexName,
		ESClient.Indices.Create.WithBody(strings.NewReader(mapping)),
	)

	if err != nil {
		log.Errorf("创建索引 '%s' 失败: %v", indexName, err)
		return err
	}
	if res.IsError() {
		log.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", indexName, res.String())
		return errors.New("创建索引时 Elasticsearch 返回错误")
	}

	log.Infof("索引 '%s' 创建成功", indexName)
	return nil
}

// IndexChunks 把一批分块批量写入 Elasticsearch（按 chunk_id 覆盖）。
func IndexChunks(ctx context.Context, indexName string, chunks []*model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, chunk := range chunks {
		meta := fmt.Sprintf(`{"index":{"_id":%q}}`, chunk.ChunkID)
		doc := esDocument{
			ChunkID:     chunk.ChunkID,
			DocTitle:    chunk.DocTitle,
			Text:        chunk.Text,
			Summary:     chunk.Summary,
			Tags:        chunk.TagList(),
			Category:    chunk.Category,
			ProjectPath: chunk.ProjectPath,
			FileType:    chunk.FileType,
		}
		docBytes, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	req := esapi.BulkRequest{
		Index:   indexName,
		Body:    bytes.NewReader(buf.Bytes()),
		Refresh: "true",
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("批量索引分块到 Elasticsearch 出错: %s", res.String())
		return errors.New("failed to bulk index chunks")
	}
	return nil
}

// Search 对索引执行词法全文检索，返回命中分块 ID 及相关度得分。
func Search(ctx context.Context, indexName, query string, filter SearchFilter, size int) ([]Hit, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"doc_title^3", "summary^2", "text", "tags^2"},
			},
		},
	}

	var filters []map[string]interface{}
	if filter.FileType != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"file_type": filter.FileType},
		})
	}
	if filter.Category != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category": filter.Category},
		})
	}
	if filter.Project != "" {
		// project_path 是 keyword，做包含匹配
		filters = append(filters, map[string]interface{}{
			"wildcard": map[string]interface{}{"project_path": "*" + filter.Project + "*"},
		})
	}
	if filter.Tag != "" {
		filters = append(filters, map[string]interface{}{
			"match": map[string]interface{}{"tags": filter.Tag},
		})
	}

	boolQuery := map[string]interface{}{"must": must}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	searchBody := map[string]interface{}{
		"size":    size,
		"_source": []string{"chunk_id"},
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
	bodyBytes, err := json.Marshal(searchBody)
	if err != nil {
		return nil, err
	}

	res, err := ESClient.Search(
		ESClient.Search.WithContext(ctx),
		ESClient.Search.WithIndex(indexName),
		ESClient.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("词法检索出错: %s", res.String())
		return nil, errors.New("failed to search chunks")
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64 `json:"_score"`
				Source struct {
					ChunkID string `json:"chunk_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, Hit{ChunkID: h.Source.ChunkID, Score: h.Score})
	}
	return hits, nil
}

// DeleteAll 清空索引中的全部文档（知识库重置时使用）。
func DeleteAll(ctx context.Context, indexName string) error {
	body := strings.NewReader(`{"query":{"match_all":{}}}`)
	res, err := ESClient.DeleteByQuery([]string{indexName}, body,
		ESClient.DeleteByQuery.WithContext(ctx),
		ESClient.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("清空索引 '%s' 出错: %s", indexName, res.String())
		return errors.New("failed to delete documents")
	}
	return nil
}
