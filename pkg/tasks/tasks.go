// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// EmbeddingTask represents a request to vectorize newly ingested chunks.
// 入库成功后由生产者发布，消费者扫描缺失向量的分块并补齐。
type EmbeddingTask struct {
	BatchID    string `json:"batch_id"`
	ChunkCount int    `json:"chunk_count"`
	Source     string `json:"source"`
}
