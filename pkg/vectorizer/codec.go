package vectorizer

import (
	"encoding/json"
	"errors"
	"fmt"
)

// 向量在文档库中以扁平 JSON 数值数组持久化，顺序与生成时的词表一致。
// 跨词表版本的兼容性由模型标签负责，编解码层不做语义校验。

// ErrEmptyVector 表示待解码的数据为空（未生成过向量）。
var ErrEmptyVector = errors.New("empty vector data")

// EncodeVector 把向量序列化为持久化形式。
func EncodeVector(vec []float64) (string, error) {
	b, err := json.Marshal(vec)
	if err != nil {
		return "", fmt.Errorf("序列化向量失败: %w", err)
	}
	return string(b), nil
}

// ParseVector 解码一个持久化向量。解码失败由调用方按“缺失向量”处理，
// 绝不作为致命错误向上传播。
func ParseVector(data []byte) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptyVector
	}
	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, fmt.Errorf("解码向量失败: %w", err)
	}
	if len(vec) == 0 {
		return nil, ErrEmptyVector
	}
	return vec, nil
}
