package vectorizer

import (
	"math"
	"strings"
)

// Vectorizer 将自由文本映射为固定长度的数值向量。
// 算法：对每个词条做大小写不敏感的非重叠子串计数，计数大于 0 的维度取
// 1+ln(count)（次线性 TF），随后整体做 L2 归一化并把每个分量四舍五入到
// 小数点后 4 位，保证序列化往返后的比较稳定。完全确定性。
type Vectorizer struct {
	vocab   Vocabulary
	lowered []string
}

// New 基于注入的词表创建一个 Vectorizer。
func New(vocab Vocabulary) *Vectorizer {
	lowered := make([]string, len(vocab.Terms))
	for i, term := range vocab.Terms {
		lowered[i] = strings.ToLower(term)
	}
	return &Vectorizer{vocab: vocab, lowered: lowered}
}

// Model 返回向量模型标签，用于标记持久化向量的编码方案版本。
func (v *Vectorizer) Model() string {
	return v.vocab.Model
}

// Dimension 返回产出向量的维度。
func (v *Vectorizer) Dimension() int {
	return len(v.lowered)
}

// Vectorize 把文本编码为 L2 归一化后的向量。
// 文本中不含任何词条时返回全零向量，这不是错误：下游的余弦相似度
// 约定零向量的相似度为 0。
func (v *Vectorizer) Vectorize(text string) []float64 {
	vec := make([]float64, len(v.lowered))
	lower := strings.ToLower(text)

	var norm float64
	for i, term := range v.lowered {
		count := strings.Count(lower, term)
		if count > 0 {
			vec[i] = 1 + math.Log(float64(count))
			norm += vec[i] * vec[i]
		}
	}

	if norm > 0 {
		sqrtNorm := math.Sqrt(norm)
		for i := range vec {
			vec[i] = round4(vec[i] / sqrtNorm)
		}
	}

	return vec
}

// round4 四舍五入到小数点后 4 位。
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
