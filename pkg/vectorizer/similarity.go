package vectorizer

import "math"

// CosineSimilarity 计算两个向量的余弦相似度。
// 这是全系统唯一的排序度量：语义检索、相似文档发现、问答召回都经由它，
// 从而保证各处排序口径一致。
//
// 约定：长度不一致（词表配置错位）或任一向量为全零时返回 0，而不是报错，
// 让排序操作对任何输入都是全函数。虽然 Vectorize 产出的向量已归一化，
// 这里仍然除以实际范数，以便对未归一化的外部向量同样正确。
// 由于分量均非负，结果落在 [0,1]。
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
