package vectorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilaritySelf(t *testing.T) {
	v := New(testVocab())
	vec := v.Vectorize("데이터 거버넌스")
	assert.InDelta(t, 1.0, CosineSimilarity(vec, vec), 0.001)
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	v := New(testVocab())
	a := v.Vectorize("데이터 플랫폼")
	b := v.Vectorize("데이터 거버넌스 ai")
	assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{0, 1, 0}
	assert.Zero(t, CosineSimilarity(a, b))
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{0.5, 0.5, 0.7}
	assert.Zero(t, CosineSimilarity(a, b))
	assert.Zero(t, CosineSimilarity(b, a))
}

func TestCosineSimilarityLengthMismatch(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{1, 0, 0}
	assert.Zero(t, CosineSimilarity(a, b), "维度不一致的向量不可比较，约定为 0")
}

func TestCosineSimilarityEmpty(t *testing.T) {
	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity([]float64{}, []float64{}))
}

func TestCosineSimilarityRange(t *testing.T) {
	v := New(testVocab())
	texts := []string{"데이터", "거버넌스 ai", "데이터 거버넌스 ai 데이터", "무관한 텍스트"}
	for _, ta := range texts {
		for _, tb := range texts {
			sim := CosineSimilarity(v.Vectorize(ta), v.Vectorize(tb))
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0001)
		}
	}
}
