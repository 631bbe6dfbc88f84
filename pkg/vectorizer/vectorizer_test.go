package vectorizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVocab() Vocabulary {
	return Vocabulary{Model: "test-3", Terms: []string{"데이터", "거버넌스", "ai"}}
}

func TestVectorizeDimensionAndDeterminism(t *testing.T) {
	v := New(testVocab())
	assert.Equal(t, 3, v.Dimension())
	assert.Equal(t, "test-3", v.Model())

	a := v.Vectorize("데이터 거버넌스 체계")
	b := v.Vectorize("데이터 거버넌스 체계")
	assert.Equal(t, a, b, "同一文本必须产出完全相同的向量")
	assert.Len(t, a, 3)
}

func TestVectorizeUnitNorm(t *testing.T) {
	v := New(testVocab())
	vec := v.Vectorize("데이터 거버넌스 데이터 AI")

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	// 分量四舍五入到 4 位小数，范数允许微小偏差
	assert.InDelta(t, 1.0, norm, 0.001)
}

func TestVectorizeZeroWhenNoTermsMatch(t *testing.T) {
	v := New(testVocab())
	vec := v.Vectorize("전혀 무관한 문장")
	for i, x := range vec {
		assert.Zerof(t, x, "维度 %d 应为 0", i)
	}
}

func TestVectorizeEmptyText(t *testing.T) {
	v := New(testVocab())
	vec := v.Vectorize("")
	require.Len(t, vec, 3)
	assert.Equal(t, []float64{0, 0, 0}, vec)
}

func TestVectorizeCaseInsensitive(t *testing.T) {
	v := New(testVocab())
	assert.Equal(t, v.Vectorize("AI 전략"), v.Vectorize("ai 전략"))
}

func TestVectorizeSublinearTF(t *testing.T) {
	v := New(testVocab())

	// "데이터" 出现两次、"거버넌스" 一次：归一化前的权重比应为 (1+ln2)/1
	vec := v.Vectorize("데이터 거버넌스 데이터")
	require.NotZero(t, vec[0])
	require.NotZero(t, vec[1])
	assert.Zero(t, vec[2])

	ratio := vec[0] / vec[1]
	assert.InDelta(t, 1+math.Log(2), ratio, 0.001, "词频翻倍时权重应呈次线性增长")
	assert.Less(t, ratio, 2.0)
}

func TestVectorizeComponentsRounded(t *testing.T) {
	v := New(testVocab())
	vec := v.Vectorize("데이터 거버넌스 ai 데이터")
	for _, x := range vec {
		assert.Equal(t, round4(x), x, "每个分量必须恰好是 4 位小数")
	}
}

func TestDefaultVocabulary(t *testing.T) {
	vocab := Default()
	assert.Equal(t, DefaultModel, vocab.Model)
	assert.NotEmpty(t, vocab.Terms)

	// 内置词表不允许重复词条
	seen := make(map[string]bool)
	for _, term := range vocab.Terms {
		assert.Falsef(t, seen[term], "词条 %q 重复", term)
		seen[term] = true
	}
}
