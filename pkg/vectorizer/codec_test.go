package vectorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCodecRoundTrip(t *testing.T) {
	v := New(testVocab())
	original := v.Vectorize("데이터 거버넌스 데이터 ai")

	encoded, err := EncodeVector(original)
	require.NoError(t, err)

	decoded, err := ParseVector([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, original, decoded, "分量 4 位小数截断保证往返无损")
}

func TestParseVectorEmpty(t *testing.T) {
	_, err := ParseVector(nil)
	assert.ErrorIs(t, err, ErrEmptyVector)

	_, err = ParseVector([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyVector)

	_, err = ParseVector([]byte("[]"))
	assert.ErrorIs(t, err, ErrEmptyVector)
}

func TestParseVectorMalformed(t *testing.T) {
	_, err := ParseVector([]byte("not-json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyVector)

	_, err = ParseVector([]byte(`{"a":1}`))
	assert.Error(t, err)
}
