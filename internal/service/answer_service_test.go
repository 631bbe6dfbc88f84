package service

import (
	"context"
	"errors"
	"testing"

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnswerService(repo *fakeChunkRepo, completer *fakeCompleter) AnswerService {
	searchSvc := newTestSearchService(repo, &fakeLexical{})
	return NewAnswerService(searchSvc, completer, config.LLMPromptConfig{})
}

func TestAnswerEmptyQuestion(t *testing.T) {
	svc := newTestAnswerService(&fakeChunkRepo{}, &fakeCompleter{})

	_, err := svc.Answer(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = svc.Answer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAnswerNoContext(t *testing.T) {
	completer := &fakeCompleter{enabled: true, reply: "불필요"}
	svc := newTestAnswerService(&fakeChunkRepo{}, completer)

	answer, err := svc.Answer(context.Background(), "데이터 거버넌스 현황은?")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerModeExtractive, answer.Mode)
	assert.Contains(t, answer.Answer, "관련 문서를 찾을 수 없습니다")
	assert.Empty(t, answer.Sources)
	assert.Empty(t, completer.gotUser, "未命中文档时不得调用生成式服务")
}

func TestAnswerExtractiveFallback(t *testing.T) {
	v := testVectorizer()
	c1 := embeddedChunk(v, "c1", "데이터 거버넌스 체계")
	c1.Summary = "거버넌스 요약"
	c2 := embeddedChunk(v, "c2", "데이터 플랫폼")
	repo := &fakeChunkRepo{chunks: []*model.Chunk{c1, c2}}
	svc := newTestAnswerService(repo, &fakeCompleter{enabled: false})

	answer, err := svc.Answer(context.Background(), "데이터 거버넌스")
	require.NoError(t, err)

	assert.Equal(t, model.AnswerModeExtractive, answer.Mode)
	assert.Contains(t, answer.Answer, "관련 문서 2건을 찾았습니다")
	assert.Contains(t, answer.Answer, "1. **doc-c1**")
	assert.Contains(t, answer.Answer, "거버넌스 요약")
	assert.NotEmpty(t, answer.Hint)
	assert.Empty(t, answer.Model)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "c1", answer.Sources[0].ChunkID)
}

func TestAnswerGenerated(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "c1", "데이터 거버넌스 체계"),
	}}
	completer := &fakeCompleter{enabled: true, reply: "거버넌스 체계가 수립되어 있습니다 [출처1]"}
	svc := newTestAnswerService(repo, completer)

	answer, err := svc.Answer(context.Background(), "데이터 거버넌스 현황은?")
	require.NoError(t, err)

	assert.Equal(t, model.AnswerModeGenerated, answer.Mode)
	assert.Equal(t, "거버넌스 체계가 수립되어 있습니다 [출처1]", answer.Answer)
	assert.Equal(t, "gpt-4o-mini", answer.Model)
	assert.Empty(t, answer.Hint)
	require.Len(t, answer.Sources, 1)

	// 生成式调用必须携带标号上下文与原始问题
	assert.Contains(t, completer.gotUser, "[출처1]")
	assert.Contains(t, completer.gotUser, "데이터 거버넌스 현황은?")
	assert.Contains(t, completer.gotSystem, "출처")
}

func TestAnswerSurfacesLLMError(t *testing.T) {
	v := testVectorizer()
	repo := &fakeChunkRepo{chunks: []*model.Chunk{
		embeddedChunk(v, "c1", "데이터 거버넌스"),
	}}
	completer := &fakeCompleter{enabled: true, err: errors.New("api quota exceeded")}
	svc := newTestAnswerService(repo, completer)

	_, err := svc.Answer(context.Background(), "데이터 거버넌스?")
	require.Error(t, err, "生成失败不做抽取式兜底")
	assert.Contains(t, err.Error(), "api quota exceeded")
}

func TestAnswerContextBlockFormat(t *testing.T) {
	v := testVectorizer()
	c1 := embeddedChunk(v, "c1", "데이터 거버넌스 상세 내용")
	c1.Category = "데이터"
	c1.ProjectPath = "국가중점데이터"
	c1.Tags = `["거버넌스","KPI"]`
	c1.LocationDetail = "Slide 5"
	repo := &fakeChunkRepo{chunks: []*model.Chunk{c1}}
	completer := &fakeCompleter{enabled: true, reply: "ok"}
	svc := newTestAnswerService(repo, completer)

	_, err := svc.Answer(context.Background(), "데이터 거버넌스?")
	require.NoError(t, err)

	assert.Contains(t, completer.gotUser, "[출처1] doc-c1 (PPTX, Slide 5)")
	assert.Contains(t, completer.gotUser, "분류: 데이터 | 프로젝트: 국가중점데이터 | 태그: 거버넌스, KPI")
	assert.Contains(t, completer.gotUser, "내용: 데이터 거버넌스 상세 내용")
}
