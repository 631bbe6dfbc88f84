// Package service 实现了应用的核心业务逻辑。
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knowledge-wiki-go/internal/config"
	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/pkg/llm"
	"knowledge-wiki-go/pkg/log"
)

// ErrEmptyQuestion 表示问答请求的问题为空。
var ErrEmptyQuestion = errors.New("empty question")

// 上下文中每个分块正文的截断长度（rune）。
const contextTextLen = 500

// 抽取式答案中每条摘要的截断长度（rune）。
const extractiveSummaryLen = 150

// 内置的韩文系统提示：要求基于上下文作答并标注 [출처N] 引用。
const defaultSystemPrompt = `당신은 컨설팅 산출물 지식 검색 시스템의 AI 어시스턴트입니다.
주어진 문서 컨텍스트를 기반으로 질문에 답변하세요.
답변 시 반드시 출처([출처N])를 명시하세요.
한국어로 답변하세요. 간결하되 핵심 정보를 빠뜨리지 마세요.
컨텍스트에 없는 내용은 추측하지 말고 "관련 정보가 없습니다"라고 답하세요.`

// 未命中任何文档时的答案文本。
const defaultNoResultText = "관련 문서를 찾을 수 없습니다. 다른 키워드로 질문해 보세요."

// 抽取式答案末尾与 hint 字段的提示。
const extractiveFooter = "\n\n*AI 답변을 활성화하려면 OpenAI API 키를 설정하세요.*"
const extractiveHint = "Set OPENAI_API_KEY for AI-powered answers"

// AnswerService 接口定义了问答合成的业务逻辑。
type AnswerService interface {
	// Answer 对问题执行混合检索并合成答案。
	// 配置了生成式服务时走 generated 模式，否则走 extractive 降级。
	Answer(ctx context.Context, question string) (*model.AnswerDTO, error)
}

type answerService struct {
	searchService SearchService
	completer     llm.Client
	promptCfg     config.LLMPromptConfig
}

// NewAnswerService 创建一个新的 AnswerService 实例。
func NewAnswerService(searchService SearchService, completer llm.Client, promptCfg config.LLMPromptConfig) AnswerService {
	return &answerService{searchService: searchService, completer: completer, promptCfg: promptCfg}
}

// orDash 空字符串显示为 '-'（上下文里的元数据占位）。
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateRunes 按 rune 截断，避免切断多字节韩文。
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// buildContext 把召回的分块拼成带 [출처N] 标号的上下文块。
func buildContext(context []ScoredChunk) string {
	entries := make([]string, 0, len(context))
	for i, sc := range context {
		c := sc.Chunk
		entry := fmt.Sprintf("[출처%d] %s (%s, %s)\n분류: %s | 프로젝트: %s | 태그: %s\n내용: %s",
			i+1, c.DocTitle, strings.ToUpper(c.FileType), c.LocationDetail,
			orDash(c.Category), orDash(c.ProjectPath), strings.Join(c.TagList(), ", "),
			truncateRunes(c.Text, contextTextLen))
		entries = append(entries, entry)
	}
	return strings.Join(entries, "\n\n")
}

// toSources 把召回结果转换为引用来源列表。
func toSources(context []ScoredChunk) []model.AnswerSourceDTO {
	sources := make([]model.AnswerSourceDTO, 0, len(context))
	for _, sc := range context {
		c := sc.Chunk
		sources = append(sources, model.AnswerSourceDTO{
			ChunkID:        c.ChunkID,
			DocTitle:       c.DocTitle,
			FileType:       c.FileType,
			FilePath:       c.FilePath,
			LocationDetail: c.LocationDetail,
			Category:       c.Category,
			ProjectPath:    c.ProjectPath,
			Summary:        c.Summary,
			Similarity:     sc.Similarity,
			LexicalScore:   sc.LexicalScore,
		})
	}
	return sources
}

func (s *answerService) systemPrompt() string {
	if s.promptCfg.Rules != "" {
		return s.promptCfg.Rules
	}
	return defaultSystemPrompt
}

func (s *answerService) noResultText() string {
	if s.promptCfg.NoResultText != "" {
		return s.promptCfg.NoResultText
	}
	return defaultNoResultText
}

func (s *answerService) Answer(ctx context.Context, question string) (*model.AnswerDTO, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	// 1. 混合检索召回上下文
	context, err := s.searchService.RetrieveContext(ctx, question)
	if err != nil {
		return nil, err
	}
	log.Infof("1. 问答检索完成，召回 %d 个分块", len(context))

	// 2. 未命中任何文档：不调用生成式服务，直接给出无结果答案
	if len(context) == 0 {
		return &model.AnswerDTO{
			Question: question,
			Answer:   s.noResultText(),
			Sources:  []model.AnswerSourceDTO{},
			Mode:     model.AnswerModeExtractive,
		}, nil
	}

	sources := toSources(context)

	// 3. 生成式路径：答案必须以给定上下文为依据
	if s.completer != nil && s.completer.Enabled() {
		userPrompt := fmt.Sprintf("다음 문서 컨텍스트를 기반으로 질문에 답변하세요.\n\n%s\n\n질문: %s",
			buildContext(context), question)

		answer, err := s.completer.Complete(ctx, s.systemPrompt(), userPrompt)
		if err != nil {
			// 生成失败不做抽取式兜底，把错误交给调用方处置
			log.Errorf("生成式答案失败: %v", err)
			return nil, err
		}
		log.Info("2. 生成式答案合成完成")
		return &model.AnswerDTO{
			Question: question,
			Answer:   answer,
			Sources:  sources,
			Mode:     model.AnswerModeGenerated,
			Model:    s.completer.ModelName(),
		}, nil
	}

	// 4. 抽取式降级：用召回分块的摘要拼出编号列表
	entries := make([]string, 0, len(context))
	for i, sc := range context {
		c := sc.Chunk
		summary := c.Summary
		if summary == "" {
			summary = truncateRunes(c.Text, extractiveSummaryLen)
		}
		entries = append(entries, fmt.Sprintf("%d. **%s** (%s, %s)\n   %s",
			i+1, c.DocTitle, strings.ToUpper(c.FileType), c.LocationDetail, summary))
	}
	answer := fmt.Sprintf("관련 문서 %d건을 찾았습니다.\n\n", len(context)) +
		strings.Join(entries, "\n\n") + extractiveFooter

	log.Info("2. 抽取式答案合成完成")
	return &model.AnswerDTO{
		Question: question,
		Answer:   answer,
		Sources:  sources,
		Mode:     model.AnswerModeExtractive,
		Hint:     extractiveHint,
	}, nil
}
