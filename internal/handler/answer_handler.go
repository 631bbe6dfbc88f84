package handler

import (
	"errors"
	"net/http"

	"knowledge-wiki-go/internal/service"
	"knowledge-wiki-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AnswerHandler 结构体定义了问答相关的处理器。
type AnswerHandler struct {
	answerService service.AnswerService
}

// NewAnswerHandler 创建一个新的 AnswerHandler 实例。
func NewAnswerHandler(answerService service.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

// askRequest 是问答接口的请求体。
type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask 是处理问答请求的 Gin 处理函数。
func (h *AnswerHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question 不能为空"})
		return
	}
	log.Infof("[AnswerHandler] 收到问答请求, question: %s", req.Question)

	answer, err := h.answerService.Answer(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question 不能为空"})
			return
		}
		log.Errorf("[AnswerHandler] 问答服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "答案生成失败"})
		return
	}

	log.Infof("[AnswerHandler] 问答成功, mode: %s, 引用 %d 条来源", answer.Mode, len(answer.Sources))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": answer, "message": "success"})
}
