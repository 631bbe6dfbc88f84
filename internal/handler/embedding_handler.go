package handler

import (
	"net/http"

	"knowledge-wiki-go/internal/service"
	"knowledge-wiki-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler 结构体定义了向量生成与覆盖率相关的处理器。
type EmbeddingHandler struct {
	embeddingService service.EmbeddingService
}

// NewEmbeddingHandler 创建一个新的 EmbeddingHandler 实例。
func NewEmbeddingHandler(embeddingService service.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{
		embeddingService: embeddingService,
	}
}

// Generate 为所有缺失向量的分块生成向量。
func (h *EmbeddingHandler) Generate(c *gin.Context) {
	log.Infof("[EmbeddingHandler] 收到向量生成请求")
	count, err := h.embeddingService.GenerateMissing(c.Request.Context())
	if err != nil {
		log.Errorf("[EmbeddingHandler] 向量生成失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "向量生成失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{
		"count":      count,
		"model":      h.embeddingService.Model(),
		"dimensions": h.embeddingService.Dimension(),
	}, "message": "success"})
}

// Stats 返回向量覆盖率统计。
func (h *EmbeddingHandler) Stats(c *gin.Context) {
	stats, err := h.embeddingService.Stats()
	if err != nil {
		log.Errorf("[EmbeddingHandler] 覆盖率统计失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "覆盖率统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": stats, "message": "success"})
}
