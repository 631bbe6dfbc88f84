package handler

import (
	"errors"
	"net/http"
	"strconv"

	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/internal/service"
	"knowledge-wiki-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 结构体定义了检索相关的处理器。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// parseFilter 从查询参数解析检索过滤条件。
func parseFilter(c *gin.Context) repository.ChunkFilter {
	return repository.ChunkFilter{
		FileType: c.Query("type"),
		Project:  c.Query("project"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}
}

// Lexical 是处理词法全文检索请求的 Gin 处理函数。
func (h *SearchHandler) Lexical(c *gin.Context) {
	query := c.Query("q")
	log.Infof("[SearchHandler] 收到词法检索请求, q: %s", query)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	result, err := h.searchService.Lexical(c.Request.Context(), query, parseFilter(c), limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "查询参数 q 不能为空"})
			return
		}
		log.Errorf("[SearchHandler] 词法检索服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "检索失败"})
		return
	}

	log.Infof("[SearchHandler] 词法检索成功, q: '%s', 返回 %d 条结果", query, len(result.Results))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// Semantic 是处理语义检索请求的 Gin 处理函数。
func (h *SearchHandler) Semantic(c *gin.Context) {
	query := c.Query("q")
	log.Infof("[SearchHandler] 收到语义检索请求, q: %s", query)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "0"), 64)
	if err != nil || threshold < 0 {
		threshold = 0
	}

	result, err := h.searchService.SemanticSearch(c.Request.Context(), query, parseFilter(c), threshold, limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "查询参数 q 不能为空"})
			return
		}
		log.Errorf("[SearchHandler] 语义检索服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "检索失败"})
		return
	}

	log.Infof("[SearchHandler] 语义检索成功, q: '%s', 候选 %d 条", query, result.Total)
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// Similar 是处理相似分块发现请求的 Gin 处理函数。
func (h *SearchHandler) Similar(c *gin.Context) {
	chunkID := c.Param("chunkId")
	log.Infof("[SearchHandler] 收到相似分块请求, chunkId: %s", chunkID)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	result, err := h.searchService.Similar(c.Request.Context(), chunkID, limit)
	if err != nil {
		if errors.Is(err, repository.ErrChunkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "分块不存在"})
			return
		}
		log.Errorf("[SearchHandler] 相似分块服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "检索失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}
