package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"knowledge-wiki-go/internal/model"
	"knowledge-wiki-go/internal/repository"
	"knowledge-wiki-go/internal/service"
	"knowledge-wiki-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ChunkHandler 结构体定义了分块入库与浏览相关的处理器。
type ChunkHandler struct {
	chunkService service.ChunkService
}

// NewChunkHandler 创建一个新的 ChunkHandler 实例。
func NewChunkHandler(chunkService service.ChunkService) *ChunkHandler {
	return &ChunkHandler{
		chunkService: chunkService,
	}
}

// ingestRequest 是批量入库接口的请求体。
type ingestRequest struct {
	Chunks []model.ChunkInput `json:"chunks" binding:"required"`
}

// Ingest 是处理批量入库请求的 Gin 处理函数。
func (h *ChunkHandler) Ingest(c *gin.Context) {
	// 先留存原始负载用于归档，再交给绑定器解析
	rawPayload, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(rawPayload))

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Chunks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chunks 不能为空"})
		return
	}
	log.Infof("[ChunkHandler] 收到批量入库请求, %d 个分块", len(req.Chunks))

	result, err := h.chunkService.Ingest(c.Request.Context(), req.Chunks, rawPayload, "api")
	if err != nil {
		log.Errorf("[ChunkHandler] 入库服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "入库失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// Detail 是处理分块详情请求的 Gin 处理函数。
func (h *ChunkHandler) Detail(c *gin.Context) {
	chunkID := c.Param("chunkId")

	detail, err := h.chunkService.Detail(c.Request.Context(), chunkID)
	if err != nil {
		if errors.Is(err, repository.ErrChunkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "分块不存在"})
			return
		}
		log.Errorf("[ChunkHandler] 获取分块详情失败, chunkId: %s, error: %v", chunkID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取详情失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": detail, "message": "success"})
}

// Browse 是处理分页浏览请求的 Gin 处理函数。
func (h *ChunkHandler) Browse(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil {
		pageSize = 20
	}
	sortKey := c.DefaultQuery("sort", "recent")

	result, err := h.chunkService.Browse(parseFilter(c), sortKey, page, pageSize)
	if err != nil {
		log.Errorf("[ChunkHandler] 浏览服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "浏览失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}

// DeleteAll 是处理清空知识库请求的 Gin 处理函数（仅管理员）。
func (h *ChunkHandler) DeleteAll(c *gin.Context) {
	log.Warnf("[ChunkHandler] 收到清空知识库请求")
	if err := h.chunkService.DeleteAll(c.Request.Context()); err != nil {
		log.Errorf("[ChunkHandler] 清空知识库失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清空失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"message": "All chunks deleted"}, "message": "success"})
}

// Seed 是处理写入演示数据请求的 Gin 处理函数。
func (h *ChunkHandler) Seed(c *gin.Context) {
	log.Infof("[ChunkHandler] 收到写入演示数据请求")
	result, err := h.chunkService.Seed(c.Request.Context())
	if err != nil {
		log.Errorf("[ChunkHandler] 写入演示数据失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入演示数据失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": result, "message": "success"})
}
