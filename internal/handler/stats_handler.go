package handler

import (
	"net/http"
	"strconv"

	"knowledge-wiki-go/internal/service"
	"knowledge-wiki-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// StatsHandler 结构体定义了统计与分面相关的处理器。
type StatsHandler struct {
	chunkService service.ChunkService
}

// NewStatsHandler 创建一个新的 StatsHandler 实例。
func NewStatsHandler(chunkService service.ChunkService) *StatsHandler {
	return &StatsHandler{
		chunkService: chunkService,
	}
}

// Stats 返回知识库总览统计。
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.chunkService.Stats()
	if err != nil {
		log.Errorf("[StatsHandler] 统计服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": stats, "message": "success"})
}

// Tags 返回标签云。
func (h *StatsHandler) Tags(c *gin.Context) {
	tags, err := h.chunkService.TagCounts()
	if err != nil {
		log.Errorf("[StatsHandler] 标签统计失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "标签统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"tags": tags}, "message": "success"})
}

// Categories 返回类别列表。
func (h *StatsHandler) Categories(c *gin.Context) {
	categories, err := h.chunkService.Categories()
	if err != nil {
		log.Errorf("[StatsHandler] 类别统计失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "类别统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"categories": categories}, "message": "success"})
}

// Projects 返回项目列表。
func (h *StatsHandler) Projects(c *gin.Context) {
	projects, err := h.chunkService.Projects()
	if err != nil {
		log.Errorf("[StatsHandler] 项目统计失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "项目统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"projects": projects}, "message": "success"})
}

// FileTypes 返回文件类型列表。
func (h *StatsHandler) FileTypes(c *gin.Context) {
	filetypes, err := h.chunkService.FileTypes()
	if err != nil {
		log.Errorf("[StatsHandler] 文件类型统计失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "文件类型统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"filetypes": filetypes}, "message": "success"})
}

// Orgs 返回机关列表。
func (h *StatsHandler) Orgs(c *gin.Context) {
	orgs, err := h.chunkService.Orgs()
	if err != nil {
		log.Errorf("[StatsHandler] 机关统计失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "机关统计失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"orgs": orgs}, "message": "success"})
}

// Trending 返回热度榜。
func (h *StatsHandler) Trending(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	trending, err := h.chunkService.Trending(c.Request.Context(), limit)
	if err != nil {
		log.Errorf("[StatsHandler] 热度榜服务返回错误, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "热度榜获取失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": trending, "message": "success"})
}
