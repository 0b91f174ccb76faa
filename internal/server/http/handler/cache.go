package handler

import (
	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/util/retcode"
	"go-customerapi/pkg/response"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct{ d Dependencies }

func NewCacheHandler(d Dependencies) *CacheHandler { return &CacheHandler{d: d} }

func (h *CacheHandler) layered() *cache.LayeredCache {
	lc, _ := h.d.Cache.(*cache.LayeredCache)
	return lc
}

// Metrics 缓存命中指标; 经 ResponseWrapper 统一包装输出
func (h *CacheHandler) Metrics(c *gin.Context) {
	lc := h.layered()
	if lc == nil {
		response.Error(c, retcode.EXCEPTION, "layered cache not enabled")
		return
	}
	c.Set("resp", gin.H{"data": lc.SnapshotMetrics()})
}

func (h *CacheHandler) Reset(c *gin.Context) {
	lc := h.layered()
	if lc == nil {
		response.Error(c, retcode.EXCEPTION, "layered cache not enabled")
		return
	}
	lc.ResetMetrics()
	c.Set("resp", gin.H{"data": gin.H{"ok": true}})
}
