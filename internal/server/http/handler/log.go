package handler

import (
	"go-customerapi/internal/util/retcode"
	"go-customerapi/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct{ d Dependencies }

func NewAuditHandler(d Dependencies) *AuditHandler { return &AuditHandler{d: d} }

// Index 操作日志列表; type: 1=url 2=customer_id 3=uid
func (h *AuditHandler) Index(c *gin.Context) {
	page, limit := pageLimit(c)
	res, err := h.d.Audit.List(c.Request.Context(), qInt(c, "type", 0), c.Query("keywords"), page, limit)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, res)
}

func (h *AuditHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "id required")
		return
	}
	if err := h.d.Audit.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, retcode.DELETE_FAILED, err.Error())
		return
	}
	response.Success(c, gin.H{"ok": true})
}
