package handler

import (
	"go-customerapi/internal/service"
	"go-customerapi/internal/util/retcode"
	"go-customerapi/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct{ d Dependencies }

func NewCustomerHandler(d Dependencies) *CustomerHandler { return &CustomerHandler{d: d} }

func (h *CustomerHandler) Index(c *gin.Context) {
	page, limit := pageLimit(c)
	res, err := h.d.Customer.List(c.Request.Context(), service.ListCustomerParams{
		Keywords: c.Query("keywords"), Page: page, Limit: limit,
	})
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, res)
}

func (h *CustomerHandler) GetInfo(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, retcode.EMPTY_PARAMS, "id required")
		return
	}
	res, err := h.d.Customer.GetInfo(c.Request.Context(), id)
	if err != nil {
		if err.Error() == "not found" {
			response.Error(c, retcode.RECORD_NOT_FOUND, err.Error())
			return
		}
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, res)
}

func (h *CustomerHandler) Add(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Age  string `json:"age"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Customer.Add(c.Request.Context(), service.AddCustomerParams{ID: req.ID, Name: req.Name, Age: req.Age})
	if err != nil {
		if err.Error() == "customer exists" {
			response.Error(c, retcode.DATA_EXISTS, err.Error())
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, err.Error())
		return
	}
	response.Success(c, gin.H{"id": id})
}

// Edit 部分更新: JSON 中出现的字段（含空串）无条件覆盖，缺省字段保持原值
func (h *CustomerHandler) Edit(c *gin.Context) {
	var req struct {
		ID   string  `json:"id"`
		Name *string `json:"name"`
		Age  *string `json:"age"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if err := h.d.Customer.Edit(c.Request.Context(), service.EditCustomerParams{ID: req.ID, Name: req.Name, Age: req.Age}); err != nil {
		if err.Error() == "not found" {
			response.Error(c, retcode.RECORD_NOT_FOUND, err.Error())
			return
		}
		response.Error(c, retcode.DB_SAVE_ERROR, err.Error())
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, retcode.EMPTY_PARAMS, "id required")
		return
	}
	if err := h.d.Customer.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, retcode.DELETE_FAILED, err.Error())
		return
	}
	response.Success(c, gin.H{"ok": true})
}
