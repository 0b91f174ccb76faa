package handler

import (
	"strings"

	"go-customerapi/internal/util/retcode"
	"go-customerapi/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ d Dependencies }

func NewAuthHandler(d Dependencies) *AuthHandler { return &AuthHandler{d: d} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		response.Error(c, retcode.EMPTY_PARAMS, "username and password required")
		return
	}
	token, err := h.d.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, retcode.LOGIN_ERROR, err.Error())
		return
	}
	response.Success(c, gin.H{"token": token})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		var req struct {
			Token string `json:"token"`
		}
		_ = c.ShouldBind(&req)
		token = req.Token
	}
	if token == "" {
		response.Error(c, retcode.AUTH_ERROR, "token required")
		return
	}
	fresh, err := h.d.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error(c, retcode.ACCESS_TOKEN_TIMEOUT, err.Error())
		return
	}
	response.Success(c, gin.H{"token": fresh})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	if jti == "" {
		if token := bearerToken(c); token != "" {
			if claims, err := h.d.JWT.Parse(token); err == nil {
				jti = claims.JTI
			}
		}
	}
	if err := h.d.Auth.Logout(c.Request.Context(), jti); err != nil {
		response.Error(c, retcode.EXCEPTION, err.Error())
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *AuthHandler) Info(c *gin.Context) {
	info, err := h.d.Auth.Info(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, retcode.RECORD_NOT_FOUND, err.Error())
		return
	}
	response.Success(c, info)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBind(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		response.Error(c, retcode.EMPTY_PARAMS, "old_password and new_password required")
		return
	}
	if err := h.d.Auth.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, retcode.UPDATE_FAILED, err.Error())
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
