package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 成功响应中的 data 部分
type Response map[string]interface{}

// 业务错误码，与 HTTP 状态码一起返回
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeUpstream     = 40402
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// FieldError 单个字段校验失败
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Success 返回 {"code":0,"data":...}
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error 按给定状态码返回 {"code":...,"message":...}
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// ValidationError 以 400 返回所有字段校验错误
func ValidationError(c *gin.Context, errs []FieldError) {
	msg := "Invalid input"
	if len(errs) > 0 {
		msg = errs[0].Msg
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    CodeInvalidParam,
		"message": msg,
		"errors":  errs,
	})
}

// ServerError 通用 500 响应
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeServerErr, "Server error")
}
