package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrCache:    http.StatusInternalServerError,
	ErrTimeout:  http.StatusRequestTimeout,

	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusConflict,

	// 业务错误 (4000-4999)
	ErrUserNotFound:  http.StatusNotFound,
	ErrUserExists:    http.StatusConflict,
	ErrGroupNotFound: http.StatusNotFound,
	ErrPostNotFound:  http.StatusNotFound,
	ErrNotAuthor:     http.StatusForbidden,
	ErrSelfFollow:    http.StatusBadRequest,
}

// Status 返回错误对应的HTTP状态码
func Status(err error) int {
	if status, ok := errorStatusMap[Code(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleError 统一处理错误响应
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		resp := ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}
		c.JSON(Status(appErr), resp)
		return
	}

	// 处理非 AppError 类型的错误
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    ErrInternal,
		Message: "Internal Server Error",
		Error:   err.Error(),
	})
}

// NotFoundPage 渲染自定义404页面
func NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.tmpl", gin.H{
		"path": c.Request.URL.Path,
		"user": c.Value("user"),
	})
	c.Abort()
}
