package common

import (
	"errors"
	"net/http"

	"github.com/anoixa/photo-frame/internal/photoslib"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Status: status,
		Msg:    message,
		Data:   data,
	})
}

// RespondSuccess sends a success response with data.
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondSuccessMessage sends a success response with message and data.
func RespondSuccessMessage(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, "success", message, data)
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	Respond(c, httpStatus, "error", message, nil)
}

// RespondServiceError 将编排层错误翻译为 HTTP 响应
// 远端规范化错误使用其自带状态码，其余一律 500
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *photoslib.APIError
	if errors.As(err, &apiErr) {
		Respond(c, apiErr.StatusCode(), "error", apiErr.Message, gin.H{
			"name": apiErr.Name,
			"code": apiErr.Code,
		})
		return
	}
	RespondError(c, http.StatusInternalServerError, err.Error())
}
