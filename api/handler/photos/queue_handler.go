package photos

import (
	"net/http"
	"strings"

	"github.com/anoixa/photo-frame/api/common"
	"github.com/anoixa/photo-frame/api/middleware"
	"github.com/gin-gonic/gin"
)

// GetQueue 获取当前加载的队列
// 缓存命中直接返回；未命中但有存储的查询参数时重放查询；
// 都没有则返回空队列（新用户）
func (h *Handler) GetQueue(c *gin.Context) {
	queue, err := h.svc.GetQueue(c.Request.Context(), middleware.UserID(c), middleware.GoogleToken(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, queue)
}

// GetSelected 获取队列中指定 ID 的媒体项
func (h *Handler) GetSelected(c *gin.Context) {
	ids := c.QueryArray("ids")
	if len(ids) == 1 && strings.Contains(ids[0], ",") {
		ids = strings.Split(ids[0], ",")
	}
	if len(ids) == 0 {
		common.RespondError(c, http.StatusBadRequest, "ids is required")
		return
	}

	photos, err := h.svc.GetSelected(c.Request.Context(), middleware.UserID(c), middleware.GoogleToken(c), ids)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, gin.H{
		"photos":     photos,
		"parameters": ids,
	})
}
