package albums

import (
	"github.com/anoixa/photo-frame/api/common"
	"github.com/anoixa/photo-frame/api/middleware"
	"github.com/anoixa/photo-frame/internal/frame"
	"github.com/gin-gonic/gin"
)

// Handler 相册列表接口
type Handler struct {
	svc *frame.Service
}

// NewHandler 创建处理器
func NewHandler(svc *frame.Service) *Handler {
	return &Handler{svc: svc}
}

// ListAlbumsHandler 获取用户的全部相册
// 列表缓存 10 分钟，让相册选择页可以快速重复打开
func (h *Handler) ListAlbumsHandler(c *gin.Context) {
	albums, err := h.svc.GetAlbums(c.Request.Context(), middleware.UserID(c), middleware.GoogleToken(c))
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, gin.H{
		"albums": albums,
	})
}
