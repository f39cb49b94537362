package photos

import (
	"log"
	"net/http"

	"github.com/anoixa/photo-frame/api/common"
	"github.com/anoixa/photo-frame/api/middleware"
	"github.com/anoixa/photo-frame/internal/photoslib"
	"github.com/gin-gonic/gin"
)

// LoadFromAlbumRequest 相册加载请求
type LoadFromAlbumRequest struct {
	AlbumID string `form:"albumId" json:"albumId" binding:"required"`
}

// LoadFromSearch 用搜索条件加载相框队列
// 表单构建过滤条件后提交远端搜索，成功时写入两级缓存
func (h *Handler) LoadFromSearch(c *gin.Context) {
	var form photoslib.SearchForm
	if err := c.ShouldBind(&form); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	filters, err := photoslib.BuildSearchFilters(form)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	log.Println("[photos] Loading images from search")

	queue, err := h.svc.LoadFromSearch(c.Request.Context(), middleware.UserID(c), middleware.GoogleToken(c), filters)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, queue)
}

// LoadFromAlbum 加载整个相册到相框队列
// 相册搜索无法附加媒体类型过滤，依赖聚合层的 mimeType 过滤剔除视频
func (h *Handler) LoadFromAlbum(c *gin.Context) {
	var req LoadFromAlbumRequest
	if err := c.ShouldBind(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	log.Println("[photos] Importing album")

	queue, err := h.svc.LoadFromAlbum(c.Request.Context(), middleware.UserID(c), middleware.GoogleToken(c), req.AlbumID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, queue)
}
