package photos

import (
	"github.com/anoixa/photo-frame/internal/frame"
)

// Handler 相框队列相关接口
type Handler struct {
	svc *frame.Service
}

// NewHandler 创建处理器
func NewHandler(svc *frame.Service) *Handler {
	return &Handler{svc: svc}
}
