package auth

import (
	"log"
	"net/http"

	"github.com/anoixa/photo-frame/api/common"
	"github.com/anoixa/photo-frame/api/middleware"
	"github.com/anoixa/photo-frame/cache"
	"github.com/anoixa/photo-frame/database/repo/accounts"
	authsvc "github.com/anoixa/photo-frame/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler Google OAuth 登录接口
type Handler struct {
	oauth    *authsvc.OAuthService
	sessions *authsvc.SessionStore
	jwt      *authsvc.JWTService
	accounts *accounts.Repository
	cache    cache.Provider
}

// NewHandler 创建处理器
func NewHandler(oauth *authsvc.OAuthService, sessions *authsvc.SessionStore, jwt *authsvc.JWTService, accountsRepo *accounts.Repository, provider cache.Provider) *Handler {
	return &Handler{
		oauth:    oauth,
		sessions: sessions,
		jwt:      jwt,
		accounts: accountsRepo,
		cache:    provider,
	}
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Login 跳转到 Google 授权页
// state 随机生成并短暂缓存，回调时校验防止 CSRF
func (h *Handler) Login(c *gin.Context) {
	state := uuid.NewString()
	if err := h.cache.Set(c.Request.Context(), cache.OAuthState.BuildID(state), true, cache.DefaultOAuthStateExpiration); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create login state")
		return
	}

	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// Callback OAuth 回调
// 校验 state、换取令牌、拉取资料、落库并建立会话，最后签发本服务的访问令牌
func (h *Handler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		common.RespondError(c, http.StatusBadRequest, "Missing state or code")
		return
	}

	ctx := c.Request.Context()

	exists, err := h.cache.Exists(ctx, cache.OAuthState.BuildID(state))
	if err != nil || !exists {
		common.RespondError(c, http.StatusUnauthorized, "Invalid or expired login state")
		return
	}
	// state 一次性使用
	if err := h.cache.Delete(ctx, cache.OAuthState.BuildID(state)); err != nil {
		log.Printf("[auth] Failed to delete oauth state: %v", err)
	}

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, "Failed to exchange authorization code")
		return
	}

	info, err := h.oauth.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		common.RespondError(c, http.StatusBadGateway, "Failed to fetch user info")
		return
	}

	if _, err := h.accounts.Upsert(ctx, info.Sub, info.Name, info.Picture, token.RefreshToken); err != nil {
		log.Printf("[auth] Failed to upsert account: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Failed to save account")
		return
	}

	session := &authsvc.Session{
		GoogleID:     info.Sub,
		Name:         info.Name,
		AvatarURL:    info.Picture,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if err := h.sessions.Save(ctx, session); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to save session")
		return
	}

	accessToken, expiry, err := h.jwt.GenerateAccessToken(info.Sub)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to generate access token")
		return
	}

	log.Println("[auth] User has logged in")

	common.RespondSuccess(c, LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiry.Unix(),
		Name:      info.Name,
		AvatarURL: info.Picture,
	})
}

// Logout 登出并销毁会话
func (h *Handler) Logout(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.sessions.Delete(c.Request.Context(), userID); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to destroy session")
		return
	}

	common.RespondSuccessMessage(c, "Logged out", nil)
}
