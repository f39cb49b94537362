package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// 请求的授权范围：照片库只读 + 基础资料
var oauthScopes = []string{
	"https://www.googleapis.com/auth/photoslibrary.readonly",
	"profile",
}

// UserInfo Google userinfo 端点返回的用户资料
type UserInfo struct {
	Sub       string `json:"sub"`
	Name      string `json:"name"`
	GivenName string `json:"given_name"`
	Picture   string `json:"picture"`
}

// OAuthService Google OAuth 2.0 授权码流程
type OAuthService struct {
	config           *oauth2.Config
	http             *resty.Client
	userInfoEndpoint string
}

// OAuthConfig OAuth 服务配置
type OAuthConfig struct {
	ClientID         string
	ClientSecret     string
	CallbackURL      string
	UserInfoEndpoint string
}

// NewOAuthService 创建 OAuth 服务
func NewOAuthService(cfg OAuthConfig) *OAuthService {
	if cfg.UserInfoEndpoint == "" {
		cfg.UserInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"
	}

	return &OAuthService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       oauthScopes,
			Endpoint:     google.Endpoint,
		},
		http:             resty.New().SetTimeout(10 * time.Second),
		userInfoEndpoint: cfg.UserInfoEndpoint,
	}
}

// AuthCodeURL 生成授权跳转地址
// offline 模式以获取 refresh token，令牌过期后无需用户重新授权
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange 用授权码换取令牌
func (s *OAuthService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// FetchUserInfo 获取登录用户的资料
func (s *OAuthService) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var info UserInfo
	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get(s.userInfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode())
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("userinfo response missing subject")
	}
	return &info, nil
}
