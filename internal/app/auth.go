package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Gin context keys populated by the auth middleware.
const (
	ctxUserID      = "userID"
	ctxUserEmail   = "userEmail"
	ctxAccessToken = "accessToken"
)

const sessionTokenTTL = time.Hour

func (a *App) oauthConfig() *oauth2.Config {
	cfg := a.Config
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			calendar.CalendarScope,
			goauth2.UserinfoEmailScope,
			goauth2.UserinfoProfileScope,
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleAuthHandler initiates the OAuth2 flow.
func (a *App) GoogleAuthHandler(c *gin.Context) {
	oauthCfg := a.oauthConfig()
	if oauthCfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth not configured"})
		return
	}

	state := fmt.Sprintf("login_%d", time.Now().Unix())
	url := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.JSON(http.StatusOK, gin.H{
		"auth_url": url,
		"state":    state,
	})
}

// GoogleOAuth2CallbackHandler exchanges the authorization code, upserts
// the user row and issues a session JWT carrying the Google access token.
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	oauthCfg := a.oauthConfig()
	if oauthCfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}

	ctx := c.Request.Context()
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}

	client := oauthCfg.Client(ctx, token)
	oauthSrv, err := goauth2.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create oauth service"})
		return
	}
	me, err := oauthSrv.Userinfo.Get().Do()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user info"})
		return
	}

	user, err := a.FindUserByEmail(ctx, me.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		user = &User{
			GoogleID:           me.Id,
			Email:              me.Email,
			Name:               me.Name,
			GoogleRefreshToken: token.RefreshToken,
		}
		if err := a.CreateUser(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else if token.RefreshToken != "" {
		if err := a.UpdateRefreshToken(ctx, user.ID, token.RefreshToken); err != nil {
			a.Log.Warn("failed to store refresh token", zap.Error(err))
		}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"email":        user.Email,
		"access_token": token.AccessToken,
		"iat":          now.Unix(),
		"exp":          now.Add(sessionTokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Config.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  user,
	})
}

// AuthMiddleware validates the bearer session JWT and exposes its claims
// to downstream handlers.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(jwtSecret), nil
		}, jwt.WithLeeway(5*time.Second))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set(ctxUserID, int64(sub))
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(ctxUserEmail, email)
		}
		if accessToken, ok := claims["access_token"].(string); ok {
			c.Set(ctxAccessToken, accessToken)
		}

		c.Next()
	}
}
