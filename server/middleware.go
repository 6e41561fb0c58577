package server

import (
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	errs "github.com/techagentng/dutyreport/errors"
	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/server/response"
	"github.com/techagentng/dutyreport/services/jwt"
)

const (
	userKey        = "user"
	accessTokenKey = "access_token"
)

// Authorize resolves the bearer token into an active user and stores it in
// the context under "user".
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		if s.Blacklist.IsTokenInBlacklist(c.Request.Context(), accessToken) {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("access token has been revoked", http.StatusUnauthorized))
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		userID, err := jwt.UserID(accessClaims)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		user, err := s.AuthRepository.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			if errs.FromStore(err, "user").Kind == errs.KindNotFound {
				respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("user not found", http.StatusUnauthorized))
				return
			}
			s.Logger.WithError(err).WithField("userId", userID).Error("loading user for token")
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if !user.IsActive {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrInactiveUser)
			return
		}

		c.Set(userKey, user)
		c.Set(accessTokenKey, accessToken)
		c.Next()
	}
}

// RequireRole lets the request through only for users holding one of roles.
// It must run after Authorize.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", err.Status, nil, err)
			return
		}
		for _, role := range roles {
			if user.Role.Name == role {
				c.Next()
				return
			}
		}
		respondAndAbort(c, "", http.StatusForbidden, nil, errs.New("you are not allowed to perform this action", http.StatusForbidden))
	}
}

// GetUserFromContext returns the user stored by Authorize.
func GetUserFromContext(c *gin.Context) (*models.User, *errs.Error) {
	userI, exists := c.Get(userKey)
	if !exists {
		return nil, errs.ErrUnauthorized
	}
	user, ok := userI.(*models.User)
	if !ok {
		return nil, errs.ErrInternalServerError
	}
	return user, nil
}

// GetTokenFromContext returns the access token stored by Authorize.
func GetTokenFromContext(c *gin.Context) (string, *errs.Error) {
	tokenI, exists := c.Get(accessTokenKey)
	if !exists {
		return "", errs.ErrUnauthorized
	}
	token, ok := tokenI.(string)
	if !ok {
		return "", errs.ErrInternalServerError
	}
	return token, nil
}

func limitLoginRate(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      keyFunc,
	})
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

// requestLogger writes one logrus entry per request.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"clientIp":  c.ClientIP(),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"userAgent": c.Request.UserAgent(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
