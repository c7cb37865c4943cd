package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

type Option func(*Server)

// WithChatRate limits how often one client may message the buddy. rate is in
// limiter format, e.g. "30-M" for thirty per minute.
func WithChatRate(rate limiter.Rate) Option {
	return func(s *Server) {
		s.chatLimiter = limiter.New(memory.NewStore(), rate)
	}
}

// rateLimit rejects requests from a client IP once l's rate is used up.
func (s *Server) rateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		lc, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			s.log.Error("rate limit check", zap.String("ip", ip), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "rate limit check failed"})
			return
		}
		if lc.Reached {
			s.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.Int64("limit", lc.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests, try again later"})
			return
		}
		c.Next()
	}
}
