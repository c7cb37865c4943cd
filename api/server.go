// Package api exposes the journal, the AI buddy and the news feed as JSON
// over HTTP for the mobile front-end.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"

	"github.com/rustyeddy/futureslog/chat"
	"github.com/rustyeddy/futureslog/journal"
	"github.com/rustyeddy/futureslog/news"
)

type Server struct {
	trades *journal.TradeStore
	chat   *chat.ConversationStore
	news   *news.Feed
	log    *zap.Logger

	chatLimiter *limiter.Limiter
}

func NewServer(trades *journal.TradeStore, conv *chat.ConversationStore, feed *news.Feed, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{trades: trades, chat: conv, news: feed, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	v1 := r.Group("/api/v1")

	trades := v1.Group("/trades")
	trades.GET("", s.listTrades)
	trades.POST("", s.createTrade)
	trades.GET("/today", s.todaysTrades)
	trades.GET("/stats", s.tradeStats)
	trades.GET("/:id", s.getTrade)
	trades.PUT("/:id", s.updateTrade)
	trades.DELETE("/:id", s.deleteTrade)

	c := v1.Group("/chat")
	c.GET("/messages", s.listMessages)
	c.POST("/messages", s.rateLimit(s.chatLimiter), s.sendMessage)
	c.GET("/prompts", s.quickPrompts)
	c.GET("/status", s.chatStatus)

	n := v1.Group("/news")
	n.GET("", s.searchNews)
	n.GET("/current", s.currentNews)
	n.GET("/suggestions", s.newsSuggestions)

	v1.GET("/meta", s.meta)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// abort maps store errors onto status codes.
func (s *Server) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, journal.ErrTradeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, journal.ErrInvalidTrade):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

type metaResponse struct {
	Outcomes []journal.Outcome `json:"outcomes"`
	Emotions []journal.Emotion `json:"emotions"`
	Sessions []journal.Session `json:"sessions"`
}

func (s *Server) meta(c *gin.Context) {
	c.JSON(http.StatusOK, metaResponse{
		Outcomes: journal.Outcomes(),
		Emotions: journal.Emotions(),
		Sessions: journal.Sessions(),
	})
}
