package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/futureslog/chat"
)

type sendRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *Server) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, s.chat.Messages())
}

// sendMessage blocks until the buddy replies and returns the reply.
func (s *Server) sendMessage(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reply, err := s.chat.Send(c.Request.Context(), req.Content)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (s *Server) quickPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, chat.QuickPrompts())
}

func (s *Server) chatStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"responding": s.chat.Responding()})
}
