package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/futureslog/journal"
)

// tradeRequest is the editable part of a trade. Title and ticker are
// required, matching the entry form; everything else falls back to the
// NewTrade defaults on create.
type tradeRequest struct {
	Title      string           `json:"title" binding:"required"`
	Ticker     string           `json:"ticker" binding:"required"`
	Date       *time.Time       `json:"date"`
	Outcome    *journal.Outcome `json:"outcome"`
	Rating     *int             `json:"rating" binding:"omitempty,min=1,max=5"`
	Reflection string           `json:"reflection"`
	Tags       []string         `json:"tags"`
	ImageURLs  []string         `json:"imageURLs" binding:"omitempty,dive,required"`
	Emotion    *journal.Emotion `json:"emotion"`
	Session    *journal.Session `json:"session"`
}

func (r tradeRequest) applyTo(t journal.Trade) journal.Trade {
	t.Title = r.Title
	t.Ticker = r.Ticker
	t.Reflection = r.Reflection
	t.Tags = r.Tags
	t.ImageURLs = r.ImageURLs
	if r.Date != nil {
		t.Date = *r.Date
	}
	if r.Outcome != nil {
		t.Outcome = *r.Outcome
	}
	if r.Rating != nil {
		t.Rating = *r.Rating
	}
	if r.Emotion != nil {
		t.Emotion = *r.Emotion
	}
	if r.Session != nil {
		t.Session = *r.Session
	}
	return t
}

type tradeQuery struct {
	Q       string `form:"q"`
	Session string `form:"session"`
	Outcome string `form:"outcome"`
}

func (q tradeQuery) toQuery() (journal.Query, error) {
	out := journal.Query{Text: q.Q}
	if q.Session != "" {
		s, err := journal.ParseSession(q.Session)
		if err != nil {
			return out, err
		}
		out.Session = s
	}
	if q.Outcome != "" {
		o, err := journal.ParseOutcome(q.Outcome)
		if err != nil {
			return out, err
		}
		out.Outcome = o
	}
	return out, nil
}

func (s *Server) listTrades(c *gin.Context) {
	var req tradeQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := req.toQuery()
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.trades.Filter(q))
}

func (s *Server) getTrade(c *gin.Context) {
	t, err := s.trades.Get(c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t := journal.NewTrade()
	if req.Date != nil {
		var err error
		if t, err = journal.NewTradeAt(*req.Date); err != nil {
			badRequest(c, err)
			return
		}
	}
	t = req.applyTo(t)
	if err := s.trades.Add(c.Request.Context(), t); err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// updateTrade replaces every editable field; omitted optional fields keep
// their stored values.
func (s *Server) updateTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	current, err := s.trades.Get(c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}

	t := req.applyTo(current)
	if err := s.trades.Update(c.Request.Context(), t); err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTrade(c *gin.Context) {
	if err := s.trades.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) todaysTrades(c *gin.Context) {
	trades := s.trades.TodaysTrades()
	if trades == nil {
		trades = []journal.Trade{}
	}
	c.JSON(http.StatusOK, trades)
}

type statsResponse struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (s *Server) tradeStats(c *gin.Context) {
	wins, losses := s.trades.WinLossRatio()
	c.JSON(http.StatusOK, statsResponse{Wins: wins, Losses: losses})
}
