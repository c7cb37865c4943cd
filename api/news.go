package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/futureslog/news"
)

func (s *Server) searchNews(c *gin.Context) {
	articles, err := s.news.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.abort(c, err)
		return
	}
	if articles == nil {
		articles = []news.Article{}
	}
	c.JSON(http.StatusOK, articles)
}

type feedResponse struct {
	Loading  bool           `json:"loading"`
	Query    string         `json:"query"`
	Articles []news.Article `json:"articles"`
}

// currentNews returns the last search result without searching again.
func (s *Server) currentNews(c *gin.Context) {
	c.JSON(http.StatusOK, feedResponse{
		Loading:  s.news.Loading(),
		Query:    s.news.Query(),
		Articles: s.news.Articles(),
	})
}

func (s *Server) newsSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, news.Suggestions())
}
