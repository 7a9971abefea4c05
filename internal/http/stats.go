package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats StatsReader
}

func NewStatsController(stats StatsReader) *StatsController {
	return &StatsController{stats: stats}
}

// GET /api/stats/summary
func (sc *StatsController) Summary(c *gin.Context) {
	summary, err := sc.stats.Summary(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/stats/books_per_month
func (sc *StatsController) BooksPerMonth(c *gin.Context) {
	series, err := sc.stats.BooksPerMonth(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GET /api/stats/pages_read_per_month
func (sc *StatsController) PagesReadPerMonth(c *gin.Context) {
	series, err := sc.stats.PagesReadPerMonth(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
