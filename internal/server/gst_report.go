package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	gstreportdomain "github.com/khatahq/khata/internal/gstreport/domain"
)

func (s *Server) GetGSTReport(c *gin.Context) {
	var query struct {
		From      string `form:"from"`
		To        string `form:"to"`
		HomeState string `form:"home_state"`
		Status    string `form:"status"`
		Rate      string `form:"rate"`
		Inclusive string `form:"inclusive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q := gstreportdomain.Query{
		From:        strings.TrimSpace(query.From),
		To:          strings.TrimSpace(query.To),
		HomeState:   strings.TrimSpace(query.HomeState),
		Status:      strings.TrimSpace(query.Status),
		RatePercent: strings.TrimSpace(query.Rate),
	}
	if raw := strings.TrimSpace(query.Inclusive); raw != "" {
		if inclusive, err := strconv.ParseBool(raw); err == nil {
			q.Inclusive = &inclusive
		}
	}

	resp, err := s.gstReportSvc.BuildReport(c.Request.Context(), q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
