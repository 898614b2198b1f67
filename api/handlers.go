package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ukpolling/models"
)

const apiVersion = "1.0.0"

// validParties is the help text offered when a party lookup misses.
var validParties = []string{
	"conservative", "labour", "liberal democrats", "lib_dem",
	"reform", "reform uk", "green", "snp", "other",
	"con", "lab",
}

// errorDetail mirrors the {"detail": ...} error body shape throughout.
func errorDetail(c *gin.Context, status int, format string, args ...any) {
	c.JSON(status, gin.H{"detail": fmt.Sprintf(format, args...)})
}

func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "UK Polling Voting Intentions API",
		"version": apiVersion,
		"endpoints": gin.H{
			"latest":      "/polls/latest",
			"all":         "/polls",
			"summary":     "/polls/summary",
			"by_pollster": "/polls/pollster/{name}",
			"by_party":    "/polls/party/{name}",
			"trends":      "/polls/trends",
			"date_range":  "/polls/range?start=YYYY-MM-DD&end=YYYY-MM-DD",
			"status":      "/status",
		},
	})
}

func (s *Server) getAllPolls(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.All())
}

func (s *Server) getLatestPolls(c *gin.Context) {
	n, ok := queryInt(c, "n", 10, 1, 100)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.Latest(n))
}

func (s *Server) getSummary(c *gin.Context) {
	n, ok := queryInt(c, "n", 10, 1, 50)
	if !ok {
		return
	}
	summary := s.store.Summary(n)
	if summary == nil {
		errorDetail(c, http.StatusNotFound, "No polling data available")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) getByPollster(c *gin.Context) {
	name := c.Param("name")
	results := s.store.ByPollster(name)
	if len(results) == 0 {
		errorDetail(c, http.StatusNotFound, "No polls found for pollster '%s'", name)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) getByParty(c *gin.Context) {
	name := c.Param("name")
	results := s.store.ByParty(name)
	if len(results) == 0 {
		detail := fmt.Sprintf("No data for party '%s'. Valid parties: ", name)
		for i, p := range validParties {
			if i > 0 {
				detail += ", "
			}
			detail += p
		}
		errorDetail(c, http.StatusNotFound, "%s", detail)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) getTrends(c *gin.Context) {
	trends := s.store.Trends()
	if trends == nil {
		trends = []models.PartyTrend{}
	}
	c.JSON(http.StatusOK, trends)
}

func (s *Server) getDateRange(c *gin.Context) {
	start, err := models.ParseDateString(c.Query("start"))
	if err != nil {
		errorDetail(c, http.StatusBadRequest, "start must be a YYYY-MM-DD date")
		return
	}
	end, err := models.ParseDateString(c.Query("end"))
	if err != nil {
		errorDetail(c, http.StatusBadRequest, "end must be a YYYY-MM-DD date")
		return
	}
	if start.After(end) {
		errorDetail(c, http.StatusBadRequest, "start must be before end")
		return
	}

	results := s.store.DateRange(start, end)
	if len(results) == 0 {
		errorDetail(c, http.StatusNotFound, "No polls found between %s and %s", start, end)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) triggerRefresh(c *gin.Context) {
	count := s.refresher.Refresh(c.Request.Context())
	status := s.store.Status()
	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("Refreshed %d polls", count),
		"source":         status.Source,
		"last_refreshed": status.LastRefreshed,
	})
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Status())
}

// queryInt reads an integer query parameter with a default and inclusive
// bounds, writing a 400 response itself when the value is unusable.
func queryInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		errorDetail(c, http.StatusBadRequest, "%s must be an integer between %d and %d", name, min, max)
		return 0, false
	}
	return value, true
}
