package app

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assistant-service/internal/calendar"
)

const defaultRangeDays = 7

// accessToken pulls the Google access token stashed by the auth
// middleware. An absent token is a caller-side failure, reported before
// any core logic runs.
func accessToken(c *gin.Context) (string, bool) {
	token := c.GetString(ctxAccessToken)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No access token found"})
		return "", false
	}
	return token, true
}

func rangeDaysParam(c *gin.Context) (int, bool) {
	rangeStr := c.DefaultQuery("range", strconv.Itoa(defaultRangeDays))
	days, err := strconv.Atoi(rangeStr)
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
		return 0, false
	}
	return days, true
}

type chatRequest struct {
	Message string `json:"message"`
}

// POST /chat
func (a *App) ChatHandler(c *gin.Context) {
	var req chatRequest
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string"})
		return
	}

	token, ok := accessToken(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cls := a.Classifier.Classify(ctx, req.Message)
	a.Log.Info("classified chat message",
		zap.String("query_type", string(cls.QueryType)),
		zap.Strings("attendees", cls.Entities.Attendees))

	response, err := a.Assistant.HandleMessage(ctx, token, req.Message, cls)
	if err != nil {
		a.Log.Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process AI request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

// GET /calendar/events?range=
func (a *App) GetCalendarEventsHandler(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	days, ok := rangeDaysParam(c)
	if !ok {
		return
	}

	now := time.Now()
	events, err := a.Provider.ListEvents(c.Request.Context(), token, now, now.AddDate(0, 0, days))
	if err != nil {
		a.Log.Error("event listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GET /calendar/slots?range=&attendees=
func (a *App) GetFreeSlotsHandler(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}
	days, ok := rangeDaysParam(c)
	if !ok {
		return
	}

	var attendees []string
	if raw := c.Query("attendees"); raw != "" {
		for _, att := range strings.Split(raw, ",") {
			if att = strings.TrimSpace(att); att != "" {
				attendees = append(attendees, att)
			}
		}
	}

	result, err := calendar.FindFreeMeetingSlots(c.Request.Context(), a.Provider, token, days, attendees)
	if err != nil {
		a.Log.Error("free slot query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute free slots"})
		return
	}

	c.JSON(http.StatusOK, result.Format(a.Location))
}

type createEventReq struct {
	Summary     string   `json:"summary" binding:"required"`
	Description string   `json:"description"`
	Start       string   `json:"start" binding:"required"` // RFC3339
	End         string   `json:"end" binding:"required"`
	Attendees   []string `json:"attendees"`
}

// POST /calendar/event
func (a *App) CreateEventHandler(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		return
	}

	var req createEventReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end"})
		return
	}
	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be before end"})
		return
	}

	created, err := a.Provider.CreateEvent(c.Request.Context(), token, calendar.EventDetails{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       start,
		End:         end,
		Attendees:   req.Attendees,
	})
	if err != nil {
		a.Log.Error("event creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

type createMeetingReq struct {
	Agenda   string `json:"agenda"`
	DateTime string `json:"date_time"` // RFC3339
}

// POST /meetings
func (a *App) CreateMeetingHandler(c *gin.Context) {
	var req createMeetingReq
	if err := c.BindJSON(&req); err != nil || req.Agenda == "" || req.DateTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Agenda and dateTime are required"})
		return
	}

	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_time"})
		return
	}

	meeting := &Meeting{
		UserID:   c.GetInt64(ctxUserID),
		Agenda:   req.Agenda,
		DateTime: dateTime.UTC(),
	}
	if err := a.CreateMeeting(c.Request.Context(), meeting); err != nil {
		a.Log.Error("meeting insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting"})
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

// GET /meetings
func (a *App) ListMeetingsHandler(c *gin.Context) {
	meetings, err := a.GetMeetingsByUser(c.Request.Context(), c.GetInt64(ctxUserID))
	if err != nil {
		a.Log.Error("meeting lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetings"})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

// GET /dashboard
func (a *App) DashboardHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the dashboard!",
		"user": gin.H{
			"id":    c.GetInt64(ctxUserID),
			"email": c.GetString(ctxUserEmail),
		},
	})
}
