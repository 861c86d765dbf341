package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/briefing"
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/dashboard"
	apperrors "github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/events"
	"github.com/julianstephens/leitstand/internal/ics"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/trafficlight"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: http.StatusText(status), Message: msg})
}

// abortErr picks the status from the sentinel in err's chain
func abortErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound), apperrors.Is(err, apperrors.ErrUnknownCollection):
		status = http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
	}
	abortError(c, status, err.Error())
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

func (s *Server) handleHealth(c *gin.Context) {
	_, loadedAt := s.cache.Snapshot()
	body := gin.H{"status": "ok", "time": s.now().Format(time.RFC3339)}
	if !loadedAt.IsZero() {
		body["snapshotLoadedAt"] = loadedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, body)
}

// RecordView is a record with its traffic light
type RecordView struct {
	Record  models.Record      `json:"record"`
	Light   trafficlight.Light `json:"light"`
	Tooltip string             `json:"tooltip,omitempty"`
}

func (s *Server) handleRecords(c *gin.Context) {
	coll, err := models.ParseCollection(c.Param("collection"))
	if err != nil {
		abortErr(c, err)
		return
	}
	area, ok := auth.AreaFor(coll)
	if !ok {
		abortErr(c, fmt.Errorf("collection %q is not available: %w", coll, apperrors.ErrUnknownCollection))
		return
	}
	if !permissions(c).CanView(area) {
		abortErr(c, fmt.Errorf("view %s: %w", area, apperrors.ErrPermissionDenied))
		return
	}

	snap, _ := s.cache.Snapshot()
	showArchived := queryBool(c, "archived")
	today := s.today()

	out := []RecordView{}
	for _, rec := range snap.Records(coll) {
		if rec.IsArchived() && !showArchived {
			continue
		}
		light := trafficlight.Classify(rec, today)
		out = append(out, RecordView{Record: rec, Light: light, Tooltip: light.Tooltip()})
	}
	c.JSON(http.StatusOK, gin.H{"collection": coll, "label": coll.Label(), "records": out})
}

// calendarFilter builds the event filter from the query, restricted to the
// categories the caller may view
func (s *Server) calendarFilter(c *gin.Context) (events.Filter, bool) {
	perms := permissions(c)
	f := events.Filter{ShowArchived: queryBool(c, "archived")}

	requested := events.Categories()
	if raw := strings.TrimSpace(c.Query("categories")); raw != "" {
		requested = nil
		for _, part := range strings.Split(raw, ",") {
			cat, err := events.ParseCategory(strings.TrimSpace(part))
			if err != nil {
				abortError(c, http.StatusBadRequest, err.Error())
				return f, false
			}
			requested = append(requested, cat)
		}
	}
	for _, cat := range requested {
		area, ok := auth.AreaFor(cat.Collection())
		if ok && perms.CanView(area) {
			f.Categories = append(f.Categories, cat)
		}
	}
	if len(f.Categories) == 0 {
		abortErr(c, fmt.Errorf("no visible calendar categories: %w", apperrors.ErrPermissionDenied))
		return f, false
	}

	for key, dst := range map[string]*calendar.Day{"from": &f.From, "to": &f.To} {
		if raw := c.Query(key); raw != "" {
			d, ok := calendar.ParseIn(raw, s.loc)
			if !ok {
				abortError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s date %q", key, raw))
				return f, false
			}
			*dst = d
		}
	}
	if err := checkRange(f.From, f.To); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return f, false
	}
	// to is inclusive on the API, Filter.To is exclusive
	if !f.To.IsZero() {
		f.To = f.To.AddDays(1)
	}
	return f, true
}

// checkRange rejects an inclusive from..to range that is reversed or longer
// than MaxCalendarRangeDays
func checkRange(from, to calendar.Day) error {
	if from.IsZero() || to.IsZero() {
		return nil
	}
	if to.Before(from) {
		return fmt.Errorf("from must not be after to")
	}
	if span := calendar.Diff(to, from) + 1; span > constants.MaxCalendarRangeDays {
		return fmt.Errorf("date range of %d days exceeds the limit of %d", span, constants.MaxCalendarRangeDays)
	}
	return nil
}

func (s *Server) handleCalendar(c *gin.Context) {
	f, ok := s.calendarFilter(c)
	if !ok {
		return
	}
	snap, _ := s.cache.Snapshot()
	m := events.FromSnapshot(snap, f)

	days := []gin.H{}
	if !f.From.IsZero() && !f.To.IsZero() {
		for d := f.From; d.Before(f.To); d = d.AddDays(1) {
			if shade := calendar.Shade(d); shade != calendar.ShadeNone {
				days = append(days, gin.H{"date": d, "shading": shade, "color": shade.Color(), "holiday": calendar.HolidayName(d)})
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"events": m.Events, "skipped": m.Skipped, "days": days})
}

func (s *Server) handleICS(c *gin.Context) {
	f, ok := s.calendarFilter(c)
	if !ok {
		return
	}
	snap, _ := s.cache.Snapshot()
	m := events.FromSnapshot(snap, f)

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="leitstand.ics"`)
	c.Status(http.StatusOK)
	if err := ics.Write(c.Writer, m.Events, ics.Options{Name: "Leitstand", Stamp: s.now(), Location: s.loc}); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) handleDashboard(c *gin.Context) {
	opts := dashboard.Options{Desc: strings.EqualFold(c.Query("order"), "desc")}
	if raw := c.Query("sort"); raw != "" {
		field, err := dashboard.ParseSortField(raw)
		if err != nil {
			abortError(c, http.StatusBadRequest, err.Error())
			return
		}
		opts.SortBy = field
	}

	snap, _ := s.cache.Snapshot()
	report, werr := s.cache.Weather()
	k := dashboard.Build(snap, s.now(), s.loc, report, opts)
	if werr != nil {
		k.WeatherError = werr.Error()
	}
	c.JSON(http.StatusOK, k)
}

func (s *Server) handleTiles(c *gin.Context) {
	snap, _ := s.cache.Snapshot()
	c.JSON(http.StatusOK, dashboard.Tiles(snap, permissions(c), s.today()))
}

func (s *Server) payload() briefing.Payload {
	snap, _ := s.cache.Snapshot()
	return briefing.Build(snap, s.today())
}

func (s *Server) handleBriefing(c *gin.Context) {
	c.JSON(http.StatusOK, s.payload())
}

func (s *Server) handleBriefingGenerate(c *gin.Context) {
	if s.assistant == nil {
		abortError(c, http.StatusServiceUnavailable, briefing.ErrNoAPIKey.Error())
		return
	}
	p := s.payload()
	text, err := s.assistant.Generate(c.Request.Context(), p)
	if err != nil {
		abortError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"briefing": text, "items": p.Len()})
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) handleBriefingAsk(c *gin.Context) {
	if s.assistant == nil {
		abortError(c, http.StatusServiceUnavailable, briefing.ErrNoAPIKey.Error())
		return
	}
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		abortError(c, http.StatusBadRequest, "question is required")
		return
	}
	answer, err := s.assistant.Ask(c.Request.Context(), req.Question, s.payload())
	if err != nil {
		abortError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
