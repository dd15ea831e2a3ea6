package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"scoutIO/business/alternatives"
	"scoutIO/business/detect"
	"scoutIO/business/scrape"
	"scoutIO/business/session"
	"scoutIO/domain"
	"scoutIO/internal/middleware"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withSession stands in for the auth middleware.
func withSession(id string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextSessionID, id)
			return next(c)
		}
	}
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type stubSessionService struct{ err error }

func (s stubSessionService) Create(ctx context.Context) (session.Issued, error) {
	if s.err != nil {
		return session.Issued{}, s.err
	}
	return session.Issued{
		Session:   domain.ShoppingSession{ID: "sess-42"},
		Token:     "tok-42",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s stubSessionService) Get(ctx context.Context, id string) (domain.ShoppingSession, error) {
	if id != "sess-42" {
		return domain.ShoppingSession{}, domain.ErrSessionNotFound
	}
	return domain.ShoppingSession{ID: id}, nil
}

func TestSessionHandler(t *testing.T) {
	e := echo.New()
	h := NewSessionHandler(stubSessionService{})
	e.POST("/sessions", h.CreateSession)
	e.GET("/sessions/current", h.GetSession, withSession("gone"))

	rec := do(e, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "sess-42")
	assert.Contains(t, rec.Body.String(), "tok-42")

	rec = do(e, http.MethodGet, "/sessions/current", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	e2 := echo.New()
	e2.POST("/sessions", NewSessionHandler(stubSessionService{err: errors.New("redis down")}).CreateSession)
	rec = do(e2, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
}

type stubPreferenceService struct{ mode domain.Mode }

func (s *stubPreferenceService) GetMode(ctx context.Context, sessionID string) (domain.Mode, error) {
	if s.mode == "" {
		return domain.ModeBalanced, nil
	}
	return s.mode, nil
}

func (s *stubPreferenceService) SetMode(ctx context.Context, sessionID, raw string) (domain.Mode, error) {
	m := domain.ParseMode(raw)
	if !m.IsKnown() {
		return "", domain.ErrInvalidMode
	}
	s.mode = m
	return m, nil
}

func TestPreferenceHandler(t *testing.T) {
	e := echo.New()
	svc := &stubPreferenceService{}
	h := NewPreferenceHandler(svc)
	g := e.Group("", withSession("sess-1"))
	g.GET("/preferences", h.GetPreference)
	g.PUT("/preferences", h.UpdatePreference)

	rec := do(e, http.MethodGet, "/preferences", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "balanced")

	rec = do(e, http.MethodPut, "/preferences", `{"mode":"Fast Shipping"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ModeFastShipping, svc.mode)

	rec = do(e, http.MethodPut, "/preferences", `{"mode":"cheapest"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPut, "/preferences", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreferenceHandler_RequiresSession(t *testing.T) {
	e := echo.New()
	e.GET("/preferences", NewPreferenceHandler(&stubPreferenceService{}).GetPreference)

	rec := do(e, http.MethodGet, "/preferences", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type stubDetectService struct{}

func (stubDetectService) Detect(ctx context.Context, sessionID, pageURL, html string) (domain.DetectedProduct, error) {
	return detect.Parse(pageURL, html)
}

func TestDetectHandler(t *testing.T) {
	e := echo.New()
	e.POST("/detect", NewDetectHandler(stubDetectService{}).Detect, withSession("sess-1"))

	page := `<html><head><meta property=\"og:type\" content=\"product\"><meta property=\"og:title\" content=\"Kettle\"></head></html>`
	rec := do(e, http.MethodPost, "/detect", `{"url":"https://shop.test/p/1","html":"`+page+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kettle")

	rec = do(e, http.MethodPost, "/detect", `{"url":"https://shop.test/","html":"<html></html>"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPost, "/detect", `{"url":"not-a-url","html":"<html></html>"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubScrapeService struct {
	jobs     map[string]domain.ScrapeJob
	startErr error
}

func (s *stubScrapeService) Start(ctx context.Context, sessionID, url string) (*domain.ScrapeJob, error) {
	if s.startErr != nil {
		return &domain.ScrapeJob{Status: domain.JobFailed}, s.startErr
	}
	if !strings.HasPrefix(url, "https://") {
		return nil, scrape.ErrInvalidURL
	}
	job := domain.ScrapeJob{ID: "job-1", SessionID: sessionID, URL: url, Status: domain.JobPending}
	s.jobs[job.ID] = job
	return &job, nil
}

func (s *stubScrapeService) Get(ctx context.Context, id string) (domain.ScrapeJob, error) {
	job, ok := s.jobs[id]
	if !ok {
		return domain.ScrapeJob{}, domain.ErrJobNotFound
	}
	return job, nil
}

func TestScrapeHandler(t *testing.T) {
	svc := &stubScrapeService{jobs: map[string]domain.ScrapeJob{
		"other": {ID: "other", SessionID: "sess-2", Status: domain.JobSucceeded},
	}}
	h := NewScrapeHandler(svc)

	e := echo.New()
	g := e.Group("", withSession("sess-1"))
	g.POST("/scrape-jobs", h.StartJob)
	g.GET("/scrape-jobs/:id", h.GetJob)

	rec := do(e, http.MethodPost, "/scrape-jobs", `{"url":"https://shop.test/p/1"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "job-1")

	rec = do(e, http.MethodGet, "/scrape-jobs/job-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending")

	rec = do(e, http.MethodGet, "/scrape-jobs/other", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/scrape-jobs/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/scrape-jobs", `{"url":"ftp://x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/scrape-jobs", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.startErr = errors.New("quota exceeded")
	rec = do(e, http.MethodPost, "/scrape-jobs", `{"url":"https://shop.test/p/2"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

type stubAlternativesService struct {
	preview func([]domain.Candidate, domain.Mode) domain.AlternativesView
}

func (s stubAlternativesService) ForSession(ctx context.Context, sessionID, modeOverride string) (domain.AlternativesView, error) {
	if sessionID != "sess-1" {
		return domain.AlternativesView{}, domain.ErrSessionNotFound
	}
	return domain.AlternativesView{Mode: domain.ParseMode(modeOverride)}, nil
}

func (s stubAlternativesService) Preview(candidates []domain.Candidate, mode domain.Mode) domain.AlternativesView {
	return s.preview(candidates, mode)
}

func TestAlternativesHandler_Preview(t *testing.T) {
	svc := alternatives.NewAlternativesService(nil, nil, nil)
	h := NewAlternativesHandler(stubAlternativesService{preview: svc.Preview})

	e := echo.New()
	e.POST("/alternatives/preview", h.Preview)

	body := `{"mode":"lowest_price","candidates":[
		{"id":1,"name":"a","price":30,"tags":["lowest"]},
		{"id":2,"title":"b","price":10,"tags":["lowest"]},
		{"id":3,"name":"c","price":20}
	]}`
	rec := do(e, http.MethodPost, "/alternatives/preview", body)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Less(t, strings.Index(out, `"name":"b"`), strings.Index(out, `"name":"a"`))
	assert.NotContains(t, out, `"name":"c"`)

	rec = do(e, http.MethodPost, "/alternatives/preview", `{"candidates":[{"name":"neg","price":-1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/alternatives/preview", `{"candidates":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "balanced")
}

func TestAlternativesHandler_ForSession(t *testing.T) {
	h := NewAlternativesHandler(stubAlternativesService{})

	e := echo.New()
	e.GET("/alternatives", h.GetAlternatives, withSession("sess-1"))
	e.GET("/gone/alternatives", h.GetAlternatives, withSession("sess-9"))

	rec := do(e, http.MethodGet, "/alternatives?mode=best_reviews", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "best_reviews")

	rec = do(e, http.MethodGet, "/gone/alternatives", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	e.GET("/ok", NewHealthHandler(map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
	}).Health)
	e.GET("/bad", NewHealthHandler(map[string]Pinger{
		"redis": func(context.Context) error { return errors.New("dial tcp: refused") },
	}).Health)

	rec := do(e, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/bad", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}
