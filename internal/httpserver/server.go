package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bilalbaqar/fitness-coach/internal/chat"
	"github.com/bilalbaqar/fitness-coach/internal/coach"
	"github.com/bilalbaqar/fitness-coach/internal/config"
)

// Server bundles the echo router and the coaching dependencies.
type Server struct {
	Echo   *echo.Echo
	cfg    config.Config
	store  *chat.Store
	sender *chat.Sender
	svc    *coach.Service
}

// New constructs the HTTP server with routes.
func New(cfg config.Config, store *chat.Store, sender *chat.Sender, svc *coach.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{Echo: e, cfg: cfg, store: store, sender: sender, svc: svc}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	api := e.Group("/api")
	api.POST("/sessions", s.createSession)
	api.GET("/sessions", s.listSessions)
	api.POST("/sessions/:id/select", s.selectSession)
	api.POST("/sessions/:id/speaking", s.toggleSpeaking)
	api.PUT("/sessions/:id/personas", s.setPersonas)
	api.GET("/sessions/:id/messages", s.messages)
	api.POST("/chat", s.sendChat)
	api.GET("/regimen", s.regimen)
	api.POST("/voice/tts", s.ttsRelay)
	api.GET("/voice/asr", s.asrRelay)

	return s
}

func (s *Server) createSession(c echo.Context) error {
	sess := s.store.NewSession()
	return c.JSON(http.StatusCreated, sess)
}

func (s *Server) listSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Sessions())
}

func (s *Server) selectSession(c echo.Context) error {
	if err := s.store.Select(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) toggleSpeaking(c echo.Context) error {
	speaking, err := s.store.ToggleSpeaking(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"speaking": speaking})
}

func (s *Server) setPersonas(c echo.Context) error {
	var body struct {
		Personas []string `json:"persona"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	switch err := s.store.SetPersonas(c.Param("id"), body.Personas); {
	case errors.Is(err, chat.ErrEmptyPersona):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, chat.ErrNoSession):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) messages(c echo.Context) error {
	msgs, err := s.store.Messages(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, msgs)
}

// sendChat runs one question through classify -> agents -> synthesis and
// streams the reveal into the session; the response carries the finalized
// answer once the reveal has committed.
func (s *Server) sendChat(c echo.Context) error {
	var body struct {
		SessionID string `json:"session_id"`
		AthleteID string `json:"athlete_id"`
		Text      string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	answer, err := s.sender.Send(c.Request().Context(), body.SessionID, body.AthleteID, body.Text)
	switch {
	case errors.Is(err, chat.ErrNoSession):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, chat.ErrSendInFlight):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, chat.ErrEmptyMessage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) regimen(c echo.Context) error {
	reg, err := s.svc.Regimen(c.QueryParam("athlete_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, reg)
}
