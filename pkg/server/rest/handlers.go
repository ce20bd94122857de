package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"
	"github.com/JOSU10xD/MapMyCampus/pkg/guidance"
	"github.com/JOSU10xD/MapMyCampus/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	CreateSession(ctx context.Context, mode navigator.Mode) *service.Session
	CloseSession(ctx context.Context, id string) error
	NavigateTo(ctx context.Context, sessionID, startID, goalID string) (navigator.Snapshot, error)
	SetDrive(ctx context.Context, sessionID string, held bool) error
	SetDirection(ctx context.Context, sessionID, direction string, held bool) error
	SelectTurn(ctx context.Context, sessionID, turn string) (navigator.Snapshot, error)
	CancelNavigation(ctx context.Context, sessionID string) error
	SessionSnapshot(ctx context.Context, sessionID string) (navigator.Snapshot, error)
	RoutePreview(ctx context.Context, fromID, toID string) ([]datastructure.Node, string, []guidance.WalkingInstruction, float64, error)
	NearestNode(ctx context.Context, x, y float64, floor int) (datastructure.Node, error)
	NodesNearby(ctx context.Context, x, y float64, floor int) ([]datastructure.Node, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	handler := &NavigationHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/route", handler.routePreview)
		})
		r.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", handler.createSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", handler.sessionSnapshot)
				r.Delete("/", handler.closeSession)
				r.Post("/destination", handler.navigateTo)
				r.Post("/drive", handler.setDrive)
				r.Post("/direction", handler.setDirection)
				r.Post("/turn", handler.selectTurn)
				r.Post("/cancel", handler.cancelNavigation)
			})
		})
		r.Route("/api/nodes", func(r chi.Router) {
			r.Post("/nearest", handler.nearestNode)
			r.Post("/nearby", handler.nodesNearby)
		})
	})
}

type RoutePreviewRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

func (s *RoutePreviewRequest) Bind(r *http.Request) error {
	if s.From == "" || s.To == "" {
		return errors.New("invalid request")
	}
	return nil
}

type NodeResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Floor int     `json:"floor"`
}

func NewNodeResponse(n datastructure.Node) NodeResponse {
	return NodeResponse{ID: n.ID, Name: n.Name, X: n.X, Y: n.Y, Floor: n.Floor}
}

type RoutePreviewResponse struct {
	Path         string                        `json:"path"`
	Dist         float64                       `json:"distance"`
	Route        []NodeResponse                `json:"route"`
	Instructions []guidance.WalkingInstruction `json:"instructions"`
}

func NewRoutePreviewResponse(path []datastructure.Node, encoded string, instructions []guidance.WalkingInstruction, dist float64) *RoutePreviewResponse {
	route := make([]NodeResponse, len(path))
	for i, n := range path {
		route[i] = NewNodeResponse(n)
	}
	return &RoutePreviewResponse{
		Path:         encoded,
		Dist:         dist,
		Route:        route,
		Instructions: instructions,
	}
}

func (h *NavigationHandler) routePreview(w http.ResponseWriter, r *http.Request) {
	data := &RoutePreviewRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.RouteQueryCount.WithLabelValues("preview").Inc()
	path, encoded, instructions, dist, err := h.svc.RoutePreview(r.Context(), data.From, data.To)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewRoutePreviewResponse(path, encoded, instructions, dist))
}

type CreateSessionRequest struct {
	Mode string `json:"mode" validate:"omitempty,oneof=automatic manual"`
}

func (s *CreateSessionRequest) Bind(r *http.Request) error {
	return nil
}

type SessionResponse struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
}

func (h *NavigationHandler) createSession(w http.ResponseWriter, r *http.Request) {
	data := &CreateSessionRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	mode, err := service.ParseMode(data.Mode)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	s := h.svc.CreateSession(r.Context(), mode)
	h.promeMetrics.ActiveSessions.Inc()

	modeName := "automatic"
	if mode == navigator.ModeManual {
		modeName = "manual"
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, SessionResponse{ID: s.ID, Mode: modeName})
}

func (h *NavigationHandler) closeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.svc.CloseSession(r.Context(), sessionID); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.ActiveSessions.Dec()
	render.NoContent(w, r)
}

func (h *NavigationHandler) sessionSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snap, err := h.svc.SessionSnapshot(r.Context(), sessionID)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, snap)
}

type NavigateToRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

func (s *NavigateToRequest) Bind(r *http.Request) error {
	if s.From == "" || s.To == "" {
		return errors.New("invalid request")
	}
	return nil
}

func (h *NavigationHandler) navigateTo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	data := &NavigateToRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.RouteQueryCount.WithLabelValues("session").Inc()
	snap, err := h.svc.NavigateTo(r.Context(), sessionID, data.From, data.To)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, snap)
}

type SetDriveRequest struct {
	Held *bool `json:"held" validate:"required"`
}

func (s *SetDriveRequest) Bind(r *http.Request) error {
	if s.Held == nil {
		return errors.New("invalid request")
	}
	return nil
}

func (h *NavigationHandler) setDrive(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	data := &SetDriveRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := h.svc.SetDrive(r.Context(), sessionID, *data.Held); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

type SetDirectionRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down left right"`
	Held      *bool  `json:"held" validate:"required"`
}

func (s *SetDirectionRequest) Bind(r *http.Request) error {
	if s.Direction == "" || s.Held == nil {
		return errors.New("invalid request")
	}
	return nil
}

func (h *NavigationHandler) setDirection(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	data := &SetDirectionRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	if err := h.svc.SetDirection(r.Context(), sessionID, data.Direction, *data.Held); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

type SelectTurnRequest struct {
	Turn string `json:"turn" validate:"required,oneof=left straight right"`
}

func (s *SelectTurnRequest) Bind(r *http.Request) error {
	if s.Turn == "" {
		return errors.New("invalid request")
	}
	return nil
}

func (h *NavigationHandler) selectTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	data := &SelectTurnRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	snap, err := h.svc.SelectTurn(r.Context(), sessionID, data.Turn)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, snap)
}

func (h *NavigationHandler) cancelNavigation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.svc.CancelNavigation(r.Context(), sessionID); err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.NoContent(w, r)
}

type PointQueryRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Floor int     `json:"floor"`
}

func (s *PointQueryRequest) Bind(r *http.Request) error {
	return nil
}

func (h *NavigationHandler) nearestNode(w http.ResponseWriter, r *http.Request) {
	data := &PointQueryRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	node, err := h.svc.NearestNode(r.Context(), data.X, data.Y, data.Floor)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewNodeResponse(node))
}

type NodesNearbyResponse struct {
	Nodes []NodeResponse `json:"nodes"`
}

func (h *NavigationHandler) nodesNearby(w http.ResponseWriter, r *http.Request) {
	data := &PointQueryRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	nodes, err := h.svc.NodesNearby(r.Context(), data.X, data.Y, data.Floor)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	out := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = NewNodeResponse(n)
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NodesNearbyResponse{Nodes: out})
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 422,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *domain.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	} else {
		switch ierr.Code() {
		case domain.ErrInternalServerError:
			return http.StatusInternalServerError
		case domain.ErrNotFound:
			return http.StatusNotFound
		case domain.ErrConflict:
			return http.StatusConflict
		case domain.ErrBadParamInput:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}

}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
