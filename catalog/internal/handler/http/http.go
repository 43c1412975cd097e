package http

import (
	"encoding/json"
	"errors"
	"mcatalog/catalog/internal/auth"
	"mcatalog/catalog/internal/controller/catalog"
	"mcatalog/catalog/internal/controller/list"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/logging"
	"mcatalog/pkg/metrics"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

// Handler defines a catalog HTTP handler.
type Handler struct {
	catalogCtrl *catalog.Controller
	listCtrl    *list.Controller
	validate    *validator.Validate
	logger      *zap.Logger

	getItemMetrics      *metrics.EndpointMetrics
	searchMetrics       *metrics.EndpointMetrics
	discoverMetrics     *metrics.EndpointMetrics
	getPersonMetrics    *metrics.EndpointMetrics
	addToListMetrics    *metrics.EndpointMetrics
	removeMetrics       *metrics.EndpointMetrics
	rateMetrics         *metrics.EndpointMetrics
	getListMetrics      *metrics.EndpointMetrics
	contributorsMetrics *metrics.EndpointMetrics
}

// New creates a new catalog HTTP handler.
func New(catalogCtrl *catalog.Controller, listCtrl *list.Controller, scope tally.Scope, logger *zap.Logger) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "http"),
	)
	return &Handler{
		catalogCtrl:         catalogCtrl,
		listCtrl:            listCtrl,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		logger:              logger,
		getItemMetrics:      metrics.NewEndpointMetrics(scope, "GetItem"),
		searchMetrics:       metrics.NewEndpointMetrics(scope, "Search"),
		discoverMetrics:     metrics.NewEndpointMetrics(scope, "Discover"),
		getPersonMetrics:    metrics.NewEndpointMetrics(scope, "GetPerson"),
		addToListMetrics:    metrics.NewEndpointMetrics(scope, "AddToList"),
		removeMetrics:       metrics.NewEndpointMetrics(scope, "RemoveFromList"),
		rateMetrics:         metrics.NewEndpointMetrics(scope, "Rate"),
		getListMetrics:      metrics.NewEndpointMetrics(scope, "GetList"),
		contributorsMetrics: metrics.NewEndpointMetrics(scope, "TopContributors"),
	}
}

// Router builds the route table. authMiddleware guards the list and
// rating endpoints.
func (h *Handler) Router(authMiddleware mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/items/{id}", h.GetItem).Methods(http.MethodGet)
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/discover/popular", h.Popular).Methods(http.MethodGet)
	api.HandleFunc("/discover/top-rated", h.TopRated).Methods(http.MethodGet)
	api.HandleFunc("/people/{id}", h.GetPerson).Methods(http.MethodGet)
	api.HandleFunc("/contributors", h.TopContributors).Methods(http.MethodGet)

	authed := api.PathPrefix("").Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/list", h.GetList).Methods(http.MethodGet)
	authed.HandleFunc("/list", h.AddToList).Methods(http.MethodPost)
	authed.HandleFunc("/list/{id}", h.RemoveFromList).Methods(http.MethodDelete)
	authed.HandleFunc("/ratings/{id}", h.Rate).Methods(http.MethodPost)
	return r
}

func (h *Handler) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Response encode error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func parseMediaType(req *http.Request) (model.MediaType, bool) {
	switch v := req.FormValue("mediaType"); v {
	case "", string(model.MediaTypeMovie):
		return model.MediaTypeMovie, true
	case string(model.MediaTypeTv):
		return model.MediaTypeTv, true
	default:
		return "", false
	}
}

func parsePage(req *http.Request) int {
	page, err := strconv.Atoi(req.FormValue("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// GetItem handles GET /api/v1/items/{id} requests.
func (h *Handler) GetItem(w http.ResponseWriter, req *http.Request) {
	h.getItemMetrics.Calls.Inc(1)
	id := mux.Vars(req)["id"]
	mediaType, ok := parseMediaType(req)
	if !ok {
		h.getItemMetrics.InvalidArgumentErrors.Inc(1)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	details, err := h.catalogCtrl.GetItem(req.Context(), id, mediaType)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.getItemMetrics.NotFoundErrors.Inc(1)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.getItemMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Failed to get item", zap.String(logging.FieldItemId, id), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.getItemMetrics.Successes.Inc(1)
	h.respond(w, details)
}

// Search handles GET /api/v1/search requests.
func (h *Handler) Search(w http.ResponseWriter, req *http.Request) {
	h.searchMetrics.Calls.Inc(1)
	query := req.FormValue("query")
	if query == "" {
		h.searchMetrics.InvalidArgumentErrors.Inc(1)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	kind := model.SearchKindMulti
	switch req.FormValue("kind") {
	case "", string(model.SearchKindMulti):
	case string(model.SearchKindPerson):
		kind = model.SearchKindPerson
	default:
		h.searchMetrics.InvalidArgumentErrors.Inc(1)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	page, err := h.catalogCtrl.Search(req.Context(), query, parsePage(req), kind)
	if err != nil {
		h.searchMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Search failed", zap.String("query", query), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	h.searchMetrics.Successes.Inc(1)
	h.respond(w, page)
}

// Popular handles GET /api/v1/discover/popular requests.
func (h *Handler) Popular(w http.ResponseWriter, req *http.Request) {
	h.discoverMetrics.Calls.Inc(1)
	mediaType, ok := parseMediaType(req)
	if !ok {
		h.discoverMetrics.InvalidArgumentErrors.Inc(1)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	page, err := h.catalogCtrl.Popular(req.Context(), mediaType, parsePage(req))
	if err != nil {
		h.discoverMetrics.InternalErrors.Inc(1)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if page.Degraded {
		h.discoverMetrics.DegradedResponses.Inc(1)
	}
	h.discoverMetrics.Successes.Inc(1)
	h.respond(w, page)
}

// TopRated handles GET /api/v1/discover/top-rated requests.
func (h *Handler) TopRated(w http.ResponseWriter, req *http.Request) {
	h.discoverMetrics.Calls.Inc(1)
	page, err := h.catalogCtrl.TopRated(req.Context(), parsePage(req))
	if err != nil {
		h.discoverMetrics.InternalErrors.Inc(1)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if page.Degraded {
		h.discoverMetrics.DegradedResponses.Inc(1)
	}
	h.discoverMetrics.Successes.Inc(1)
	h.respond(w, page)
}

// GetPerson handles GET /api/v1/people/{id} requests.
func (h *Handler) GetPerson(w http.ResponseWriter, req *http.Request) {
	h.getPersonMetrics.Calls.Inc(1)
	id := mux.Vars(req)["id"]
	p, err := h.catalogCtrl.GetPerson(req.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.getPersonMetrics.NotFoundErrors.Inc(1)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.getPersonMetrics.InternalErrors.Inc(1)
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	h.getPersonMetrics.Successes.Inc(1)
	h.respond(w, p)
}

// AddToList handles POST /api/v1/list requests.
func (h *Handler) AddToList(w http.ResponseWriter, req *http.Request) {
	h.addToListMetrics.Calls.Inc(1)
	userId, ok := auth.UserIdFromContext(req.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var seed model.ItemSeed
	if err := json.NewDecoder(req.Body).Decode(&seed); err != nil {
		h.addToListMetrics.InvalidArgumentErrors.Inc(1)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&seed); err != nil {
		h.addToListMetrics.InvalidArgumentErrors.Inc(1)
		h.logger.Debug("Rejected item seed", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.listCtrl.AddToList(req.Context(), userId, &seed); err != nil {
		if errors.Is(err, list.ErrAlreadyInList) {
			h.addToListMetrics.DuplicateErrors.Inc(1)
			w.WriteHeader(http.StatusConflict)
			return
		}
		h.addToListMetrics.InternalErrors.Inc(1)
		h.logger.Warn("Failed to add list entry",
			zap.String(logging.FieldUserId, string(userId)),
			zap.String(logging.FieldItemId, seed.ExternalId),
			zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.addToListMetrics.Successes.Inc(1)
	w.WriteHeader(http.StatusCreated)
}

// RemoveFromList handles DELETE /api/v1/list/{id} requests.
func (h *Handler) RemoveFromList(w http.ResponseWriter, req *http.Request) {
	h.removeMetrics.Calls.Inc(1)
	userId, ok := auth.UserIdFromContext(req.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id := mux.Vars(req)["id"]
	if err := h.listCtrl.RemoveFromList(req.Context(), userId, id); err != nil {
		h.removeMetrics.InternalErrors.Inc(1)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.removeMetrics.Successes.Inc(1)
	w.WriteHeader(http.StatusNoContent)
}

type rateRequest struct {
	Value model.RatingValue `json:"value"`
}

// Rate handles POST /api/v1/ratings/{id} requests.
func (h *Handler) Rate(w http.ResponseWriter, req *http.Request) {
	h.rateMetrics.Calls.Inc(1)
	userId, ok := auth.UserIdFromContext(req.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id := mux.Vars(req)["id"]
	var body rateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.rateMetrics.InvalidArgumentErrors.Inc(1)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.listCtrl.Rate(req.Context(), userId, id, body.Value); err != nil {
		switch {
		case errors.Is(err, list.ErrInvalidValue):
			h.rateMetrics.InvalidArgumentErrors.Inc(1)
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, list.ErrNotFound):
			h.rateMetrics.NotFoundErrors.Inc(1)
			w.WriteHeader(http.StatusNotFound)
		default:
			h.rateMetrics.InternalErrors.Inc(1)
			h.logger.Warn("Failed to rate item",
				zap.String(logging.FieldUserId, string(userId)),
				zap.String(logging.FieldItemId, id),
				zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	h.rateMetrics.Successes.Inc(1)
	w.WriteHeader(http.StatusNoContent)
}

// GetList handles GET /api/v1/list requests.
func (h *Handler) GetList(w http.ResponseWriter, req *http.Request) {
	h.getListMetrics.Calls.Inc(1)
	userId, ok := auth.UserIdFromContext(req.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	entries, err := h.listCtrl.ListForUser(req.Context(), userId)
	if err != nil {
		h.getListMetrics.InternalErrors.Inc(1)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []model.ListEntryView{}
	}
	h.getListMetrics.Successes.Inc(1)
	h.respond(w, entries)
}

// TopContributors handles GET /api/v1/contributors requests.
func (h *Handler) TopContributors(w http.ResponseWriter, req *http.Request) {
	h.contributorsMetrics.Calls.Inc(1)
	limit, _ := strconv.Atoi(req.FormValue("limit"))
	contributors, err := h.listCtrl.TopContributors(req.Context(), limit)
	if err != nil {
		h.contributorsMetrics.InternalErrors.Inc(1)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if contributors == nil {
		contributors = []model.Contributor{}
	}
	h.contributorsMetrics.Successes.Inc(1)
	h.respond(w, contributors)
}
