package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"platform-adapter-service/internal/domain"
	"platform-adapter-service/internal/fieldmap"
	"platform-adapter-service/internal/store"
)

// UserIDHeader carries the acting user. Category mappings are scoped by it.
const UserIDHeader = "X-User-ID"

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	service  *Service
	reviewer store.CategoryMappingReviewer
	health   Pinger
	logger   *zap.Logger
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler. reviewer and health may be nil: without a
// reviewer the category-mapping review routes answer 501, without a pinger the health
// check only reports the process as up.
func NewHTTPHandler(service *Service, reviewer store.CategoryMappingReviewer, health Pinger, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		service:  service,
		reviewer: reviewer,
		health:   health,
		logger:   logger,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.logger.Error("Failed to encode JSON response", zap.Error(err))
		}
	}
}

func (h *HTTPHandler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("user_id", domain.UserIDFromContext(r.Context())),
	)
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

func (h *HTTPHandler) respondWithLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUnknownPlatform) {
		h.respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// UserContext copies the X-User-ID header into the request context.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(UserIDHeader)); id != "" {
			r = r.WithContext(domain.ContextWithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// --- Health ---

func (h *HTTPHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.requestLogger(r).Warn("Health check failed", zap.Error(err))
			h.respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Platform Handlers ---

var platformTypes = map[string]bool{
	string(domain.PlatformTypeStore):       true,
	string(domain.PlatformTypeMarketplace): true,
	string(domain.PlatformTypeSocial):      true,
	string(domain.PlatformTypeSupplier):    true,
}

func (h *HTTPHandler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	t := r.URL.Query().Get("type")
	if t != "" && !platformTypes[t] {
		h.respondWithError(w, http.StatusBadRequest, "Invalid type value. Allowed: store, marketplace, social, supplier")
		return
	}
	configs := h.service.Platforms(domain.PlatformType(t))
	if configs == nil {
		configs = []*domain.PlatformConfig{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": configs})
}

func (h *HTTPHandler) GetPlatform(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Platform(chi.URLParam(r, "platformId"))
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, cfg)
}

func (h *HTTPHandler) GetRequiredAttributes(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Platform(chi.URLParam(r, "platformId"))
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	attrs := h.service.attributes().RequiredAttributes(cfg.ID, r.URL.Query().Get("category"))
	if attrs == nil {
		attrs = []domain.PlatformAttribute{}
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": attrs})
}

// MappingView is the JSON form of a field mapping. Transforms are functions and are only
// reported as present or absent.
type MappingView struct {
	SourceField  string      `json:"source_field"`
	TargetField  string      `json:"target_field"`
	Required     bool        `json:"required"`
	DefaultValue interface{} `json:"default_value,omitempty"`
	Transformed  bool        `json:"transformed"`
}

func (h *HTTPHandler) GetFieldMappings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Platform(chi.URLParam(r, "platformId"))
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	mappings := h.service.fields().Mappings(cfg.ID)
	views := make([]MappingView, 0, len(mappings))
	for _, m := range mappings {
		views = append(views, MappingView{
			SourceField:  m.SourceField,
			TargetField:  m.TargetField,
			Required:     m.Required,
			DefaultValue: m.DefaultValue,
			Transformed:  m.Transform != nil,
		})
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}

// --- Adaptation Handlers ---

// AdaptInput defines the expected input for adapting a product. Custom mappings are
// applied on the full path only, so they require Resolve.
type AdaptInput struct {
	Product        domain.Product           `json:"product" validate:"required"`
	CustomMappings []fieldmap.OverrideEntry `json:"custom_mappings" validate:"omitempty,dive"`
	Resolve        bool                     `json:"resolve"`
}

func (h *HTTPHandler) AdaptProduct(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Adapter(chi.URLParam(r, "platformId"))
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}

	var input AdaptInput
	if !h.decode(w, r, &input) {
		return
	}
	if len(input.CustomMappings) > 0 && !input.Resolve {
		h.respondWithError(w, http.StatusBadRequest, "custom_mappings require resolve=true")
		return
	}

	custom := make([]fieldmap.FieldMapping, 0, len(input.CustomMappings))
	for i, e := range input.CustomMappings {
		fm, err := e.ToMapping()
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid custom mapping "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		custom = append(custom, fm)
	}

	var result *domain.AdaptedProduct
	if input.Resolve {
		result = a.AdaptAsync(r.Context(), input.Product, custom...)
	} else {
		result = a.Adapt(input.Product)
	}

	h.requestLogger(r).Debug("Product adapted",
		zap.String("platform", a.Platform()),
		zap.Bool("valid", result.IsValid),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))
	h.respondWithJSON(w, http.StatusOK, result)
}

// ValidateInput defines the expected input for validating a product.
type ValidateInput struct {
	Product domain.Product `json:"product" validate:"required"`
}

func (h *HTTPHandler) ValidateProduct(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Adapter(chi.URLParam(r, "platformId"))
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	var input ValidateInput
	if !h.decode(w, r, &input) {
		return
	}
	h.respondWithJSON(w, http.StatusOK, a.Validate(input.Product))
}

// --- Category Handlers ---

// CategoryInput names the free-text category to match or resolve.
type CategoryInput struct {
	SourceCategory string `json:"source_category" validate:"required,max=255"`
}

func (h *HTTPHandler) MatchCategory(w http.ResponseWriter, r *http.Request) {
	platformID := chi.URLParam(r, "platformId")
	if _, err := h.service.Platform(platformID); err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	var input CategoryInput
	if !h.decode(w, r, &input) {
		return
	}
	match, err := h.service.MatchCategory(platformID, input.SourceCategory)
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, match)
}

func (h *HTTPHandler) ResolveCategory(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Platform(chi.URLParam(r, "platformId"))
	if err != nil {
		h.respondWithLookupError(w, err)
		return
	}
	var input CategoryInput
	if !h.decode(w, r, &input) {
		return
	}
	h.respondWithJSON(w, http.StatusOK, h.service.categories().MapCategory(r.Context(), input.SourceCategory, cfg.ID))
}

// --- Category Mapping Review Handlers ---

func (h *HTTPHandler) ListCategoryMappings(w http.ResponseWriter, r *http.Request) {
	if h.reviewer == nil {
		h.respondWithError(w, http.StatusNotImplemented, "Category mapping review requires the postgres store")
		return
	}
	qParams := r.URL.Query()

	limit, err := strconv.Atoi(qParams.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	params := store.ListCategoryMappingsParams{
		UserID: domain.UserIDFromContext(r.Context()),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if p := qParams.Get("platform"); p != "" {
		cfg, err := h.service.Platform(p)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid platform filter")
			return
		}
		params.Platform = &cfg.ID
	}
	if v := qParams.Get("verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid verified value: must be true or false")
			return
		}
		params.IsVerified = &b
	}

	mappings, totalCount, err := h.reviewer.ListCategoryMappings(r.Context(), params)
	if err != nil {
		h.requestLogger(r).Error("ListCategoryMappings store operation failed", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve category mappings")
		return
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	h.respondWithJSON(w, http.StatusOK, PaginatedMappings{
		Data: mappings,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: totalCount,
			TotalPages: totalPages,
		},
	})
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PaginatedMappings is one page of category mappings.
type PaginatedMappings struct {
	Data       []domain.CategoryMapping `json:"data"`
	Pagination Pagination               `json:"pagination"`
}

// VerifyInput carries the reviewed target category.
type VerifyInput struct {
	TargetCategory string `json:"target_category" validate:"required,max=255"`
}

func (h *HTTPHandler) VerifyCategoryMapping(w http.ResponseWriter, r *http.Request) {
	if h.reviewer == nil {
		h.respondWithError(w, http.StatusNotImplemented, "Category mapping review requires the postgres store")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "mappingId"))
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid mapping ID format")
		return
	}
	var input VerifyInput
	if !h.decode(w, r, &input) {
		return
	}

	mapping, err := h.reviewer.VerifyCategoryMapping(r.Context(), domain.UserIDFromContext(r.Context()), id, input.TargetCategory)
	if err != nil {
		if errors.Is(err, store.ErrCategoryMappingNotFound) {
			h.respondWithError(w, http.StatusNotFound, store.ErrCategoryMappingNotFound.Error())
			return
		}
		h.requestLogger(r).Error("VerifyCategoryMapping store operation failed",
			zap.String("mapping_id", id.String()), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Failed to verify category mapping")
		return
	}
	h.requestLogger(r).Info("Category mapping verified",
		zap.String("mapping_id", id.String()),
		zap.String("target_category", mapping.TargetCategory))
	h.respondWithJSON(w, http.StatusOK, mapping)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserContext)

		r.Get("/healthz", h.Healthz)

		r.Route("/platforms", func(r chi.Router) {
			r.Get("/", h.ListPlatforms)
			r.Route("/{platformId}", func(r chi.Router) {
				r.Get("/", h.GetPlatform)
				r.Get("/attributes", h.GetRequiredAttributes)
				r.Get("/mappings", h.GetFieldMappings)
				r.Post("/adapt", h.AdaptProduct)
				r.Post("/validate", h.ValidateProduct)
				r.Post("/categories/match", h.MatchCategory)
				r.Post("/categories/resolve", h.ResolveCategory)
			})
		})

		r.Route("/category-mappings", func(r chi.Router) {
			r.Get("/", h.ListCategoryMappings)
			r.Post("/{mappingId}/verify", h.VerifyCategoryMapping)
		})
	})
}
