package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/inventory-backend/api/responses"
	"github.com/angelmondragon/inventory-backend/api/validators"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
)

const idParam = "id"

// CatalogService is the CRUD surface shared by products, categories, and
// suppliers.
type CatalogService[D any, I any] interface {
	List(ctx context.Context) ([]D, error)
	Get(ctx context.Context, id int64) (*D, error)
	Create(ctx context.Context, input I) (*D, error)
	Update(ctx context.Context, id int64, input I) (*D, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogHandlers binds a CatalogService to HTTP handlers. Resource names the
// entity in messages ("product", "category").
type CatalogHandlers[D any, I any] struct {
	svc      CatalogService[D, I]
	resource string
	logg     *logger.Logger
}

func NewCatalogHandlers[D any, I any](svc CatalogService[D, I], resource string, logg *logger.Logger) *CatalogHandlers[D, I] {
	return &CatalogHandlers[D, I]{svc: svc, resource: resource, logg: logg}
}

func (h *CatalogHandlers[D, I]) unavailable(w http.ResponseWriter, r *http.Request) bool {
	if h == nil || h.svc == nil {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
		return true
	}
	return false
}

func (h *CatalogHandlers[D, I]) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.unavailable(w, r) {
			return
		}
		rows, err := h.svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func (h *CatalogHandlers[D, I]) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.unavailable(w, r) {
			return
		}
		id, err := validators.ParseIDParam(r, idParam)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		row, err := h.svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func (h *CatalogHandlers[D, I]) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.unavailable(w, r) {
			return
		}
		var input I
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		row, err := h.svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func (h *CatalogHandlers[D, I]) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.unavailable(w, r) {
			return
		}
		id, err := validators.ParseIDParam(r, idParam)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		var input I
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		row, err := h.svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func (h *CatalogHandlers[D, I]) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.unavailable(w, r) {
			return
		}
		id, err := validators.ParseIDParam(r, idParam)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		responses.WriteMessage(w, capitalize(h.resource)+" deleted successfully")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
