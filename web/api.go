package web

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/domain/product"
	"github.com/artpar/postshop/pkg/jsonapi"
	"github.com/go-chi/chi/v5"
)

// Resource type names.
const (
	typePosts    = "posts"
	typeProducts = "products"
)

// APIRouter returns the JSON:API router, mounted under /api.
func (h *Handler) APIRouter() chi.Router {
	r := chi.NewRouter()

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.APIListPosts)
		r.With(requireJSONAPI).Post("/", h.APICreatePost)
		r.Get("/{id}", h.APIGetPost)
		r.With(requireJSONAPI).Patch("/{id}", h.APIUpdatePost)
		r.Delete("/{id}", h.APIDeletePost)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.APIListProducts)
		r.With(requireJSONAPI).Post("/", h.APICreateProduct)
		r.Get("/{id}", h.APIGetProduct)
		r.With(requireJSONAPI).Patch("/{id}", h.APIUpdateProduct)
		r.Delete("/{id}", h.APIDeleteProduct)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteErrors(w, jsonapi.NewError(http.StatusNotFound, "not_found", "no resource at "+r.URL.Path))
	})

	return r
}

// requireJSONAPI rejects request bodies that are not JSON.
func requireJSONAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != jsonapi.MediaType && mt != "application/json") {
			jsonapi.WriteErrors(w, jsonapi.UnsupportedMediaType(ct))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeAPIError maps service errors onto JSON:API error documents.
func (h *Handler) writeAPIError(w http.ResponseWriter, r *http.Request, resourceType, id string, err error) {
	var je jsonapi.Error
	switch {
	case errors.As(err, &je):
		jsonapi.WriteErrors(w, je)
	case errors.Is(err, app.ErrNotFound):
		jsonapi.WriteErrors(w, jsonapi.NotFound(resourceType, id))
	default:
		if ve, ok := app.IsValidation(err); ok {
			jsonapi.WriteErrors(w, jsonapi.InvalidFields(ve.Fields())...)
			return
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("api request failed")
		jsonapi.WriteErrors(w, jsonapi.Internal())
	}
}

// mergeForm overlays submitted attributes on stored values so PATCH can
// send only the attributes it changes.
func mergeForm(stored, attrs map[string]string) map[string]string {
	for k, v := range attrs {
		if _, known := stored[k]; known {
			stored[k] = v
		}
	}
	return stored
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// -----------------------------------------------------------------------------
// Posts
// -----------------------------------------------------------------------------

func postResource(p post.Post) jsonapi.Resource {
	return jsonapi.NewResource(typePosts, p.ID, "/api/posts", jsonapi.Attributes{
		"title":      p.Title,
		"content":    p.Content,
		"author":     p.Author,
		"published":  p.Published,
		"created_at": timestamp(p.CreatedAt),
		"updated_at": timestamp(p.UpdatedAt),
	})
}

// APIListPosts lists posts with page[number] and page[size].
func (h *Handler) APIListPosts(w http.ResponseWriter, r *http.Request) {
	number, size := jsonapi.ParsePage(r.URL.Query(), h.perPage)

	page, err := h.posts.List(r.Context(), number, size)
	if err != nil {
		h.writeAPIError(w, r, typePosts, "", err)
		return
	}

	resources := make([]jsonapi.Resource, len(page.Items))
	for i, p := range page.Items {
		resources[i] = postResource(p)
	}
	jsonapi.WriteCollection(w, resources, jsonapi.Page{
		Number: page.Number, Size: page.Size, Total: page.Total, Base: "/api/posts",
	})
}

// APIGetPost returns one post.
func (h *Handler) APIGetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.writeAPIError(w, r, typePosts, id, err)
		return
	}
	jsonapi.WriteResource(w, http.StatusOK, postResource(p))
}

// APICreatePost creates a post.
func (h *Handler) APICreatePost(w http.ResponseWriter, r *http.Request) {
	attrs, err := jsonapi.DecodeAttributes(r.Body, typePosts, "")
	if err != nil {
		h.writeAPIError(w, r, typePosts, "", err)
		return
	}

	p, err := h.posts.Create(r.Context(), attrs)
	if err != nil {
		h.writeAPIError(w, r, typePosts, "", err)
		return
	}
	jsonapi.WriteCreated(w, postResource(p))
}

// APIUpdatePost updates the attributes present in the request.
func (h *Handler) APIUpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	attrs, err := jsonapi.DecodeAttributes(r.Body, typePosts, id)
	if err != nil {
		h.writeAPIError(w, r, typePosts, id, err)
		return
	}

	existing, err := h.posts.Get(ctx, id)
	if err != nil {
		h.writeAPIError(w, r, typePosts, id, err)
		return
	}

	p, err := h.posts.Update(ctx, id, mergeForm(existing.Form(), attrs))
	if err != nil {
		h.writeAPIError(w, r, typePosts, id, err)
		return
	}
	jsonapi.WriteResource(w, http.StatusOK, postResource(p))
}

// APIDeletePost deletes a post.
func (h *Handler) APIDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.writeAPIError(w, r, typePosts, id, err)
		return
	}
	jsonapi.WriteNoContent(w)
}

// -----------------------------------------------------------------------------
// Products
// -----------------------------------------------------------------------------

func productResource(p product.Product) jsonapi.Resource {
	return jsonapi.NewResource(typeProducts, p.ID, "/api/products", jsonapi.Attributes{
		"name":        p.Name,
		"description": p.Description,
		"sku":         p.SKU,
		"price":       p.Price(),
		"price_cents": p.PriceCents,
		"stock":       p.Stock,
		"in_stock":    p.InStock(),
		"created_at":  timestamp(p.CreatedAt),
		"updated_at":  timestamp(p.UpdatedAt),
	})
}

// APIListProducts lists products with page[number] and page[size].
func (h *Handler) APIListProducts(w http.ResponseWriter, r *http.Request) {
	number, size := jsonapi.ParsePage(r.URL.Query(), h.perPage)

	page, err := h.products.List(r.Context(), number, size)
	if err != nil {
		h.writeAPIError(w, r, typeProducts, "", err)
		return
	}

	resources := make([]jsonapi.Resource, len(page.Items))
	for i, p := range page.Items {
		resources[i] = productResource(p)
	}
	jsonapi.WriteCollection(w, resources, jsonapi.Page{
		Number: page.Number, Size: page.Size, Total: page.Total, Base: "/api/products",
	})
}

// APIGetProduct returns one product.
func (h *Handler) APIGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.writeAPIError(w, r, typeProducts, id, err)
		return
	}
	jsonapi.WriteResource(w, http.StatusOK, productResource(p))
}

// APICreateProduct creates a product.
func (h *Handler) APICreateProduct(w http.ResponseWriter, r *http.Request) {
	attrs, err := jsonapi.DecodeAttributes(r.Body, typeProducts, "")
	if err != nil {
		h.writeAPIError(w, r, typeProducts, "", err)
		return
	}

	p, err := h.products.Create(r.Context(), attrs)
	if err != nil {
		h.writeAPIError(w, r, typeProducts, "", err)
		return
	}
	jsonapi.WriteCreated(w, productResource(p))
}

// APIUpdateProduct updates the attributes present in the request.
func (h *Handler) APIUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	attrs, err := jsonapi.DecodeAttributes(r.Body, typeProducts, id)
	if err != nil {
		h.writeAPIError(w, r, typeProducts, id, err)
		return
	}

	existing, err := h.products.Get(ctx, id)
	if err != nil {
		h.writeAPIError(w, r, typeProducts, id, err)
		return
	}

	p, err := h.products.Update(ctx, id, mergeForm(existing.Form(), attrs))
	if err != nil {
		h.writeAPIError(w, r, typeProducts, id, err)
		return
	}
	jsonapi.WriteResource(w, http.StatusOK, productResource(p))
}

// APIDeleteProduct deletes a product.
func (h *Handler) APIDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.writeAPIError(w, r, typeProducts, id, err)
		return
	}
	jsonapi.WriteNoContent(w)
}
