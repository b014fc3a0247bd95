// Package web provides the server-rendered post and product pages and
// the JSON:API endpoints. Templates and static files are embedded in the binary.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/domain/product"
	"github.com/artpar/postshop/ports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

//go:embed templates static
var assets embed.FS

const htmlContentType = "text/html; charset=utf-8"

// Handler provides the web UI and API endpoints.
type Handler struct {
	templates map[string]*template.Template // One template per page
	posts     *app.PostService
	products  *app.ProductService
	cache     ports.PageCache
	sanitizer ports.Sanitizer
	perPage   int
	logger    zerolog.Logger
	version   string
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Posts     *app.PostService
	Products  *app.ProductService
	Cache     ports.PageCache
	Sanitizer ports.Sanitizer
	PerPage   int
	Logger    zerolog.Logger
	Version   string
}

// NewHandler creates a new web handler.
func NewHandler(deps Deps) (*Handler, error) {
	h := &Handler{
		posts:     deps.Posts,
		products:  deps.Products,
		cache:     deps.Cache,
		sanitizer: deps.Sanitizer,
		perPage:   deps.PerPage,
		logger:    deps.Logger.With().Str("component", "web").Logger(),
		version:   deps.Version,
	}
	if h.perPage <= 0 {
		h.perPage = app.DefaultPageSize
	}

	tmpl, err := parseTemplates(h.funcs())
	if err != nil {
		return nil, err
	}
	h.templates = tmpl
	return h, nil
}

// Router returns the web router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	staticFS, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", h.HomePage)

	// Posts
	r.Get("/posts", h.PostsPage)
	r.Get("/posts/new", h.PostNewPage)
	r.Post("/posts", h.PostCreate)
	r.Get("/posts/{id}", h.PostPage)
	r.Get("/posts/{id}/edit", h.PostEditPage)
	r.Post("/posts/{id}", h.PostUpdate)
	r.Post("/posts/{id}/delete", h.PostDelete)
	r.Delete("/posts/{id}", h.PostDelete)

	// Products
	r.Get("/products", h.ProductsPage)
	r.Get("/products/new", h.ProductNewPage)
	r.Post("/products", h.ProductCreate)
	r.Get("/products/{id}", h.ProductPage)
	r.Get("/products/{id}/edit", h.ProductEditPage)
	r.Post("/products/{id}", h.ProductUpdate)
	r.Post("/products/{id}/delete", h.ProductDelete)
	r.Delete("/products/{id}", h.ProductDelete)

	r.Mount("/api", h.APIRouter())

	r.NotFound(h.NotFoundPage)

	return r
}

// HomePage shows the newest posts and products.
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.renderCached(w, r, []string{post.ListTag, product.ListTag}, func(pd PageData) (string, any, error) {
		ctx := r.Context()
		posts, err := h.posts.List(ctx, 1, 3)
		if err != nil {
			return "", nil, err
		}
		products, err := h.products.List(ctx, 1, 3)
		if err != nil {
			return "", nil, err
		}

		pd.Title = "Home"
		return "home", struct {
			PageData
			Posts    app.Page[post.Post]
			Products app.Page[product.Product]
		}{pd, posts, products}, nil
	})
}

// NotFoundPage renders the 404 page.
func (h *Handler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	pd := h.newPageData(w, r, "Not Found")
	h.renderStatus(w, http.StatusNotFound, "not_found", pd)
}

// handleError renders the 404 page for missing entities and a 500 page otherwise.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrNotFound) {
		h.NotFoundPage(w, r)
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	pd := h.newPageData(w, r, "Error")
	h.renderStatus(w, http.StatusInternalServerError, "error", pd)
}

// render writes a full page with status 200.
func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	h.renderStatus(w, http.StatusOK, name, data)
}

// renderStatus executes a page into a buffer first so a template error
// never leaves a half-written response.
func (h *Handler) renderStatus(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.execute(&buf, name, "base", data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("template render error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderPartial writes a named component without the layout.
func (h *Handler) renderPartial(w http.ResponseWriter, page, name string, data any) {
	var buf bytes.Buffer
	if err := h.execute(&buf, page, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("partial render error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.Write(buf.Bytes())
}

func (h *Handler) execute(w io.Writer, page, name string, data any) error {
	tmpl, ok := h.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, name, data)
}

func (h *Handler) funcs() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"isoTime": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		// markup re-sanitizes stored content before marking it safe.
		"markup": func(s string) template.HTML {
			return template.HTML(h.sanitizer.Markup(s))
		},
		"excerpt": func(s string, n int) string {
			return post.Excerpt(h.sanitizer.Text(s), n)
		},
		"version": func() string {
			return h.version
		},
	}
}

// parseTemplates parses each page as its own template (layout + components + page).
func parseTemplates(funcs template.FuncMap) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	layoutContent, err := fs.ReadFile(assets, "templates/layouts/base.html")
	if err != nil {
		return nil, err
	}

	var componentContent []byte
	components, err := fs.Glob(assets, "templates/components/*.html")
	if err != nil {
		return nil, err
	}
	for _, comp := range components {
		content, err := fs.ReadFile(assets, comp)
		if err != nil {
			return nil, err
		}
		componentContent = append(componentContent, content...)
	}

	pages, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/pages/"), ".html")

		pageContent, err := fs.ReadFile(assets, page)
		if err != nil {
			return nil, err
		}

		tmpl := template.New(name).Funcs(funcs)
		if _, err := tmpl.Parse(string(layoutContent)); err != nil {
			return nil, fmt.Errorf("parse layout for %s: %w", name, err)
		}
		if len(componentContent) > 0 {
			if _, err := tmpl.Parse(string(componentContent)); err != nil {
				return nil, fmt.Errorf("parse components for %s: %w", name, err)
			}
		}
		if _, err := tmpl.Parse(string(pageContent)); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}

		templates[name] = tmpl
	}

	return templates, nil
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// partialError answers an htmx request with a plain status.
func (h *Handler) partialError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("partial request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
