package web

import (
	"bytes"
	"net/http"
)

// pageLoader builds the page name and data for a cached page.
type pageLoader func(pd PageData) (page string, data any, err error)

// renderCached serves a GET page through the page cache, keyed by the
// request URI and stored under tags. A page shown with a flash message is
// rendered fresh and never stored.
func (h *Handler) renderCached(w http.ResponseWriter, r *http.Request, tags []string, load pageLoader) {
	ctx := r.Context()
	key := r.URL.RequestURI()
	pd := h.newPageData(w, r, "")

	if pd.Flash == nil {
		if body, ok := h.cache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", htmlContentType)
			w.Header().Set("X-Cache", "HIT")
			w.Write(body)
			return
		}
	}

	since := h.cache.Version(ctx)
	page, data, err := load(pd)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.execute(&buf, page, "base", data); err != nil {
		h.logger.Error().Err(err).Str("template", page).Msg("template render error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if pd.Flash == nil {
		h.cache.Set(ctx, key, tags, buf.Bytes(), since)
		w.Header().Set("X-Cache", "MISS")
	} else {
		w.Header().Set("X-Cache", "BYPASS")
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.Write(buf.Bytes())
}
