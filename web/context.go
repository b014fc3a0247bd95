package web

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "flash"

// PageData holds common data for all pages.
type PageData struct {
	Title       string
	CurrentPath string
	Flash       *FlashMessage
}

// FlashMessage represents a one-time notification.
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// newPageData creates base page data and consumes any pending flash.
func (h *Handler) newPageData(w http.ResponseWriter, r *http.Request, title string) PageData {
	return PageData{
		Title:       title,
		CurrentPath: section(r.URL.Path),
		Flash:       popFlash(w, r),
	}
}

// section returns the first path segment, used to highlight the nav.
func section(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	return "/" + parts[0]
}

// setFlash stores a one-shot notice shown on the next page.
func setFlash(w http.ResponseWriter, typ, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(typ + ":" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *FlashMessage {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	typ, msg, ok := strings.Cut(raw, ":")
	if !ok || msg == "" {
		return nil
	}
	switch typ {
	case "success", "error", "info":
	default:
		typ = "info"
	}
	return &FlashMessage{Type: typ, Message: msg}
}
