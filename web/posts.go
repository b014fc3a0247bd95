package web

import (
	"net/http"
	"strconv"

	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/domain/post"
	"github.com/go-chi/chi/v5"
)

type postListData struct {
	PageData
	Posts []post.Post
	Total int
	Pager Pager
}

type postData struct {
	PageData
	Post post.Post
}

type postFormData struct {
	PageData
	IsEdit bool
	Form   Form
}

// PostsPage lists posts, one page at a time.
func (h *Handler) PostsPage(w http.ResponseWriter, r *http.Request) {
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))

	h.renderCached(w, r, []string{post.ListTag}, func(pd PageData) (string, any, error) {
		data, err := h.postList(r, pd, number)
		return "posts", data, err
	})
}

func (h *Handler) postList(r *http.Request, pd PageData, number int) (postListData, error) {
	page, err := h.posts.List(r.Context(), number, h.perPage)
	if err != nil {
		return postListData{}, err
	}
	pd.Title = "Posts"
	return postListData{
		PageData: pd,
		Posts:    page.Items,
		Total:    page.Total,
		Pager:    Pager{Base: "/posts", Number: page.Number, TotalPages: page.TotalPages()},
	}, nil
}

// PostPage shows a single post.
func (h *Handler) PostPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.renderCached(w, r, []string{post.ListTag, post.ItemTag(id)}, func(pd PageData) (string, any, error) {
		p, err := h.posts.Get(r.Context(), id)
		if err != nil {
			return "", nil, err
		}
		pd.Title = p.Title
		return "post", postData{PageData: pd, Post: p}, nil
	})
}

// PostNewPage renders the create form.
func (h *Handler) PostNewPage(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, http.StatusOK, "", nil, nil)
}

// PostCreate handles the create form submission.
func (h *Handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	values := formValues(r, post.Schema)

	p, err := h.posts.Create(r.Context(), values)
	if ve, ok := app.IsValidation(err); ok {
		h.renderPostForm(w, r, http.StatusUnprocessableEntity, "", ve.Values, ve.Fields())
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	setFlash(w, "success", "Post created.")
	http.Redirect(w, r, "/posts/"+p.ID, http.StatusSeeOther)
}

// PostEditPage renders the edit form prefilled with the stored post.
func (h *Handler) PostEditPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.renderPostForm(w, r, http.StatusOK, id, p.Form(), nil)
}

// PostUpdate handles the edit form submission.
func (h *Handler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	values := formValues(r, post.Schema)

	_, err := h.posts.Update(r.Context(), id, values)
	if ve, ok := app.IsValidation(err); ok {
		h.renderPostForm(w, r, http.StatusUnprocessableEntity, id, ve.Values, ve.Fields())
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	setFlash(w, "success", "Post updated.")
	http.Redirect(w, r, "/posts/"+id, http.StatusSeeOther)
}

// PostDelete deletes a post. HTMX requests get the refreshed list partial;
// form posts are redirected to the list.
func (h *Handler) PostDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.posts.Delete(r.Context(), id); err != nil {
		if isHTMX(r) {
			h.partialError(w, r, err)
			return
		}
		h.handleError(w, r, err)
		return
	}

	if isHTMX(r) {
		number, _ := strconv.Atoi(r.URL.Query().Get("page"))
		data, err := h.postList(r, PageData{}, number)
		if err != nil {
			h.partialError(w, r, err)
			return
		}
		h.renderPartial(w, "posts", "partial_posts", data)
		return
	}

	setFlash(w, "success", "Post deleted.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, status int, id string, values, errs map[string]string) {
	title, action, submit, cancel := "New Post", "/posts", "Create post", "/posts"
	if id != "" {
		title, action, submit, cancel = "Edit Post", "/posts/"+id, "Save changes", "/posts/"+id
	}
	if values == nil {
		values = map[string]string{}
	}

	data := postFormData{
		PageData: h.newPageData(w, r, title),
		IsEdit:   id != "",
		Form:     newForm(post.Schema, action, submit, cancel, values, errs),
	}
	h.renderStatus(w, status, "post_form", data)
}
