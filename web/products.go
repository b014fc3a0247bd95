package web

import (
	"net/http"
	"strconv"

	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/domain/product"
	"github.com/go-chi/chi/v5"
)

type productListData struct {
	PageData
	Products []product.Product
	Total    int
	Pager    Pager
}

type productData struct {
	PageData
	Product product.Product
}

type productFormData struct {
	PageData
	IsEdit bool
	Form   Form
}

// ProductsPage lists products, one page at a time.
func (h *Handler) ProductsPage(w http.ResponseWriter, r *http.Request) {
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))

	h.renderCached(w, r, []string{product.ListTag}, func(pd PageData) (string, any, error) {
		data, err := h.productList(r, pd, number)
		return "products", data, err
	})
}

func (h *Handler) productList(r *http.Request, pd PageData, number int) (productListData, error) {
	page, err := h.products.List(r.Context(), number, h.perPage)
	if err != nil {
		return productListData{}, err
	}
	pd.Title = "Products"
	return productListData{
		PageData: pd,
		Products: page.Items,
		Total:    page.Total,
		Pager:    Pager{Base: "/products", Number: page.Number, TotalPages: page.TotalPages()},
	}, nil
}

// ProductPage shows a single product.
func (h *Handler) ProductPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.renderCached(w, r, []string{product.ListTag, product.ItemTag(id)}, func(pd PageData) (string, any, error) {
		p, err := h.products.Get(r.Context(), id)
		if err != nil {
			return "", nil, err
		}
		pd.Title = p.Name
		return "product", productData{PageData: pd, Product: p}, nil
	})
}

// ProductNewPage renders the create form.
func (h *Handler) ProductNewPage(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, http.StatusOK, "", map[string]string{"stock": "0"}, nil)
}

// ProductCreate handles the create form submission.
func (h *Handler) ProductCreate(w http.ResponseWriter, r *http.Request) {
	values := formValues(r, product.Schema)

	p, err := h.products.Create(r.Context(), values)
	if ve, ok := app.IsValidation(err); ok {
		h.renderProductForm(w, r, http.StatusUnprocessableEntity, "", ve.Values, ve.Fields())
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	setFlash(w, "success", "Product created.")
	http.Redirect(w, r, "/products/"+p.ID, http.StatusSeeOther)
}

// ProductEditPage renders the edit form prefilled with the stored product.
func (h *Handler) ProductEditPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.renderProductForm(w, r, http.StatusOK, id, p.Form(), nil)
}

// ProductUpdate handles the edit form submission.
func (h *Handler) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	values := formValues(r, product.Schema)

	_, err := h.products.Update(r.Context(), id, values)
	if ve, ok := app.IsValidation(err); ok {
		h.renderProductForm(w, r, http.StatusUnprocessableEntity, id, ve.Values, ve.Fields())
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	setFlash(w, "success", "Product updated.")
	http.Redirect(w, r, "/products/"+id, http.StatusSeeOther)
}

// ProductDelete deletes a product. HTMX requests get the refreshed list partial;
// form posts are redirected to the list.
func (h *Handler) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.products.Delete(r.Context(), id); err != nil {
		if isHTMX(r) {
			h.partialError(w, r, err)
			return
		}
		h.handleError(w, r, err)
		return
	}

	if isHTMX(r) {
		number, _ := strconv.Atoi(r.URL.Query().Get("page"))
		data, err := h.productList(r, PageData{}, number)
		if err != nil {
			h.partialError(w, r, err)
			return
		}
		h.renderPartial(w, "products", "partial_products", data)
		return
	}

	setFlash(w, "success", "Product deleted.")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, id string, values, errs map[string]string) {
	title, action, submit, cancel := "New Product", "/products", "Create product", "/products"
	if id != "" {
		title, action, submit, cancel = "Edit Product", "/products/"+id, "Save changes", "/products/"+id
	}

	data := productFormData{
		PageData: h.newPageData(w, r, title),
		IsEdit:   id != "",
		Form:     newForm(product.Schema, action, submit, cancel, values, errs),
	}
	h.renderStatus(w, status, "product_form", data)
}
