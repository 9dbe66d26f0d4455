package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/product"
	"storefront/internal/validation"
)

const featuredCount = 4

type homeView struct {
	Featured []*product.Product
}

type productsView struct {
	Products    []*product.Product
	MinPrice    string
	MaxPrice    string
	Search      string
	Sort        string
	FilterError string
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), product.ListOptions{
		SortField:     product.SortByID,
		SortDirection: product.SortAsc,
	})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}
	h.render(w, r, http.StatusOK, "home", "Home", homeView{Featured: products})
}

// productList sorts by price; sort is asc or desc.
func (h *Handler) productList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := productsView{
		MinPrice: strings.TrimSpace(q.Get("minPrice")),
		MaxPrice: strings.TrimSpace(q.Get("maxPrice")),
		Search:   strings.TrimSpace(q.Get("search")),
		Sort:     strings.ToLower(strings.TrimSpace(q.Get("sort"))),
	}

	opts, err := product.ParseListOptions(url.Values{
		"minPrice":      {view.MinPrice},
		"maxPrice":      {view.MaxPrice},
		"search":        {view.Search},
		"sortField":     {string(product.SortByPrice)},
		"sortDirection": {view.Sort},
	})
	status := http.StatusOK
	if _, ok := validation.As(err); ok {
		view.FilterError = "Price filters must be numbers."
		status = http.StatusBadRequest
	}
	if view.Sort != string(product.SortAsc) && view.Sort != string(product.SortDesc) {
		opts.SortField = ""
		opts.SortDirection = ""
		view.Sort = ""
	}

	products, err := h.products.List(r.Context(), opts)
	if errors.Is(err, product.ErrInvalidPrice) {
		view.FilterError = "Price filters cannot be negative."
		status = http.StatusBadRequest
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}
	view.Products = products
	h.render(w, r, status, "products", "Products", view)
}
