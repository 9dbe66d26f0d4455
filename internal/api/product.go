package api

import (
	"fmt"
	"net/http"

	"storefront/internal/httpx"
	"storefront/internal/product"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := product.ParseListOptions(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.products.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.OK(w, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in product.ProductInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.products.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, fmt.Sprintf("/api/products/%d", p.ID), p)
}

func (h *Handler) replaceProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in product.ProductInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.products.Replace(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) patchProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch product.ProductPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.products.Patch(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}
