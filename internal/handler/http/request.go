// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-disk-next/models"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds JSON and form request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestForm, err)
	}
	return nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// pageFromQuery reads page and page_size. Absent values take the defaults;
// out-of-range values are clamped by models.NewPage.
func pageFromQuery(r *http.Request) (models.Page, error) {
	query := r.URL.Query()

	number, err := intParam(query.Get("page"))
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: page", ErrInvalidQuery)
	}
	size, err := intParam(query.Get("page_size"))
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: page_size", ErrInvalidQuery)
	}

	return models.NewPage(number, size), nil
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func listResponse[T any](items []T, total int64, page models.Page) models.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return models.ListResponse[T]{
		Items:    items,
		Total:    total,
		Page:     page.Number,
		PageSize: page.Size,
	}
}
