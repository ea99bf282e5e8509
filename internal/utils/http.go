// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-disk-next/models"
)

// WriteJSON serializes data and writes it with statusCode and an
// application/json content type. When marshaling fails the response is a
// plain 500.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes the {"code", "detail"} error body.
func WriteError(w http.ResponseWriter, statusCode int, code, detail string) {
	_, _ = WriteJSON(w, models.ErrorResponse{Code: code, Detail: detail}, statusCode)
}
