package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInit_UnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h.Init(), jsonRequest(http.MethodGet, "/api/nothing/here", "", ""))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not_found", decodeError(t, rr).Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_WrongMethodIsNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	for _, req := range []*http.Request{
		jsonRequest(http.MethodDelete, "/api/site/ping", "", ""),
		jsonRequest(http.MethodGet, "/api/user/session", "", ""),
		jsonRequest(http.MethodPut, "/api/admin/user/3", adminToken, ""),
	} {
		rr := serve(router, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, req.Method+" "+req.URL.Path)
	}
}

func TestInit_RecoversFromPanic(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).DoAndReturn(func(any) string {
		panic("boom")
	})

	rr := serve(h.Init(), jsonRequest(http.MethodGet, "/api/site/ping", "", ""))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestInit_CompressesJSON(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("3.0.0")

	req := jsonRequest(http.MethodGet, "/api/site/ping", "", "")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := serve(h.Init(), req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestInit_ServesMetrics(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h.Init(), jsonRequest(http.MethodGet, "/metrics", "", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
