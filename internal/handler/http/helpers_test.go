package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/mock"
	"github.com/MKhiriev/go-disk-next/internal/service"
	"github.com/MKhiriev/go-disk-next/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	adminToken  = "admin-token"
	memberToken = "member-token"
)

var (
	adminUser = models.User{
		ID:      models.DefaultAdminUserID,
		Email:   "admin@example.com",
		Nick:    "admin",
		GroupID: models.AdminGroupID,
		Group:   &models.Group{ID: models.AdminGroupID, Name: "Administrator", Admin: true},
	}
	memberUser = models.User{
		ID:      7,
		Email:   "member@example.com",
		Nick:    "member",
		GroupID: models.MemberGroupID,
		Group:   &models.Group{ID: models.MemberGroupID, Name: "Registered Member"},
	}
)

type handlerMocks struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	groups   *mock.MockGroupService
	settings *mock.MockSettingService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, *handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &handlerMocks{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		groups:   mock.NewMockGroupService(ctrl),
		settings: mock.NewMockSettingService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:    m.auth,
		UserService:    m.users,
		GroupService:   m.groups,
		SettingService: m.settings,
		AppInfoService: m.appInfo,
	}

	return NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop()), m
}

// signedIn makes the admin and member tokens resolve to their users.
func (m *handlerMocks) signedIn() {
	m.auth.EXPECT().Authenticate(gomock.Any(), adminToken).Return(adminUser, nil).AnyTimes()
	m.auth.EXPECT().Authenticate(gomock.Any(), memberToken).Return(memberUser, nil).AnyTimes()
	m.auth.EXPECT().RequireAdmin(adminUser).Return(adminUser, nil).AnyTimes()
	m.auth.EXPECT().RequireAdmin(memberUser).Return(models.User{}, service.ErrAdminRequired).AnyTimes()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, token, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rr)
}

func mustField(t *testing.T, body []byte, name string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	field, ok := fields[name]
	require.True(t, ok, "missing field %q in %s", name, body)
	return field
}
