package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/service"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- access ----

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	router := h.Init()

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/settings?type=basic"},
		{http.MethodPatch, "/api/admin/settings"},
		{http.MethodGet, "/api/admin/group"},
		{http.MethodPost, "/api/admin/group"},
		{http.MethodGet, "/api/admin/group/2"},
		{http.MethodPatch, "/api/admin/group/2"},
		{http.MethodDelete, "/api/admin/group/2"},
		{http.MethodGet, "/api/admin/group/list/2"},
		{http.MethodGet, "/api/admin/user/list"},
		{http.MethodGet, "/api/admin/user/info/2"},
		{http.MethodPost, "/api/admin/user/create"},
		{http.MethodPatch, "/api/admin/user/2"},
		{http.MethodDelete, "/api/admin/user/2"},
		{http.MethodPost, "/api/admin/user/2/group"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rr := serve(router, jsonRequest(route.method, route.path, "", ""))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			rr = serve(router, jsonRequest(route.method, route.path, memberToken, ""))
			assert.Equal(t, http.StatusForbidden, rr.Code)
		})
	}
}

// ---- settings ----

func TestAdminSettings(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	router := h.Init()

	m.settings.EXPECT().ListByType(gomock.Any(), "basic").Return([]models.Setting{
		{Type: "basic", Name: "siteName", Value: "DiskNext"},
	}, nil)
	rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/settings?type=basic", adminToken, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	settings := decodeBody[[]models.Setting](t, rr)
	require.Len(t, settings, 1)
	assert.Equal(t, "DiskNext", settings[0].Value)

	rr = serve(router, jsonRequest(http.MethodGet, "/api/admin/settings", adminToken, ""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_query", decodeError(t, rr).Code)

	m.settings.EXPECT().ListByType(gomock.Any(), "nothing").Return(nil, nil)
	rr = serve(router, jsonRequest(http.MethodGet, "/api/admin/settings?type=nothing", adminToken, ""))
	assert.JSONEq(t, `[]`, rr.Body.String())

	m.settings.EXPECT().SetMany(gomock.Any(), []models.Setting{
		{Type: "basic", Name: "siteName", Value: "Renamed"},
	}).Return(nil)
	rr = serve(router, jsonRequest(http.MethodPatch, "/api/admin/settings", adminToken,
		`{"settings":[{"type":"basic","name":"siteName","value":"Renamed"}]}`))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	m.settings.EXPECT().SetMany(gomock.Any(), gomock.Any()).Return(store.ErrSettingNotFound)
	rr = serve(router, jsonRequest(http.MethodPatch, "/api/admin/settings", adminToken,
		`{"settings":[{"type":"basic","name":"missing","value":"x"}]}`))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ---- groups ----

func TestAdminGroups(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	router := h.Init()

	t.Run("list", func(t *testing.T) {
		m.groups.EXPECT().List(gomock.Any()).Return([]models.Group{{ID: 1, Name: "Administrator"}}, nil)

		rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/group", adminToken, ""))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody[[]models.Group](t, rr), 1)
	})

	t.Run("get", func(t *testing.T) {
		m.groups.EXPECT().Get(gomock.Any(), int64(3)).Return(models.Group{ID: 3, Name: "Guest"}, nil)
		m.groups.EXPECT().Get(gomock.Any(), int64(99)).Return(models.Group{}, store.ErrGroupNotFound)

		rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/group/3", adminToken, ""))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Guest", decodeBody[models.Group](t, rr).Name)

		rr = serve(router, jsonRequest(http.MethodGet, "/api/admin/group/99", adminToken, ""))
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = serve(router, jsonRequest(http.MethodGet, "/api/admin/group/abc", adminToken, ""))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid_id", decodeError(t, rr).Code)
	})

	t.Run("members", func(t *testing.T) {
		m.groups.EXPECT().Members(gomock.Any(), int64(2), models.NewPage(2, 5)).
			Return([]models.User{memberUser}, int64(6), nil)

		rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/group/list/2?page=2&page_size=5", adminToken, ""))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeBody[models.ListResponse[models.User]](t, rr)
		assert.Equal(t, int64(6), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.PageSize)
		require.Len(t, page.Items, 1)
		assert.Equal(t, memberUser.Email, page.Items[0].Email)
	})

	t.Run("create", func(t *testing.T) {
		m.groups.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, g models.Group) (models.Group, error) {
				assert.Equal(t, "Team", g.Name)
				assert.Equal(t, int64(1024), g.MaxStorage)
				g.ID = 4
				return g, nil
			})

		rr := serve(router, jsonRequest(http.MethodPost, "/api/admin/group", adminToken, `{"name":"Team","max_storage":1024}`))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, int64(4), decodeBody[models.Group](t, rr).ID)
	})

	t.Run("update", func(t *testing.T) {
		m.groups.EXPECT().Update(gomock.Any(), int64(4), gomock.Any()).
			DoAndReturn(func(_ any, _ int64, u models.GroupUpdate) (models.Group, error) {
				require.NotNil(t, u.ShareEnabled)
				assert.True(t, *u.ShareEnabled)
				assert.Nil(t, u.Name)
				return models.Group{ID: 4, Name: "Team", ShareEnabled: true}, nil
			})

		rr := serve(router, jsonRequest(http.MethodPatch, "/api/admin/group/4", adminToken, `{"share_enabled":true}`))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeBody[models.Group](t, rr).ShareEnabled)
	})

	t.Run("delete", func(t *testing.T) {
		m.groups.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil)
		m.groups.EXPECT().Delete(gomock.Any(), int64(2)).Return(service.ErrProtectedGroup)
		m.groups.EXPECT().Delete(gomock.Any(), int64(5)).Return(store.ErrGroupHasMembers)

		assert.Equal(t, http.StatusNoContent,
			serve(router, jsonRequest(http.MethodDelete, "/api/admin/group/4", adminToken, "")).Code)
		assert.Equal(t, http.StatusForbidden,
			serve(router, jsonRequest(http.MethodDelete, "/api/admin/group/2", adminToken, "")).Code)
		assert.Equal(t, http.StatusConflict,
			serve(router, jsonRequest(http.MethodDelete, "/api/admin/group/5", adminToken, "")).Code)
	})
}

// ---- users ----

func TestAdminUsers(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	router := h.Init()

	t.Run("list uses default page", func(t *testing.T) {
		m.users.EXPECT().List(gomock.Any(), models.NewPage(1, models.DefaultPageSize)).
			Return(nil, int64(0), nil)

		rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/user/list", adminToken, ""))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"items":[],"total":0,"page":1,"page_size":20}`, rr.Body.String())
	})

	t.Run("list rejects bad paging", func(t *testing.T) {
		rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/user/list?page=first", adminToken, ""))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid_query", decodeError(t, rr).Code)
	})

	t.Run("info hides password", func(t *testing.T) {
		user := memberUser
		user.Password = "pbkdf2:sha256:secret"
		m.users.EXPECT().Get(gomock.Any(), int64(7)).Return(user, nil)

		rr := serve(router, jsonRequest(http.MethodGet, "/api/admin/user/info/7", adminToken, ""))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "pbkdf2")
	})

	t.Run("create", func(t *testing.T) {
		m.users.EXPECT().Create(gomock.Any(), models.CreateUserRequest{
			Email:    "ops@example.com",
			Password: "pw",
			GroupID:  models.AdminGroupID,
		}).Return(models.User{ID: 20, Email: "ops@example.com"}, nil)
		m.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUnknownGroupReference)

		rr := serve(router, jsonRequest(http.MethodPost, "/api/admin/user/create", adminToken,
			`{"email":"ops@example.com","password":"pw","group_id":1}`))
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, int64(20), decodeBody[models.User](t, rr).ID)

		rr = serve(router, jsonRequest(http.MethodPost, "/api/admin/user/create", adminToken,
			`{"email":"ops2@example.com","password":"pw","group_id":404}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "unknown_group", decodeError(t, rr).Code)
	})

	t.Run("update", func(t *testing.T) {
		m.users.EXPECT().Update(gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(_ any, _ int64, u models.UserUpdate) (models.User, error) {
				require.NotNil(t, u.Status)
				assert.Equal(t, models.StatusBanned, *u.Status)
				updated := memberUser
				updated.Status = models.StatusBanned
				return updated, nil
			})

		rr := serve(router, jsonRequest(http.MethodPatch, "/api/admin/user/7", adminToken, `{"status":2}`))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, models.StatusBanned, decodeBody[models.User](t, rr).Status)
	})

	t.Run("delete", func(t *testing.T) {
		m.users.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)
		m.users.EXPECT().Delete(gomock.Any(), models.DefaultAdminUserID).Return(service.ErrProtectedUser)

		assert.Equal(t, http.StatusNoContent,
			serve(router, jsonRequest(http.MethodDelete, "/api/admin/user/7", adminToken, "")).Code)

		rr := serve(router, jsonRequest(http.MethodDelete, "/api/admin/user/1", adminToken, ""))
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "protected_user", decodeError(t, rr).Code)

		rr = serve(router, jsonRequest(http.MethodDelete, "/api/admin/user/0", adminToken, ""))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("upgrade group", func(t *testing.T) {
		until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		m.users.EXPECT().UpgradeGroup(gomock.Any(), int64(7), int64(4), gomock.Any()).
			DoAndReturn(func(_ any, _, _ int64, got time.Time) (models.User, error) {
				assert.True(t, until.Equal(got))
				upgraded := memberUser
				upgraded.GroupID = 4
				return upgraded, nil
			})

		rr := serve(router, jsonRequest(http.MethodPost, "/api/admin/user/7/group", adminToken,
			`{"group_id":4,"until":"2026-12-31T00:00:00Z"}`))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(4), decodeBody[models.User](t, rr).GroupID)

		rr = serve(router, jsonRequest(http.MethodPost, "/api/admin/user/7/group", adminToken,
			`{"group_id":4,"until":"next week"}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid_body", decodeError(t, rr).Code)
	})
}
