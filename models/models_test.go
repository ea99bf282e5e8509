package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		want         Page
		wantOffset   uint64
	}{
		{"defaults", 0, 0, Page{Number: 1, Size: DefaultPageSize}, 0},
		{"negative", -3, -1, Page{Number: 1, Size: DefaultPageSize}, 0},
		{"third page", 3, 10, Page{Number: 3, Size: 10}, 20},
		{"size is capped", 2, 1000, Page{Number: 2, Size: MaxPageSize}, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.number, tt.size)

			assert.Equal(t, tt.want, page)
			assert.Equal(t, tt.wantOffset, page.Offset())
			assert.Equal(t, uint64(tt.want.Size), page.Limit())
		})
	}
}

func TestUserStatus(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "unverified", StatusUnverified.String())
	assert.Equal(t, "banned", StatusBanned.String())
	assert.Equal(t, "unknown", UserStatus(9).String())

	assert.True(t, StatusBanned.IsValid())
	assert.False(t, UserStatus(-1).IsValid())
	assert.False(t, UserStatus(3).IsValid())
}

func TestUser_Profile(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := User{
		ID:        5,
		Email:     "me@example.com",
		Nick:      "me",
		Password:  "pbkdf2:hash",
		CreatedAt: created,
		Score:     9,
		Group: &Group{
			ID:           MemberGroupID,
			Name:         "Registered Member",
			ShareEnabled: true,
			Options:      GroupOptions{Aria2: true, SourceBatch: 10},
		},
	}

	profile := user.Profile()

	assert.Equal(t, "me", profile.Nickname)
	assert.Equal(t, "default", profile.Avatar)
	assert.Equal(t, created, profile.CreatedAt)
	assert.Equal(t, "Registered Member", profile.Group.Name)
	assert.True(t, profile.Group.AllowShare)
	assert.True(t, profile.Group.AllowRemoteDownload)
	assert.Equal(t, 10, profile.Group.SourceBatch)

	body, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "pbkdf2")

	assert.Zero(t, User{ID: 1}.Profile().Group)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.False(t, User{}.IsAdmin())
	assert.False(t, User{Group: &Group{}}.IsAdmin())
	assert.True(t, User{Group: &Group{Admin: true}}.IsAdmin())
}

func TestUpdates_IsEmpty(t *testing.T) {
	nick := "n"
	assert.True(t, UserUpdate{}.IsEmpty())
	assert.False(t, UserUpdate{Nick: &nick}.IsEmpty())
	assert.False(t, UserUpdate{ClearPreviousGroup: true}.IsEmpty())

	limit := int64(1)
	assert.True(t, GroupUpdate{}.IsEmpty())
	assert.False(t, GroupUpdate{SpeedLimit: &limit}.IsEmpty())
}

func TestGroup_IsBuiltin(t *testing.T) {
	for _, id := range []int64{AdminGroupID, MemberGroupID, GuestGroupID} {
		assert.True(t, Group{ID: id}.IsBuiltin(), id)
	}
	assert.False(t, Group{ID: 4}.IsBuiltin())
	assert.False(t, Group{}.IsBuiltin())
}

func TestGroupOptions_ValueAndScan(t *testing.T) {
	opts := GroupOptions{ArchiveTask: true, SourceBatch: 3, AvailableNodes: []int64{1, 2}}

	value, err := opts.Value()
	require.NoError(t, err)

	var scanned GroupOptions
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, opts, scanned)

	require.NoError(t, scanned.Scan([]byte(`{"aria2":true}`)))
	assert.True(t, scanned.Aria2)
	assert.Equal(t, 10, scanned.SourceBatch)

	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, DefaultGroupOptions(), scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan("{broken"))
}

func TestToken(t *testing.T) {
	expires := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	token := Token{
		SignedString: "a.b.c",
		Claims: Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
			TokenType:        TokenTypeRefresh,
		},
	}

	assert.Equal(t, "a.b.c", token.String())
	assert.True(t, token.ExpiresAt().Equal(expires))
	assert.True(t, token.Claims.IsRefresh())
	assert.True(t, Token{}.ExpiresAt().IsZero())
	assert.False(t, Claims{}.IsRefresh())
}

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.3", "", "abc123")

	assert.Equal(t, "1.2.3", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
}
