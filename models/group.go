package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Conventional identifiers of the groups seeded at first boot.
const (
	AdminGroupID      int64 = 1
	MemberGroupID     int64 = 2
	GuestGroupID      int64 = 3
	lastBuiltinGroupID      = GuestGroupID
)

// Group is a named bundle of storage quota and feature permissions that user
// accounts belong to.
type Group struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Name is globally unique.
	Name string `json:"name"`

	// Policies is the serialized list of storage policy ids the group may use.
	Policies string `json:"policies,omitempty"`

	// MaxStorage is the storage cap in bytes.
	MaxStorage int64 `json:"max_storage"`

	ShareEnabled  bool `json:"share_enabled"`
	WebDAVEnabled bool `json:"web_dav_enabled"`

	// Admin grants access to the administrative API.
	Admin bool `json:"admin"`

	// SpeedLimit is expressed in KB/s, 0 means unlimited.
	SpeedLimit int64 `json:"speed_limit"`

	Options GroupOptions `json:"options"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Group model.
func (g Group) TableName() string {
	return "groups"
}

// IsBuiltin reports whether the group is one of the seeded groups.
func (g Group) IsBuiltin() bool {
	return g.ID >= AdminGroupID && g.ID <= lastBuiltinGroupID
}

// GroupOptions holds the secondary feature flags of a group. It is persisted
// as a JSON document in a single column.
type GroupOptions struct {
	ArchiveDownload  bool    `json:"archive_download"`
	ArchiveTask      bool    `json:"archive_task"`
	ShareDownload    bool    `json:"share_download"`
	ShareFree        bool    `json:"share_free"`
	WebDAVProxy      bool    `json:"webdav_proxy"`
	Aria2            bool    `json:"aria2"`
	Relocate         bool    `json:"relocate"`
	SourceBatch      int     `json:"source_batch"`
	RedirectedSource bool    `json:"redirected_source"`
	AvailableNodes   []int64 `json:"available_nodes"`
	SelectNode       bool    `json:"select_node"`
	AdvanceDelete    bool    `json:"advance_delete"`
}

// DefaultGroupOptions returns the options a group gets when none are given.
func DefaultGroupOptions() GroupOptions {
	return GroupOptions{SourceBatch: 10, AvailableNodes: []int64{}}
}

// Value implements driver.Valuer.
func (o GroupOptions) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("error marshaling group options: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL leaves the defaults in place.
func (o *GroupOptions) Scan(src any) error {
	*o = DefaultGroupOptions()

	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for group options")
	}

	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, o)
}

// GroupUpdate describes a partial update of a Group.
// Only non-nil fields are written.
type GroupUpdate struct {
	Name          *string       `json:"name,omitempty"`
	Policies      *string       `json:"policies,omitempty"`
	MaxStorage    *int64        `json:"max_storage,omitempty"`
	ShareEnabled  *bool         `json:"share_enabled,omitempty"`
	WebDAVEnabled *bool         `json:"web_dav_enabled,omitempty"`
	Admin         *bool         `json:"admin,omitempty"`
	SpeedLimit    *int64        `json:"speed_limit,omitempty"`
	Options       *GroupOptions `json:"options,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u GroupUpdate) IsEmpty() bool {
	return u.Name == nil && u.Policies == nil && u.MaxStorage == nil &&
		u.ShareEnabled == nil && u.WebDAVEnabled == nil && u.Admin == nil &&
		u.SpeedLimit == nil && u.Options == nil
}

// GroupSummary is the public view of a group embedded in user profiles.
type GroupSummary struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	AllowShare           bool   `json:"allowShare"`
	AllowRemoteDownload  bool   `json:"allowRemoteDownload"`
	AllowArchiveDownload bool   `json:"allowArchiveDownload"`
	ShareFree            bool   `json:"shareFree"`
	ShareDownload        bool   `json:"shareDownload"`
	Compress             bool   `json:"compress"`
	WebDAV               bool   `json:"webdav"`
	AllowWebDAVProxy     bool   `json:"allowWebDAVProxy"`
	Relocate             bool   `json:"relocate"`
	SourceBatch          int    `json:"sourceBatch"`
	SelectNode           bool   `json:"selectNode"`
	AdvanceDelete        bool   `json:"advanceDelete"`
}

// Summary builds the public view of the group.
func (g Group) Summary() GroupSummary {
	return GroupSummary{
		ID:                   g.ID,
		Name:                 g.Name,
		AllowShare:           g.ShareEnabled,
		AllowRemoteDownload:  g.Options.Aria2,
		AllowArchiveDownload: g.Options.ArchiveDownload,
		ShareFree:            g.Options.ShareFree,
		ShareDownload:        g.Options.ShareDownload,
		Compress:             g.Options.ArchiveTask,
		WebDAV:               g.WebDAVEnabled,
		AllowWebDAVProxy:     g.Options.WebDAVProxy,
		Relocate:             g.Options.Relocate,
		SourceBatch:          g.Options.SourceBatch,
		SelectNode:           g.Options.SelectNode,
		AdvanceDelete:        g.Options.AdvanceDelete,
	}
}
