// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// DefaultAdminUserID is the id of the administrator created at first boot.
// That account can never be deleted.
const DefaultAdminUserID int64 = 1

// UserStatus is the tri-state account status. The numeric values are the ones
// persisted in users.status.
type UserStatus int

const (
	// StatusActive accounts may log in.
	StatusActive UserStatus = iota
	// StatusUnverified accounts have not completed registration.
	StatusUnverified
	// StatusBanned accounts are locked out by an administrator.
	StatusBanned
)

// String returns the lowercase status name.
func (s UserStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusUnverified:
		return "unverified"
	case StatusBanned:
		return "banned"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the known statuses.
func (s UserStatus) IsValid() bool {
	return s >= StatusActive && s <= StatusBanned
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	ID int64 `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	Nick string `json:"nick"`

	// Password stores the PBKDF2 representation, never plaintext.
	Password string `json:"-"`

	Status UserStatus `json:"status"`

	// Storage is the number of bytes currently used.
	Storage int64 `json:"storage"`

	Score int64 `json:"score"`

	TwoFactor string `json:"-"`
	Avatar    string `json:"avatar,omitempty"`
	Options   string `json:"-"`
	Authn     string `json:"-"`

	// OpenID and Phone are unique when set.
	OpenID *string `json:"-"`
	Phone  *string `json:"phone,omitempty"`

	GroupID         int64      `json:"group_id"`
	PreviousGroupID *int64     `json:"previous_group_id,omitempty"`
	GroupExpires    *time.Time `json:"group_expires,omitempty"`

	// Group is the resolved current group. It is filled by lookups that join
	// the groups table.
	Group *Group `json:"group,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user's resolved group grants admin rights.
func (u User) IsAdmin() bool {
	return u.Group != nil && u.Group.Admin
}

// UserUpdate describes a partial update of a User.
// Only non-nil fields are written.
type UserUpdate struct {
	Email           *string     `json:"email,omitempty"`
	Nick            *string     `json:"nick,omitempty"`
	Password        *string     `json:"password,omitempty"`
	Status          *UserStatus `json:"status,omitempty"`
	Storage         *int64      `json:"storage,omitempty"`
	Score           *int64      `json:"score,omitempty"`
	TwoFactor       *string     `json:"two_factor,omitempty"`
	Avatar          *string     `json:"avatar,omitempty"`
	Phone           *string     `json:"phone,omitempty"`
	GroupID         *int64      `json:"group_id,omitempty"`
	PreviousGroupID *int64      `json:"previous_group_id,omitempty"`
	GroupExpires    *time.Time  `json:"group_expires,omitempty"`

	// ClearPreviousGroup sets previous_group_id and group_expires to NULL.
	ClearPreviousGroup bool `json:"-"`
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Nick == nil && u.Password == nil && u.Status == nil &&
		u.Storage == nil && u.Score == nil && u.TwoFactor == nil && u.Avatar == nil &&
		u.Phone == nil && u.GroupID == nil && u.PreviousGroupID == nil &&
		u.GroupExpires == nil && !u.ClearPreviousGroup
}

// UserProfile is the caller-facing view returned by /api/user/me.
type UserProfile struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	Nickname  string       `json:"nickname"`
	Status    UserStatus   `json:"status"`
	Avatar    string       `json:"avatar"`
	CreatedAt time.Time    `json:"created_at"`
	Score     int64        `json:"score"`
	Group     GroupSummary `json:"group"`
}

// Profile builds the public profile of the user.
func (u User) Profile() UserProfile {
	avatar := u.Avatar
	if avatar == "" {
		avatar = "default"
	}

	profile := UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nick,
		Status:    u.Status,
		Avatar:    avatar,
		CreatedAt: u.CreatedAt,
		Score:     u.Score,
	}
	if u.Group != nil {
		profile.Group = u.Group.Summary()
	}

	return profile
}
