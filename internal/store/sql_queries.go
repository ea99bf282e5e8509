// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	"github.com/MKhiriev/go-disk-next/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	tableGroups   = "groups"
	tableUsers    = "users"
	tableSettings = "settings"

	syncSequenceTemplate = `SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))`
)

var (
	groupColumns = []string{
		"id", "name", "policies", "max_storage", "share_enabled", "web_dav_enabled",
		"admin", "speed_limit", "options", "created_at", "updated_at",
	}

	userColumns = []string{
		"id", "email", "nick", "password", "status", "storage", "two_factor", "avatar",
		"options", "authn", "open_id", "phone", "score", "group_id", "previous_group_id",
		"group_expires", "created_at", "updated_at",
	}

	settingColumns = []string{"id", "type", "name", "value", "created_at", "updated_at"}
)

// prefixed qualifies every column with alias.
func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// selectUsers selects users joined with their current group. Column order
// matches scanUser.
func (db *DB) selectUsers() sq.SelectBuilder {
	columns := append(prefixed("u", userColumns), prefixed("g", groupColumns)...)
	return db.builder.
		Select(columns...).
		From(tableUsers + " u").
		Join(tableGroups + " g ON g.id = u.group_id")
}

func (db *DB) selectGroups() sq.SelectBuilder {
	return db.builder.Select(groupColumns...).From(tableGroups)
}

func (db *DB) selectSettings() sq.SelectBuilder {
	return db.builder.Select(settingColumns...).From(tableSettings)
}

// groupUpdateClauses returns the SET map of a partial group update.
func groupUpdateClauses(update models.GroupUpdate) map[string]any {
	clauses := make(map[string]any, 8)
	if update.Name != nil {
		clauses["name"] = *update.Name
	}
	if update.Policies != nil {
		clauses["policies"] = *update.Policies
	}
	if update.MaxStorage != nil {
		clauses["max_storage"] = *update.MaxStorage
	}
	if update.ShareEnabled != nil {
		clauses["share_enabled"] = *update.ShareEnabled
	}
	if update.WebDAVEnabled != nil {
		clauses["web_dav_enabled"] = *update.WebDAVEnabled
	}
	if update.Admin != nil {
		clauses["admin"] = *update.Admin
	}
	if update.SpeedLimit != nil {
		clauses["speed_limit"] = *update.SpeedLimit
	}
	if update.Options != nil {
		clauses["options"] = *update.Options
	}
	return clauses
}

// userUpdateClauses returns the SET map of a partial user update.
func userUpdateClauses(update models.UserUpdate) map[string]any {
	clauses := make(map[string]any, 12)
	if update.Email != nil {
		clauses["email"] = *update.Email
	}
	if update.Nick != nil {
		clauses["nick"] = *update.Nick
	}
	if update.Password != nil {
		clauses["password"] = *update.Password
	}
	if update.Status != nil {
		clauses["status"] = int(*update.Status)
	}
	if update.Storage != nil {
		clauses["storage"] = *update.Storage
	}
	if update.Score != nil {
		clauses["score"] = *update.Score
	}
	if update.TwoFactor != nil {
		clauses["two_factor"] = *update.TwoFactor
	}
	if update.Avatar != nil {
		clauses["avatar"] = *update.Avatar
	}
	if update.Phone != nil {
		clauses["phone"] = nullString(update.Phone)
	}
	if update.GroupID != nil {
		clauses["group_id"] = *update.GroupID
	}
	if update.PreviousGroupID != nil {
		clauses["previous_group_id"] = *update.PreviousGroupID
	}
	if update.GroupExpires != nil {
		clauses["group_expires"] = dbTime(*update.GroupExpires)
	}
	if update.ClearPreviousGroup {
		clauses["previous_group_id"] = nil
		clauses["group_expires"] = nil
	}
	return clauses
}
