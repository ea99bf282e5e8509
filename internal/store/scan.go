// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	"github.com/MKhiriev/go-disk-next/models"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func groupScanTargets(g *models.Group) []any {
	return []any{
		&g.ID, &g.Name, &g.Policies, &g.MaxStorage, &g.ShareEnabled, &g.WebDAVEnabled,
		&g.Admin, &g.SpeedLimit, &g.Options, &g.CreatedAt, &g.UpdatedAt,
	}
}

func scanGroup(row rowScanner) (models.Group, error) {
	var g models.Group
	if err := row.Scan(groupScanTargets(&g)...); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// scanUser reads a row produced by selectUsers.
func scanUser(row rowScanner) (models.User, error) {
	var (
		u               models.User
		g               models.Group
		status          int
		openID, phone   sql.NullString
		previousGroupID sql.NullInt64
		groupExpires    sql.NullTime
	)

	targets := []any{
		&u.ID, &u.Email, &u.Nick, &u.Password, &status, &u.Storage, &u.TwoFactor, &u.Avatar,
		&u.Options, &u.Authn, &openID, &phone, &u.Score, &u.GroupID, &previousGroupID,
		&groupExpires, &u.CreatedAt, &u.UpdatedAt,
	}
	targets = append(targets, groupScanTargets(&g)...)

	if err := row.Scan(targets...); err != nil {
		return models.User{}, err
	}

	u.Status = models.UserStatus(status)
	if openID.Valid {
		u.OpenID = &openID.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if previousGroupID.Valid {
		u.PreviousGroupID = &previousGroupID.Int64
	}
	if groupExpires.Valid {
		u.GroupExpires = &groupExpires.Time
	}
	u.Group = &g

	return u, nil
}

func scanSetting(row rowScanner) (models.Setting, error) {
	var s models.Setting
	if err := row.Scan(&s.ID, &s.Type, &s.Name, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return models.Setting{}, err
	}
	return s, nil
}

func nullString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
