// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-disk-next/internal/logger"

// Storages bundles the repositories and the transactor built on one DB.
type Storages struct {
	Transactor        Transactor
	GroupRepository   GroupRepository
	UserRepository    UserRepository
	SettingRepository SettingRepository
}

// NewStorages builds all repositories over db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Transactor:        db,
		GroupRepository:   NewGroupRepository(db, logger),
		UserRepository:    NewUserRepository(db, logger),
		SettingRepository: NewSettingRepository(db, logger),
	}
}
