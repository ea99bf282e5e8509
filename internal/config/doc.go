// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the go-disk-next server.
//
// Configuration is assembled from several sources. Values from an earlier
// source win over later ones:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry point is [GetStructuredConfig].
package config
