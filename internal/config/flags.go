// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port pair usable as a flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args (os.Args[1:] when nil) into a StructuredConfig.
// Unset flags leave zero values so that they do not override other sources.
func parseFlags(args []string) (*StructuredConfig, error) {
	if args == nil {
		args = os.Args[1:]
	}

	fs := flag.NewFlagSet("go-disk-next", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var adminEmail string
	var version string
	var groupExpirySchedule string
	var accessTokenTTL time.Duration
	var refreshTokenTTL time.Duration
	var requestTimeout time.Duration
	var debug bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "gRPC health server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&adminEmail, "admin-email", "", "Email of the bootstrap administrator")
	fs.StringVar(&version, "version", "", "Backend version")
	fs.StringVar(&groupExpirySchedule, "group-expiry-schedule", "", "Cron spec of the group expiry job")
	fs.DurationVar(&accessTokenTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 3h)")
	fs.DurationVar(&refreshTokenTTL, "refresh-token-ttl", 0, "Refresh token lifetime (e.g., 720h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Debug:           debug,
			Version:         version,
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
			AdminEmail:      adminEmail,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			GroupExpirySchedule: groupExpirySchedule,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns "host:port", or an empty string for an unset address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses "host:port". The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
