// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags binds every configuration flag to fs and returns the config
// the parsed values land in. Read the returned value only after fs has been
// parsed (cobra does this before running a command).
//
// Flags:
//
//	--base-url          upstream API base URL
//	--endpoint          upstream punch endpoint path
//	--request-timeout   upstream request timeout (e.g. "30s")
//	--rps               upstream requests per second (0 = unlimited)
//	--burst             upstream request burst
//	--page-size         page size requested from upstream
//	--max-pages         safety bound on pages per sync
//	-d/--dsn            record store DSN (SQLite path or postgres:// URL)
//	-a/--address        dashboard address in format [host]:[port]
//	--ssm-parameter     AWS SSM parameter holding the credential
//	--token-env         environment variable holding the credential
//	--no-prompt         never prompt for the credential
//	--diagnostics-log   diagnostics JSON lines file
//	-c/--config         json file path with configs
func RegisterFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVar(&cfg.Upstream.BaseURL, "base-url", "", "Upstream API base URL")
	fs.StringVar(&cfg.Upstream.Endpoint, "endpoint", "", "Upstream endpoint ("+strings.Join(KnownEndpoints, ", ")+")")
	fs.DurationVar(&cfg.Upstream.RequestTimeout, "request-timeout", 0, "Upstream request timeout (e.g., 30s)")
	fs.Float64Var(&cfg.Upstream.RequestsPerSecond, "rps", 0, "Upstream requests per second, 0 for unlimited")
	fs.IntVar(&cfg.Upstream.Burst, "burst", 0, "Upstream request burst")
	fs.IntVar(&cfg.Sync.PageSize, "page-size", 0, "Page size")
	fs.IntVar(&cfg.Sync.MaxPages, "max-pages", 0, "Max pages per sync (safety bound)")
	fs.StringVarP(&cfg.Storage.DB.DSN, "dsn", "d", "", "Record store DSN")
	fs.VarP(&serverAddress{cfg: cfg}, "address", "a", "Dashboard address host:port")
	fs.StringVar(&cfg.Credential.SSMParameter, "ssm-parameter", "", "AWS SSM parameter holding the credential")
	fs.StringVar(&cfg.Credential.EnvVar, "token-env", "", "Environment variable holding the credential")
	fs.BoolVar(&cfg.Credential.NoPrompt, "no-prompt", false, "Never prompt for the credential")
	fs.StringVar(&cfg.Logs.DiagnosticsPath, "diagnostics-log", "", "Diagnostics log file")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return cfg
}

// serverAddress validates the dashboard address flag through [NetAddress]
// and stores its canonical form in the bound config.
type serverAddress struct {
	cfg  *StructuredConfig
	addr NetAddress
}

func (s *serverAddress) String() string { return s.addr.String() }

func (s *serverAddress) Set(v string) error {
	if err := s.addr.Set(v); err != nil {
		return err
	}
	s.cfg.Server.HTTPAddress = s.addr.String()
	return nil
}

func (s *serverAddress) Type() string { return s.addr.Type() }

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
