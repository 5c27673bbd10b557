// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration file.
type StructuredJSONConfig struct {
	Upstream struct {
		BaseURL           string   `json:"base_url"`
		Endpoint          string   `json:"endpoint"`
		RequestTimeout    Duration `json:"request_timeout"`
		RequestsPerSecond float64  `json:"requests_per_second"`
		Burst             int      `json:"burst"`
	} `json:"upstream,omitempty"`

	Sync struct {
		PageSize int `json:"page_size"`
		MaxPages int `json:"max_pages"`
	} `json:"sync,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Credential struct {
		SSMParameter string `json:"ssm_parameter"`
		EnvVar       string `json:"env_var"`
		NoPrompt     bool   `json:"no_prompt"`
	} `json:"credential,omitempty"`

	Logs struct {
		DiagnosticsPath string `json:"diagnostics_path"`
	} `json:"logs,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Upstream: Upstream{
			BaseURL:           jsonCfg.Upstream.BaseURL,
			Endpoint:          jsonCfg.Upstream.Endpoint,
			RequestTimeout:    time.Duration(jsonCfg.Upstream.RequestTimeout),
			RequestsPerSecond: jsonCfg.Upstream.RequestsPerSecond,
			Burst:             jsonCfg.Upstream.Burst,
		},
		Sync: Sync{
			PageSize: jsonCfg.Sync.PageSize,
			MaxPages: jsonCfg.Sync.MaxPages,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Credential: Credential{
			SSMParameter: jsonCfg.Credential.SSMParameter,
			EnvVar:       jsonCfg.Credential.EnvVar,
			NoPrompt:     jsonCfg.Credential.NoPrompt,
		},
		Logs: Logs{
			DiagnosticsPath: jsonCfg.Logs.DiagnosticsPath,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
