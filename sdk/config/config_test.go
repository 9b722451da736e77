// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"testing"
)

func validS3Config() Config {
	cfg := Default()
	cfg.Store.Bucket = "photos"
	cfg.Store.Region = "us-west-004"
	cfg.Store.AccessKey = "key"
	cfg.Store.SecretKey = "secret"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid s3", func(*Config) {}, ""},
		{"missing bucket", func(c *Config) { c.Store.Bucket = "" }, "bucket"},
		{"missing secret", func(c *Config) { c.Store.SecretKey = "" }, "secret key"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "ftp" }, "unknown store backend"},
		{"ghost without key", func(c *Config) {
			c.Store.Backend = BackendGhost
			c.Ghost.AdminURL = "https://blog.example.com"
		}, "<id>:<secret>"},
		{"valid ghost", func(c *Config) {
			c.Store = StoreConfig{Backend: BackendGhost}
			c.Ghost.AdminURL = "https://blog.example.com"
			c.Ghost.AdminAPIKey = "abc:0123"
		}, ""},
		{"bad concurrency", func(c *Config) { c.Queue.ItemConcurrency = 0 }, "concurrency"},
		{"bad interval cap", func(c *Config) { c.Queue.IntervalCap = 0 }, "interval cap"},
		{"bad size", func(c *Config) { c.Source.MaxWidth = 0 }, "max height and width"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validS3Config()
			test.mutate(&cfg)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for empty store config")
	}
	for _, want := range []string{"bucket", "region", "access key"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}
