// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	BackendS3    = "s3"
	BackendGhost = "ghost"
)

// Config is everything the SDK needs for a batch (no viper/INI here).
// It is shared read-only by all running tasks.
type Config struct {
	Source     SourceConfig
	Store      StoreConfig
	Ghost      GhostConfig
	Queue      QueueConfig
	StagingDir string
}

type SourceConfig struct {
	// max rendition size requested from the source
	MaxHeight int
	MaxWidth  int
}

type StoreConfig struct {
	Backend      string // "s3" (default) or "ghost"
	Bucket       string
	Region       string
	EndpointURL  string
	AccessKey    string
	SecretKey    string
	SessionToken string
	KeyPrefix    string
	// URLPrefix, when set, replaces the store's returned location: url = URLPrefix + key
	URLPrefix string
}

type GhostConfig struct {
	AdminURL    string
	AdminAPIKey string // "<id>:<hex secret>"
	APIVersion  string
}

type QueueConfig struct {
	UnitConcurrency int
	ItemConcurrency int
	Interval        time.Duration
	IntervalCap     int
}

// Default returns the reference tuning: one unit at a time, five items at a
// time, one item start every 20ms.
func Default() Config {
	return Config{
		Source: SourceConfig{MaxHeight: 1600, MaxWidth: 1600},
		Store:  StoreConfig{Backend: BackendS3},
		Ghost:  GhostConfig{APIVersion: "v5.0"},
		Queue: QueueConfig{
			UnitConcurrency: 1,
			ItemConcurrency: 5,
			Interval:        20 * time.Millisecond,
			IntervalCap:     1,
		},
		StagingDir: filepath.Join(os.TempDir(), "albumpost"),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Store.Backend) {
	case "", BackendS3:
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("store bucket is required"))
		}
		if c.Store.Region == "" {
			errs = append(errs, errors.New("store region is required"))
		}
		if c.Store.AccessKey == "" || c.Store.SecretKey == "" {
			errs = append(errs, errors.New("store access key and secret key are required"))
		}
	case BackendGhost:
		if err := c.Ghost.validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	if c.Source.MaxHeight <= 0 || c.Source.MaxWidth <= 0 {
		errs = append(errs, errors.New("image max height and width must be positive"))
	}
	if c.Queue.UnitConcurrency < 1 || c.Queue.ItemConcurrency < 1 {
		errs = append(errs, errors.New("queue concurrency must be at least 1"))
	}
	if c.Queue.Interval < 0 {
		errs = append(errs, errors.New("queue interval must not be negative"))
	}
	if c.Queue.Interval > 0 && c.Queue.IntervalCap < 1 {
		errs = append(errs, errors.New("queue interval cap must be at least 1"))
	}
	if c.StagingDir == "" {
		errs = append(errs, errors.New("staging directory is required"))
	}
	return errors.Join(errs...)
}

func (g GhostConfig) validate() error {
	if g.AdminURL == "" {
		return errors.New("ghost admin url is required")
	}
	if id, secret, ok := strings.Cut(g.AdminAPIKey, ":"); !ok || id == "" || secret == "" {
		return errors.New("ghost admin api key must be in the form <id>:<secret>")
	}
	return nil
}
