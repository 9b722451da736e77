// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"

	"github.com/albumpost/albumpost-sdk/sdk/model"
)

var ErrMissingAccessToken = errors.New("source access token is required")

// RunRequest is one batch: the selected units and the source credential that
// stays valid for the whole batch.
type RunRequest struct {
	Units       []model.WorkUnit
	AccessToken string
}

// -------- Download --------

type DownloadRequest struct {
	Media       model.MediaReference
	AccessToken string
	MaxHeight   int
	MaxWidth    int
	// Dir is the staging directory the file is written to; created if missing.
	Dir string
}

// Downloader fetches one media item into local staging. It never returns an
// error: failures are carried by the outcome.
type Downloader interface {
	Download(ctx context.Context, req DownloadRequest) *model.DownloadOutcome
}

// -------- Upload --------

// Uploader pushes one staged file to the destination store. Like Downloader,
// failures are carried by the outcome.
type Uploader interface {
	Upload(ctx context.Context, dl model.DownloadSuccess) *model.UploadOutcome
}

// -------- Publish --------

// Publisher turns a settled unit into published content and returns its URL.
type Publisher interface {
	Publish(ctx context.Context, unit model.WorkUnit, items []model.ProcessedItem) (string, error)
}

// ProgressFunc is called each time an item settles.
type ProgressFunc func(settled, total int)
