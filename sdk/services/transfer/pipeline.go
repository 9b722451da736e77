// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/albumpost/albumpost-sdk/sdk/model"
	"github.com/albumpost/albumpost-sdk/sdk/queue"
	"github.com/albumpost/albumpost-sdk/sdk/services/report"
	"github.com/albumpost/albumpost-sdk/sdk/utils"
)

// batch tracks the items of one Run for progress reporting.
type batch struct {
	mu      sync.Mutex
	total   int
	settled int
}

// Run transfers every unit of req and returns one report per unit, in input
// order. It only returns an error when the batch cannot start at all; item
// and unit failures are carried by the reports.
func (s *TransferService) Run(ctx context.Context, req RunRequest) (model.BatchResult, error) {
	if err := s.conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if req.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	if err := os.MkdirAll(s.conf.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	b := &batch{}
	for _, u := range req.Units {
		b.total += len(u.MediaReferences)
	}
	s.logger.Info("batch started", "units", len(req.Units), "items", b.total)

	futures := make([]*queue.Future[model.UnitReport], len(req.Units))
	for i, unit := range req.Units {
		futures[i] = queue.Submit(ctx, s.unitQueue, func(ctx context.Context) (model.UnitReport, error) {
			return s.processUnit(ctx, unit, req.AccessToken, b), nil
		})
	}

	result := make(model.BatchResult, len(req.Units))
	for i, f := range futures {
		r, err := f.Result()
		if err != nil {
			s.logger.Error("unit failed", "unit_id", req.Units[i].UnitID, "error", err)
			r = report.FailedUnitReport(req.Units[i], err)
		}
		result[i] = r
	}

	s.logger.Info("batch finished", report.Summarize(result).LogValues()...)
	return result, nil
}

func (s *TransferService) processUnit(ctx context.Context, unit model.WorkUnit, token string, b *batch) model.UnitReport {
	logger := s.logger.With("unit_id", unit.UnitID)
	unitDir := filepath.Join(s.conf.StagingDir, utils.StagingName(unit.UnitID))
	logger.Info("unit started", "title", unit.Title, "items", len(unit.MediaReferences))

	items := make([]model.ProcessedItem, len(unit.MediaReferences))
	futures := make([]*queue.Future[model.ProcessedItem], len(unit.MediaReferences))
	for i, media := range unit.MediaReferences {
		if !media.IsTransferable() {
			items[i] = model.SkippedItem(media)
			logger.Debug("item state", "media_id", media.ID, "state", model.ItemSkipped, "mime_type", media.MimeType)
			s.settle(b)
			continue
		}
		dir := filepath.Join(unitDir, strconv.Itoa(i))
		futures[i] = queue.Submit(ctx, s.itemQueue, func(ctx context.Context) (model.ProcessedItem, error) {
			return s.processItem(ctx, logger, media, token, dir), nil
		})
	}

	// join every item, never fail fast
	for i, f := range futures {
		if f == nil {
			continue
		}
		item, err := f.Result()
		if err != nil {
			logger.Error("item failed", "media_id", unit.MediaReferences[i].ID, "error", err)
			item = model.ProcessedItem{
				MediaReference: unit.MediaReferences[i],
				Download:       model.DownloadFailed(err.Error()),
			}
		}
		items[i] = item
		s.settle(b)
	}

	cleanupErr := s.removeStaging(unitDir)
	if cleanupErr != nil {
		logger.Error("failed to remove staging directory", "dir", unitDir, "error", cleanupErr)
	}

	var pub *report.PublishResult
	if s.publisher != nil {
		url, err := s.publisher.Publish(ctx, unit, items)
		pub = &report.PublishResult{URL: url, Err: err}
		if err != nil {
			logger.Error("publish failed", "error", err)
		} else {
			logger.Info("unit published", "url", url)
		}
	}

	r := report.BuildUnitReport(unit, items, pub)
	if cleanupErr != nil {
		report.MarkStagingLeftover(&r, unitDir, cleanupErr)
	}
	logger.Info("unit finished", "state", r.State)
	return r
}

// removeStaging deletes a unit directory, retrying once.
func (s *TransferService) removeStaging(dir string) error {
	err := s.removeAll(dir)
	if err == nil {
		return nil
	}
	if err = s.removeAll(dir); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}
	return nil
}

func (s *TransferService) processItem(ctx context.Context, logger *slog.Logger, media model.MediaReference, token, dir string) model.ProcessedItem {
	logger = logger.With("media_id", media.ID)
	item := model.ProcessedItem{MediaReference: media}

	logger.Debug("item state", "state", model.ItemDownloading)
	item.Download = s.downloader.Download(ctx, DownloadRequest{
		Media:       media,
		AccessToken: token,
		MaxHeight:   s.conf.Source.MaxHeight,
		MaxWidth:    s.conf.Source.MaxWidth,
		Dir:         dir,
	})
	if item.Download == nil {
		item.Download = model.DownloadFailed("downloader returned no outcome")
	}

	staged, ok := item.Download.Succeeded()
	if !ok {
		logger.Warn("item state", "state", model.ItemDownloadFailed, "error", item.Download.Error)
		return item
	}
	logger.Debug("item state", "state", model.ItemDownloaded, "path", staged.LocalPath)

	logger.Debug("item state", "state", model.ItemUploading)
	item.Upload = s.uploader.Upload(ctx, staged)
	if item.Upload == nil {
		item.Upload = model.UploadFailed(model.StageParseResponse, "uploader returned no outcome")
	}
	if !item.Upload.State.IsSuccess() {
		logger.Warn("item state", "state", model.ItemUploadFailed, "stage", item.Upload.FailedStage, "error", item.Upload.Error)
		return item
	}
	logger.Debug("item state", "state", model.ItemUploaded, "url", item.Upload.DestinationURL)
	return item
}

// settle counts one finished item; progress sees monotonic counts.
func (s *TransferService) settle(b *batch) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settled++
	if s.progress != nil {
		s.progress(b.settled, b.total)
	}
}
