// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/queue"
	"github.com/albumpost/albumpost-sdk/sdk/utils"
)

type TransferService struct {
	conf       config.Config
	downloader Downloader
	uploader   Uploader
	publisher  Publisher
	unitQueue  *queue.Queue
	itemQueue  *queue.Queue
	ownsQueues bool
	logger     *slog.Logger
	progress   ProgressFunc
	removeAll  func(path string) error
}

type Option func(*TransferService)

// WithQueues makes the service use queues owned by the caller, which may
// share them between services. Close leaves them open.
func WithQueues(unitQueue, itemQueue *queue.Queue) Option {
	return func(s *TransferService) {
		s.unitQueue = unitQueue
		s.itemQueue = itemQueue
	}
}

func WithDownloader(d Downloader) Option {
	return func(s *TransferService) { s.downloader = d }
}

func WithUploader(u Uploader) Option {
	return func(s *TransferService) { s.uploader = u }
}

// WithPublisher enables the publish step after all items of a unit settled.
func WithPublisher(p Publisher) Option {
	return func(s *TransferService) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *TransferService) { s.logger = l }
}

func WithProgress(fn ProgressFunc) Option {
	return func(s *TransferService) { s.progress = fn }
}

// NewTransferService validates conf and fills in everything not injected:
// the HTTP downloader, the uploader selected by the store backend and queues
// tuned by conf.Queue.
func NewTransferService(ctx context.Context, conf config.Config, opts ...Option) (*TransferService, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &TransferService{conf: conf, removeAll: os.RemoveAll}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.downloader == nil {
		s.downloader = NewHTTPDownloader(nil)
	}
	if s.uploader == nil {
		u, err := NewUploader(ctx, conf)
		if err != nil {
			return nil, err
		}
		if s3u, ok := u.(*S3Uploader); ok {
			s3u.WithProgressHook(byteProgressHook(s.logger))
		}
		s.uploader = u
	}
	if s.unitQueue == nil || s.itemQueue == nil {
		s.unitQueue = queue.New(queue.Options{Concurrency: conf.Queue.UnitConcurrency})
		s.itemQueue = queue.New(queue.Options{
			Concurrency: conf.Queue.ItemConcurrency,
			Interval:    conf.Queue.Interval,
			IntervalCap: conf.Queue.IntervalCap,
		})
		s.ownsQueues = true
	}
	return s, nil
}

// Close stops the queues created by the service. Runs in progress keep going.
func (s *TransferService) Close() {
	if s.ownsQueues {
		s.unitQueue.Close()
		s.itemQueue.Close()
	}
}

func byteProgressHook(logger *slog.Logger) *config.ProgressHook {
	return &config.ProgressHook{
		OnStart: func(key string, total int64) {
			logger.Debug("upload started", "key", key, "size", utils.HumanBytes(total))
		},
		OnProgress: func(key string, written, total int64) {
			logger.Debug("upload progress", "key", key, "written", utils.HumanBytes(written), "size", utils.HumanBytes(total))
		},
		OnDone: func(key string, total int64, took time.Duration) {
			logger.Debug("upload finished", "key", key, "size", utils.HumanBytes(total), "took", took)
		},
	}
}
