// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/albumpost/albumpost-sdk/sdk/config"
)

// NewUploader picks the destination backend from conf.Store.Backend.
func NewUploader(ctx context.Context, conf config.Config) (Uploader, error) {
	switch strings.ToLower(conf.Store.Backend) {
	case "", config.BackendS3:
		s3c, err := config.NewS3Client(ctx, conf.Store)
		if err != nil {
			return nil, fmt.Errorf("S3 init failed: %w", err)
		}
		return NewS3Uploader(s3c, conf.Store), nil
	case config.BackendGhost:
		return NewGhostUploader(config.NewGhostHTTP(nil, conf.Ghost)), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", conf.Store.Backend)
	}
}

// ObjectKey joins the optional key prefix and the filename.
func ObjectKey(prefix, filename string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return filename
	}
	return prefix + "/" + filename
}

// stagedFile is an opened staged image with its size and sniffed content type.
type stagedFile struct {
	*os.File
	size        int64
	contentType string
}

func openStaged(localPath string) (*stagedFile, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat error: %w", err)
	}

	// Detect content-type
	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read local file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("seek error: %w", err)
	}

	return &stagedFile{File: file, size: info.Size(), contentType: http.DetectContentType(header[:n])}, nil
}
