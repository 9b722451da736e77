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
	"path"
	"path/filepath"
	"strings"

	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// HTTPDownloader fetches renditions from the source API with a bearer token.
type HTTPDownloader struct {
	httpClient *http.Client
}

func NewHTTPDownloader(httpClient *http.Client) *HTTPDownloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPDownloader{httpClient: httpClient}
}

// NormalizeFilename keeps .jpg/.jpeg names and gives everything else a .jpg
// extension: the source serves resized renditions as JPEG.
func NormalizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		base = "image"
	}
	ext := path.Ext(base)
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return base
	}
	return strings.TrimSuffix(base, ext) + ".jpg"
}

// SourceURL is the rendition URL bounded to the requested size.
func SourceURL(locator string, maxWidth, maxHeight int) string {
	return fmt.Sprintf("%s=w%d-h%d", locator, maxWidth, maxHeight)
}

func (d *HTTPDownloader) Download(ctx context.Context, req DownloadRequest) *model.DownloadOutcome {
	filename := NormalizeFilename(req.Media.Filename)
	target := filepath.Join(req.Dir, filename)

	if err := d.fetch(ctx, req, target); err != nil {
		return model.DownloadFailed(err.Error())
	}
	return model.DownloadSucceeded(target, filename)
}

func (d *HTTPDownloader) fetch(ctx context.Context, req DownloadRequest, target string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, SourceURL(req.Media.SourceLocator, req.MaxWidth, req.MaxHeight), nil)
	if err != nil {
		return fmt.Errorf("failed to build source request: %w", err)
	}
	if req.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
	}

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func(Body io.ReadCloser) { _ = Body.Close() }(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("source responded with: %s", resp.Status)
	}

	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return fmt.Errorf("failed to write image to %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("failed to write image to %s: %w", target, err)
	}
	return nil
}
