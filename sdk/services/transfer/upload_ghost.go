// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// GhostUploader stores images through the Ghost Admin images API, which puts
// them in whatever storage adapter the blog is configured with.
type GhostUploader struct {
	http config.GhostHTTP
}

func NewGhostUploader(httpc config.GhostHTTP) *GhostUploader {
	return &GhostUploader{http: httpc}
}

type ghostImagesResponse struct {
	Images []struct {
		URL string `json:"url"`
		Ref string `json:"ref"`
	} `json:"images"`
}

func (u *GhostUploader) Upload(ctx context.Context, dl model.DownloadSuccess) *model.UploadOutcome {
	body, contentType, err := ghostImageForm(dl)
	if err != nil {
		return model.UploadFailed(model.StageReadLocalFile, err.Error())
	}

	resp, _, err := u.http.Do(ctx, http.MethodPost, u.http.BuildURL("images/upload", nil), body, contentType)
	if err != nil {
		return model.UploadFailed(model.StageTransmit, err.Error())
	}

	var parsed ghostImagesResponse
	if err := json.Unmarshal(resp, &parsed); err != nil {
		return model.UploadFailed(model.StageParseResponse, fmt.Sprintf("could not parse Ghost image response: %v", err))
	}
	if len(parsed.Images) == 0 || parsed.Images[0].URL == "" {
		return model.UploadFailed(model.StageParseResponse, "could not parse Ghost image URL from response")
	}
	return model.UploadSucceeded(parsed.Images[0].URL)
}

func ghostImageForm(dl model.DownloadSuccess) (*bytes.Buffer, string, error) {
	file, err := openStaged(dl.LocalPath)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, dl.NormalizedFilename))
	h.Set("Content-Type", file.contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read local file: %w", err)
	}
	if err := w.WriteField("ref", dl.NormalizedFilename); err != nil {
		return nil, "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to build upload form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
