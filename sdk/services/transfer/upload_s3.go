// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// ObjectUploader is the part of config.S3Client the S3 uploader needs.
type ObjectUploader interface {
	UploadObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string, hook *config.ProgressHook) (*manager.UploadOutput, error)
}

// S3Uploader stores images in an S3-compatible bucket (AWS, Backblaze B2).
type S3Uploader struct {
	client    ObjectUploader
	bucket    string
	keyPrefix string
	urlPrefix string
	hook      *config.ProgressHook
}

func NewS3Uploader(client ObjectUploader, store config.StoreConfig) *S3Uploader {
	return &S3Uploader{
		client:    client,
		bucket:    store.Bucket,
		keyPrefix: store.KeyPrefix,
		urlPrefix: store.URLPrefix,
	}
}

// WithProgressHook sets the byte-level hook passed to every upload.
func (u *S3Uploader) WithProgressHook(hook *config.ProgressHook) *S3Uploader {
	u.hook = hook
	return u
}

func (u *S3Uploader) Upload(ctx context.Context, dl model.DownloadSuccess) *model.UploadOutcome {
	file, err := openStaged(dl.LocalPath)
	if err != nil {
		return model.UploadFailed(model.StageReadLocalFile, err.Error())
	}
	defer file.Close()

	key := ObjectKey(u.keyPrefix, dl.NormalizedFilename)
	out, err := u.client.UploadObject(ctx, u.bucket, key, file, file.size, file.contentType, u.hook)
	if err != nil {
		return model.UploadFailed(model.StageTransmit, err.Error())
	}

	if u.urlPrefix != "" {
		return model.UploadSucceeded(strings.TrimRight(u.urlPrefix, "/") + "/" + key)
	}
	if out == nil || out.Location == "" {
		return model.UploadFailed(model.StageParseResponse, "could not read Location in result of S3 upload")
	}
	return model.UploadSucceeded(out.Location)
}
