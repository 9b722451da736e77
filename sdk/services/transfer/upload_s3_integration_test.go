// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// Runs against a real bucket when ALBUMPOST_S3_BUCKET and credentials are set.
func TestS3UploaderIntegration(t *testing.T) {
	store := config.StoreConfig{
		Backend:     config.BackendS3,
		Bucket:      os.Getenv("ALBUMPOST_S3_BUCKET"),
		Region:      os.Getenv("ALBUMPOST_S3_REGION"),
		EndpointURL: os.Getenv("ALBUMPOST_S3_ENDPOINT_URL"),
		AccessKey:   os.Getenv("ALBUMPOST_S3_ACCESS_KEY"),
		SecretKey:   os.Getenv("ALBUMPOST_S3_SECRET_KEY"),
		KeyPrefix:   "albumpost-it",
	}
	if store.Bucket == "" || store.AccessKey == "" || store.SecretKey == "" {
		t.Skip("ALBUMPOST_S3_BUCKET / ALBUMPOST_S3_ACCESS_KEY / ALBUMPOST_S3_SECRET_KEY not set")
	}
	if store.Region == "" {
		store.Region = "us-east-1"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := config.NewS3Client(ctx, store)
	if err != nil {
		t.Fatalf("NewS3Client: %v", err)
	}
	out := NewS3Uploader(client, store).Upload(ctx, stageFile(t, "it.jpg", "\xff\xd8\xff\xe0 jpeg"))
	if out.State != model.StateSuccess || out.DestinationURL == "" {
		t.Fatalf("outcome = %+v", out)
	}
}
