// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".albumpost.ini"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	SourceAccessToken = "source_access_token"
	ImageMaxHeight    = "image_max_height"
	ImageMaxWidth     = "image_max_width"

	StoreBackend       = "store_backend"
	S3Bucket           = "s3_bucket"
	S3KeyPrefix        = "s3_key_prefix"
	S3URLPrefix        = "s3_url_prefix"
	AwsRegion          = "aws_region"
	AwsEndpointURL     = "aws_endpoint_url"
	AwsAccessKeyID     = "aws_access_key_id"
	AwsSecretAccessKey = "aws_secret_access_key"
	AwsSessionToken    = "aws_session_token"

	GhostAdminURL    = "ghost_admin_url"
	GhostAdminAPIKey = "ghost_admin_api_key"
	GhostAPIVersion  = "ghost_api_version"

	UnitConcurrency = "unit_concurrency"
	ItemConcurrency = "item_concurrency"
	ItemInterval    = "item_interval"
	ItemIntervalCap = "item_interval_cap"
	StagingDir      = "staging_dir"

	LogLevel = "log_level"
)
