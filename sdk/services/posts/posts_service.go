// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package posts

import (
	"context"
	"errors"

	"github.com/albumpost/albumpost-sdk/sdk/config"
)

// PostsService manages the posts created by the Ghost publisher.
type PostsService struct {
	http config.GhostHTTP
}

func NewPostsService(_ context.Context, conf config.Config) (*PostsService, error) {
	if conf.Ghost.AdminURL == "" || conf.Ghost.AdminAPIKey == "" {
		return nil, errors.New("invalid ghost config")
	}
	return &PostsService{
		http: config.NewGhostHTTP(nil, conf.Ghost),
	}, nil
}

// NewPostsServiceWithHTTP is used when the transport is shared or faked.
func NewPostsServiceWithHTTP(httpc config.GhostHTTP) *PostsService {
	return &PostsService{http: httpc}
}
