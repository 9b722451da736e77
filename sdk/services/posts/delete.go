// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package posts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

func (s *PostsService) Delete(ctx context.Context, req DeleteRequest) error {
	if req.ID == "" {
		return errors.New("id is required")
	}

	u := s.http.BuildURL("posts/"+url.PathEscape(req.ID), nil)
	_, status, err := s.http.Do(ctx, http.MethodDelete, u, nil, "")
	if err != nil {
		return fmt.Errorf("delete failed (status %d): %w", status, err)
	}
	return nil
}
