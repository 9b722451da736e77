// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GhostHTTP is the transport to the Ghost Admin API shared by the Ghost
// uploader and the Ghost publisher.
type GhostHTTP interface {
	BuildURL(resource string, params map[string]string) string
	Do(ctx context.Context, method, url string, body io.Reader, contentType string) ([]byte, int, error)
}

type ghostCore struct {
	httpClient  *http.Client
	ghostConfig GhostConfig
	now         func() time.Time
}

func NewGhostHTTP(httpClient *http.Client, ghostConfig GhostConfig) GhostHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if ghostConfig.APIVersion == "" {
		ghostConfig.APIVersion = "v5.0"
	}
	return &ghostCore{httpClient: httpClient, ghostConfig: ghostConfig, now: time.Now}
}

func (g *ghostCore) BuildURL(resource string, params map[string]string) string {
	base := fmt.Sprintf("%s/ghost/api/admin/%s/", strings.TrimRight(g.ghostConfig.AdminURL, "/"), strings.Trim(resource, "/"))
	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) > 0 {
		base += "?" + q.Encode()
	}
	return base
}

func (g *ghostCore) Do(ctx context.Context, method, url string, body io.Reader, contentType string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	tok, err := g.token()
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Ghost "+tok)
	req.Header.Set("Accept-Version", g.ghostConfig.APIVersion)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m struct {
			Errors []struct {
				Message string `json:"message"`
			} `json:"errors"`
		}
		if json.Unmarshal(b, &m) == nil && len(m.Errors) > 0 && m.Errors[0].Message != "" {
			return b, resp.StatusCode, fmt.Errorf("ghost responded with: %s - %s", resp.Status, m.Errors[0].Message)
		}
		return b, resp.StatusCode, fmt.Errorf("ghost responded with: %s", resp.Status)
	}
	return b, resp.StatusCode, rerr
}

// token mints a short-lived admin JWT from the "<id>:<hex secret>" key.
func (g *ghostCore) token() (string, error) {
	id, secret, ok := strings.Cut(g.ghostConfig.AdminAPIKey, ":")
	if !ok {
		return "", fmt.Errorf("invalid ghost admin api key")
	}
	key, err := hex.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("invalid ghost admin api key secret: %w", err)
	}

	now := g.now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		Audience:  jwt.ClaimStrings{"/admin/"},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["kid"] = id
	return tok.SignedString(key)
}
