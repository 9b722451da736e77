// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const testSecretHex = "00112233445566778899aabbccddeeff"

func TestGhostBuildURL(t *testing.T) {
	g := NewGhostHTTP(nil, GhostConfig{AdminURL: "https://blog.example.com/"})

	if got, want := g.BuildURL("images/upload", nil), "https://blog.example.com/ghost/api/admin/images/upload/"; got != want {
		t.Errorf("BuildURL() = %s, expected %s", got, want)
	}
	if got, want := g.BuildURL("posts", map[string]string{"source": "html", "empty": ""}), "https://blog.example.com/ghost/api/admin/posts/?source=html"; got != want {
		t.Errorf("BuildURL() = %s, expected %s", got, want)
	}
}

func TestGhostDoSignsRequests(t *testing.T) {
	key, _ := hex.DecodeString(testSecretHex)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Version") != "v5.0" {
			t.Errorf("missing Accept-Version header")
		}
		auth := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(auth, "Ghost ")
		if !ok {
			t.Errorf("unexpected Authorization header %q", auth)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		tok, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
			if tok.Header["kid"] != "keyid" {
				t.Errorf("unexpected kid %v", tok.Header["kid"])
			}
			return key, nil
		}, jwt.WithAudience("/admin/"), jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tok.Valid {
			t.Errorf("invalid token: %v", err)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	g := NewGhostHTTP(srv.Client(), GhostConfig{AdminURL: srv.URL, AdminAPIKey: "keyid:" + testSecretHex})
	body, status, err := g.Do(context.Background(), http.MethodGet, g.BuildURL("site", nil), nil, "")
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if status != http.StatusOK || string(body) != `{"ok":true}` {
		t.Errorf("unexpected response %d %s", status, body)
	}
}

func TestGhostDoReportsErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid token"}]}`))
	}))
	defer srv.Close()

	g := NewGhostHTTP(srv.Client(), GhostConfig{AdminURL: srv.URL, AdminAPIKey: "keyid:" + testSecretHex})
	_, status, err := g.Do(context.Background(), http.MethodGet, g.BuildURL("site", nil), nil, "")
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", status)
	}
	if err == nil || !strings.Contains(err.Error(), "Invalid token") {
		t.Errorf("expected error with ghost message, got %v", err)
	}
}

func TestGhostDoRejectsBadKey(t *testing.T) {
	g := NewGhostHTTP(nil, GhostConfig{AdminURL: "http://127.0.0.1:1", AdminAPIKey: "keyid:not-hex"})
	if _, _, err := g.Do(context.Background(), http.MethodGet, g.BuildURL("site", nil), nil, ""); err == nil {
		t.Fatal("expected an error for a non-hex secret")
	}
}
