// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/albumpost/albumpost-sdk/sdk/model"
)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"x.png", "x.jpg"},
		{"photo.JPG", "photo.JPG"},
		{"photo.jpeg", "photo.jpeg"},
		{"photo.JPEG", "photo.JPEG"},
		{"IMG_0001.HEIC", "IMG_0001.jpg"},
		{"noext", "noext.jpg"},
		{"archive.tar.gz", "archive.tar.jpg"},
		{"../../etc/passwd", "passwd.jpg"},
		{`C:\Users\me\pic.gif`, "pic.jpg"},
		{"", "image.jpg"},
		{"..", "image.jpg"},
	}
	for _, tt := range tests {
		if got := NormalizeFilename(tt.in); got != tt.want {
			t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourceURL(t *testing.T) {
	if got, want := SourceURL("https://src/abc", 1600, 1200), "https://src/abc=w1600-h1200"; got != want {
		t.Errorf("SourceURL() = %s, want %s", got, want)
	}
}

func TestHTTPDownloaderDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/media/m1=w800-h600" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "a1", "0")
	d := NewHTTPDownloader(srv.Client())
	out := d.Download(context.Background(), DownloadRequest{
		Media:       model.MediaReference{ID: "m1", SourceLocator: srv.URL + "/media/m1", Filename: "x.png", MimeType: "image/png"},
		AccessToken: "tok",
		MaxHeight:   600,
		MaxWidth:    800,
		Dir:         dir,
	})

	ok, succeeded := out.Succeeded()
	if !succeeded {
		t.Fatalf("download failed: %s", out.Error)
	}
	if ok.NormalizedFilename != "x.jpg" || ok.LocalPath != filepath.Join(dir, "x.jpg") {
		t.Errorf("success = %+v", ok)
	}
	b, err := os.ReadFile(ok.LocalPath)
	if err != nil || string(b) != "jpeg-bytes" {
		t.Errorf("staged content = %q, %v", b, err)
	}
}

func TestHTTPDownloaderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewHTTPDownloader(srv.Client())

	tests := []struct {
		name    string
		locator string
	}{
		{"not found", srv.URL + "/media/missing"},
		{"bad url", "://nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := d.Download(context.Background(), DownloadRequest{
				Media:       model.MediaReference{ID: "m1", SourceLocator: tt.locator, Filename: "x.jpg"},
				AccessToken: "tok",
				MaxHeight:   1,
				MaxWidth:    1,
				Dir:         dir,
			})
			if out.State != model.StateError || out.Error == "" {
				t.Fatalf("outcome = %+v, want failure", out)
			}
			if _, err := os.Stat(filepath.Join(dir, "x.jpg")); !os.IsNotExist(err) {
				t.Errorf("no file should be left behind: %v", err)
			}
		})
	}
}
