package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchEntries(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(samplePlaylist))
	}))
	defer srv.Close()

	entries, err := FetchEntries(context.Background(), srv.URL, "PlaylistBot/1.0", 5*time.Second)
	if err != nil {
		t.Fatalf("FetchEntries: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(entries))
	}
	if gotUA != "PlaylistBot/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchPlaylistStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchPlaylist(context.Background(), srv.URL, "", 5*time.Second)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestFetchPlaylistConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := FetchPlaylist(context.Background(), url, "", time.Second); err == nil {
		t.Error("Expected error from closed server")
	}
}

func TestFetchPlaylistSizeLimit(t *testing.T) {
	prev := maxPlaylistSize
	maxPlaylistSize = 16
	t.Cleanup(func() { maxPlaylistSize = prev })

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"exactly at limit", "#EXTM3U\n#EXTINF:", false},
		{"one byte over", "#EXTM3U\n#EXTINF:-", true},
		{"far over", samplePlaylist, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			text, err := FetchPlaylist(context.Background(), srv.URL, "", 5*time.Second)
			if tt.wantErr {
				if !errors.Is(err, ErrPlaylistTooLarge) {
					t.Errorf("Expected ErrPlaylistTooLarge, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchPlaylist: %v", err)
			}
			if text != tt.body {
				t.Errorf("text = %q, want %q", text, tt.body)
			}
		})
	}
}
