package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voyagen/sportsvault/internal/models"
)

// maxPlaylistSize caps the source document; larger bodies are rejected.
var maxPlaylistSize int64 = 64 << 20

var (
	// ErrUnexpectedStatus is wrapped by FetchPlaylist when the source does not answer 200.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrPlaylistTooLarge is wrapped by FetchPlaylist when the body exceeds maxPlaylistSize.
	ErrPlaylistTooLarge = errors.New("playlist too large")
)

// FetchPlaylist downloads the playlist document at url and returns its text.
// userAgent is optional; timeout bounds the whole request including the body.
func FetchPlaylist(ctx context.Context, url string, userAgent string, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("NewRequest: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPlaylistSize+1))
	if err != nil {
		return "", fmt.Errorf("ReadAll: %w", err)
	}
	if int64(len(body)) > maxPlaylistSize {
		return "", fmt.Errorf("%w: more than %d bytes", ErrPlaylistTooLarge, maxPlaylistSize)
	}
	return string(body), nil
}

// FetchEntries downloads the playlist at url and parses it.
func FetchEntries(ctx context.Context, url string, userAgent string, timeout time.Duration) ([]models.Entry, error) {
	text, err := FetchPlaylist(ctx, url, userAgent, timeout)
	if err != nil {
		return nil, err
	}
	return ParseString(text), nil
}
