// Package catalog defines the music catalog boundary used by the
// submission flow. The production implementation lives in the spotify
// subpackage; tests swap in fakes.
package catalog

import "context"

// Track is the canonical catalog record for a matched song.
type Track struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
	DurationMS  int    `json:"duration_ms,omitempty"`
	Explicit    bool   `json:"explicit"`
}

// Client is the catalog operations the submission flow needs. FindTrack
// returns (nil, nil) when the catalog has no match; errors mean the
// catalog itself was unreachable.
type Client interface {
	FindTrack(ctx context.Context, artist, title string) (*Track, error)
	AppendToPlaylist(ctx context.Context, trackURI string) error
}
