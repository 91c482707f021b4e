package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/songgate/internal/catalog"
)

var (
	ErrConfigInvalid   = errors.New("spotify config invalid")
	ErrAuthFailed      = errors.New("spotify auth failed")
	ErrRequestFailed   = errors.New("spotify request failed")
	ErrResponseInvalid = errors.New("spotify response invalid")
	ErrPlaylistFailed  = errors.New("spotify playlist append failed")
)

const (
	defaultBaseURL     = "https://api.spotify.com"
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultTimeout     = 8 * time.Second
	tokenExpirySlack   = 30 * time.Second
)

// Config holds Spotify Web API credentials. Auth uses the refresh token
// grant so the playlist can belong to a regular user account.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	PlaylistID   string
	BaseURL      string
	AccountsURL  string
	TimeoutMS    int
}

// Client talks to the Spotify Web API. The access token is cached and
// refreshed on expiry; safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	cfg.normalize()
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client credentials are required", ErrConfigInvalid)
	}
	if cfg.RefreshToken == "" {
		return nil, fmt.Errorf("%w: refresh_token is required", ErrConfigInvalid)
	}
	if cfg.PlaylistID == "" {
		return nil, fmt.Errorf("%w: playlist_id is required", ErrConfigInvalid)
	}
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FindTrack searches the catalog for an exact artist and title match and
// returns the best hit, or (nil, nil) when nothing matches.
func (c *Client) FindTrack(ctx context.Context, artist, title string) (*catalog.Track, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("artist:%s track:%s", strings.TrimSpace(artist), strings.TrimSpace(title)))
	query.Set("type", "track")
	query.Set("limit", "1")

	respBody, statusCode, err := c.doRequest(ctx, http.MethodGet, "/v1/search?"+query.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: search status %d", ErrResponseInvalid, statusCode)
	}
	return parseSearchResponse(respBody)
}

// AppendToPlaylist adds trackURI to the configured playlist.
func (c *Client) AppendToPlaylist(ctx context.Context, trackURI string) error {
	trackURI = strings.TrimSpace(trackURI)
	if trackURI == "" {
		return fmt.Errorf("%w: track uri is empty", ErrConfigInvalid)
	}
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string][]string{"uris": {trackURI}})
	if err != nil {
		return fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
	}

	endpoint := "/v1/playlists/" + url.PathEscape(c.cfg.PlaylistID) + "/tracks"
	respBody, statusCode, err := c.doRequest(ctx, http.MethodPost, endpoint, token, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlaylistFailed, err)
	}
	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("%w: status %d body %s", ErrPlaylistFailed, statusCode, truncate(respBody, 200))
	}
	return nil
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			ID      string `json:"id"`
			URI     string `json:"uri"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name   string `json:"name"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
			DurationMS int  `json:"duration_ms"`
			Explicit   bool `json:"explicit"`
		} `json:"items"`
	} `json:"tracks"`
}

func parseSearchResponse(body []byte) (*catalog.Track, error) {
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode search response failed", ErrResponseInvalid)
	}
	if len(parsed.Tracks.Items) == 0 {
		return nil, nil
	}
	item := parsed.Tracks.Items[0]
	if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.URI) == "" {
		return nil, fmt.Errorf("%w: track id or uri missing", ErrResponseInvalid)
	}
	track := &catalog.Track{
		ID:          strings.TrimSpace(item.ID),
		URI:         strings.TrimSpace(item.URI),
		Name:        strings.TrimSpace(item.Name),
		Album:       strings.TrimSpace(item.Album.Name),
		ExternalURL: strings.TrimSpace(item.ExternalURLs.Spotify),
		DurationMS:  item.DurationMS,
		Explicit:    item.Explicit,
	}
	if len(item.Artists) > 0 {
		track.Artist = strings.TrimSpace(item.Artists[0].Name)
	}
	if len(item.Album.Images) > 0 {
		track.ArtworkURL = strings.TrimSpace(item.Album.Images[0].URL)
	}
	return track, nil
}

func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	values := url.Values{}
	values.Set("grant_type", "refresh_token")
	values.Set("refresh_token", c.cfg.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AccountsURL+"/api/token", strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request failed", ErrAuthFailed)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request token failed", ErrAuthFailed)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read token response failed", ErrAuthFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token status %d", ErrAuthFailed, resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode token response failed", ErrAuthFailed)
	}
	if strings.TrimSpace(parsed.AccessToken) == "" {
		return "", fmt.Errorf("%w: access_token is empty", ErrAuthFailed)
	}

	c.accessToken = strings.TrimSpace(parsed.AccessToken)
	expiresIn := time.Duration(parsed.ExpiresIn) * time.Second
	if expiresIn <= tokenExpirySlack {
		expiresIn = time.Hour
	}
	c.tokenExpiry = time.Now().Add(expiresIn - tokenExpirySlack)
	return c.accessToken, nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint, token string, body []byte) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: http request failed", ErrRequestFailed)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	return respBody, resp.StatusCode, nil
}

func (c *Config) normalize() {
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.ClientSecret = strings.TrimSpace(c.ClientSecret)
	c.RefreshToken = strings.TrimSpace(c.RefreshToken)
	c.PlaylistID = strings.TrimSpace(c.PlaylistID)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.AccountsURL = strings.TrimRight(strings.TrimSpace(c.AccountsURL), "/")
	if c.AccountsURL == "" {
		c.AccountsURL = defaultAccountsURL
	}
}

func truncate(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max])
}
