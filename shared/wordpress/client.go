package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lsimons/blogbot/blog/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://public-api.wordpress.com"

	readTimeout  = 30 * time.Second
	writeTimeout = 60 * time.Second
)

// Config holds the credentials and site identity for one WordPress.com site.
// BaseURL is overridable for tests and defaults to the public API.
type Config struct {
	Username     string
	AppPassword  string
	ClientID     string
	ClientSecret string
	SiteID       string
	BaseURL      string
}

// Client is an implementation of domain.PostPublisher backed by the
// WordPress.com REST API.
//
// The bearer token is obtained lazily via a password-grant exchange on first
// use and cached for the client's lifetime. There is no expiry tracking or
// refresh; a token is expected to outlive one batch invocation.
type Client struct {
	cfg        Config
	httpClient *http.Client
	token      string
}

// NewClient creates a new Client. No network calls are made until the first
// operation.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// wpPost mirrors the wire shape of a post object in the WP REST API.
type wpPost struct {
	ID    int `json:"id"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	DateGMT string `json:"date_gmt"`
	Link    string `json:"link"`
}

// LatestPost returns the most recently published post, or nil when the site
// has no posts.
func (c *Client) LatestPost(ctx context.Context) (*domain.PublishedPost, error) {
	log.Debug().Str("site", c.cfg.SiteID).Msg("Fetching latest post")

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("per_page", "1")
	query.Set("orderby", "date")
	query.Set("order", "desc")

	body, err := c.do(ctx, http.MethodGet, c.postsURL()+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var posts []wpPost
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("wordpress: decoding post list: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}

	date, err := parseDateGMT(posts[0].DateGMT)
	if err != nil {
		return nil, fmt.Errorf("wordpress: parsing post date %q: %w", posts[0].DateGMT, err)
	}

	return &domain.PublishedPost{
		ID:    posts[0].ID,
		Title: posts[0].Title.Rendered,
		Date:  date,
		Link:  posts[0].Link,
	}, nil
}

// CreatePost publishes a new post immediately. The returned Date is the
// local creation time in UTC; the platform's response is not trusted to
// carry it.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*domain.PublishedPost, error) {
	log.Info().Str("title", title).Msg("Creating new blog post")

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
		"status":  "publish",
	})
	if err != nil {
		return nil, fmt.Errorf("wordpress: encoding post: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.postsURL(), payload)
	if err != nil {
		return nil, err
	}

	var post wpPost
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("wordpress: decoding created post: %w", err)
	}

	return &domain.PublishedPost{
		ID:    post.ID,
		Title: post.Title.Rendered,
		Date:  time.Now().UTC(),
		Link:  post.Link,
	}, nil
}

func (c *Client) postsURL() string {
	return fmt.Sprintf("%s/wp/v2/sites/%s/posts", c.cfg.BaseURL, c.cfg.SiteID)
}

// do issues one authenticated request and returns the response body.
// Non-2xx responses are returned as errors without retry.
func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("wordpress: building %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress: %s %s failed: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wordpress: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("wordpress: %s %s failed with status %d", method, rawURL, resp.StatusCode)
	}
	return body, nil
}

// getToken returns the cached bearer token, performing the one-time
// password-grant exchange on first use.
func (c *Client) getToken(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}

	log.Debug().Str("site", c.cfg.SiteID).Msg("Exchanging credentials for access token")
	conf := &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.cfg.BaseURL + "/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := conf.PasswordCredentialsToken(ctx, c.cfg.Username, c.cfg.AppPassword)
	if err != nil {
		return "", fmt.Errorf("wordpress: token exchange failed: %w", err)
	}

	c.token = tok.AccessToken
	return c.token, nil
}

// parseDateGMT handles both zone-suffixed and naive ISO-8601 timestamps;
// the API reports date_gmt without a zone marker, which is UTC by contract.
func parseDateGMT(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
