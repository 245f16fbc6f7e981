package pokemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ross1116/pokeref/internal/cache"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	spriteBase     = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon"
)

// ErrNotFound matches a 404 from the API.
var ErrNotFound = errors.New("pokemon: resource not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: GET %s: status %d", e.URL, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimitRPS   float64 // <= 0 disables limiting
	RateLimitBurst int
	Cache          cache.Cache // nil disables caching
	CacheTTL       time.Duration
	Logger         *zap.Logger
	HTTPClient     *http.Client
}

// Client is a read-only PokeAPI client. Responses are cached by URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	limit := rate.Inf
	burst := cfg.RateLimitBurst
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     cfg.Logger,
	}
}

// FetchData GETs url and decodes the JSON body into result, serving from the
// cache when a fresh copy exists. Cache failures are logged, never returned.
func FetchData[T any](ctx context.Context, c *Client, url string, result *T) error {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, url)
		if err == nil {
			if err := json.Unmarshal([]byte(cached), result); err == nil {
				return nil
			}
			c.logger.Warn("dropping undecodable cache entry", zap.String("url", url))
			_ = c.cache.Del(ctx, url)
		} else if !cache.IsNotFound(err) {
			c.logger.Warn("cache read failed", zap.String("url", url), zap.Error(err))
		}
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("pokeapi: decode %s: %w", url, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, url, string(body), c.cacheTTL); err != nil {
			c.logger.Warn("cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("pokeapi request",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) GetPokemon(ctx context.Context, id int) (*Pokemon, error) {
	if id <= 0 {
		return nil, fmt.Errorf("pokemon: invalid id %d", id)
	}
	return c.getPokemon(ctx, fmt.Sprintf("%s/pokemon/%d/", c.baseURL, id))
}

func (c *Client) GetPokemonByName(ctx context.Context, name string) (*Pokemon, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("pokemon: empty name")
	}
	return c.getPokemon(ctx, fmt.Sprintf("%s/pokemon/%s/", c.baseURL, name))
}

func (c *Client) getPokemon(ctx context.Context, url string) (*Pokemon, error) {
	var p Pokemon
	if err := FetchData(ctx, c, url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetSpecies(ctx context.Context, id int) (*Species, error) {
	var s Species
	if err := FetchData(ctx, c, fmt.Sprintf("%s/pokemon-species/%d/", c.baseURL, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*NamedResourceList, error) {
	if limit <= 0 {
		limit = 151
	}
	if offset < 0 {
		offset = 0
	}
	var list NamedResourceList
	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)
	if err := FetchData(ctx, c, url, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) ListTypes(ctx context.Context) (*NamedResourceList, error) {
	var list NamedResourceList
	if err := FetchData(ctx, c, c.baseURL+"/type", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetType(ctx context.Context, name string) (*TypeDetail, error) {
	var td TypeDetail
	url := fmt.Sprintf("%s/type/%s/", c.baseURL, strings.ToLower(name))
	if err := FetchData(ctx, c, url, &td); err != nil {
		return nil, err
	}
	return &td, nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Flush(ctx)
}

func SpriteURL(id int) string {
	return fmt.Sprintf("%s/%d.png", spriteBase, id)
}

func BackSpriteURL(id int) string {
	return fmt.Sprintf("%s/back/%d.png", spriteBase, id)
}
