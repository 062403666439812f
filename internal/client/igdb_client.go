package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gaming-community-api/internal/config"
	"gaming-community-api/internal/metrics"
)

// Game mirrors the IGDB v4 game resource, limited to the fields we request.
// Listing queries fill only the summary subset; GetGameByID fills everything.
type Game struct {
	ID                    int               `json:"id"`
	Name                  string            `json:"name"`
	Summary               string            `json:"summary,omitempty"`
	Storyline             string            `json:"storyline,omitempty"`
	Cover                 *Image            `json:"cover,omitempty"`
	Screenshots           []Image           `json:"screenshots,omitempty"`
	Artworks              []Image           `json:"artworks,omitempty"`
	Genres                []NamedEntity     `json:"genres,omitempty"`
	Platforms             []Platform        `json:"platforms,omitempty"`
	GameModes             []NamedEntity     `json:"game_modes,omitempty"`
	Themes                []NamedEntity     `json:"themes,omitempty"`
	InvolvedCompanies     []InvolvedCompany `json:"involved_companies,omitempty"`
	ReleaseDates          []ReleaseDate     `json:"release_dates,omitempty"`
	FirstReleaseDate      int64             `json:"first_release_date,omitempty"`
	Rating                float64           `json:"rating,omitempty"`
	RatingCount           int               `json:"rating_count,omitempty"`
	AggregatedRating      float64           `json:"aggregated_rating,omitempty"`
	AggregatedRatingCount int               `json:"aggregated_rating_count,omitempty"`
	URL                   string            `json:"url,omitempty"`
}

// Image is an IGDB cover, screenshot or artwork
type Image struct {
	ID      int    `json:"id"`
	ImageID string `json:"image_id"`
	URL     string `json:"url"`
}

// NamedEntity is any IGDB resource we only need the name of
type NamedEntity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Platform is an IGDB platform reference
type Platform struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// InvolvedCompany links a game to a developer or publisher
type InvolvedCompany struct {
	ID        int         `json:"id"`
	Company   NamedEntity `json:"company"`
	Developer bool        `json:"developer"`
	Publisher bool        `json:"publisher"`
}

// ReleaseDate is one platform release of a game
type ReleaseDate struct {
	ID       int          `json:"id"`
	Date     int64        `json:"date,omitempty"`
	Human    string       `json:"human,omitempty"`
	Platform *NamedEntity `json:"platform,omitempty"`
}

// summaryFields is the field list for search and listing queries
const summaryFields = "fields id, name, summary, cover.url, cover.image_id, " +
	"first_release_date, rating, rating_count, " +
	"genres.name, platforms.name, platforms.abbreviation"

// detailFields is the full field list for single-game lookups
const detailFields = "fields id, name, summary, storyline, " +
	"cover.url, cover.image_id, " +
	"artworks.url, artworks.image_id, " +
	"screenshots.url, screenshots.image_id, " +
	"genres.name, platforms.name, platforms.abbreviation, " +
	"release_dates.date, release_dates.human, release_dates.platform.name, " +
	"involved_companies.company.name, involved_companies.developer, involved_companies.publisher, " +
	"rating, rating_count, aggregated_rating, aggregated_rating_count, " +
	"game_modes.name, themes.name, first_release_date, url"

// categoryWhereClause maps a category slug to an Apicalypse filter.
// Unknown categories fall back to a minimum rating-count filter.
func categoryWhereClause(category string) string {
	switch strings.ToLower(category) {
	case "popular", "most-popular":
		return "rating_count > 100"
	case "trending":
		// Releases from 2022 onwards
		return "first_release_date > 1640995200"
	case "action":
		return "genres = (4)"
	case "adventure":
		return "genres = (31)"
	case "rpg":
		return "genres = (12)"
	case "strategy":
		return "genres = (15)"
	case "sports":
		return "genres = (14)"
	default:
		return "rating_count > 50"
	}
}

// IGDBClient defines the interface for the IGDB game catalog
type IGDBClient interface {
	SearchGames(ctx context.Context, query string, limit int) ([]Game, error)
	GetGameByID(ctx context.Context, gameID int) (*Game, error)
	GetGamesByCategory(ctx context.Context, category string, limit, offset int) ([]Game, error)
	GetTrendingGames(ctx context.Context, limit int) ([]Game, error)
	GetPopularGames(ctx context.Context, limit int) ([]Game, error)
}

// igdbClient talks to the IGDB v4 API using Apicalypse query bodies
type igdbClient struct {
	baseURL    string
	clientID   string
	tokens     TokenProvider
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewIGDBClient creates a new IGDB API client
func NewIGDBClient(cfg config.IGDBConfig, tokens TokenProvider, logger *zap.Logger, m *metrics.Metrics) IGDBClient {
	return &igdbClient{
		baseURL:  cfg.APIURL,
		clientID: cfg.ClientID,
		tokens:   tokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SearchGames runs a full-text search over the catalog
func (c *igdbClient) SearchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	body := fmt.Sprintf(`search "%s"; %s; limit %d;`, escapeQuery(query), summaryFields, limit)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, fmt.Errorf("failed to search games: %w", err)
	}
	return games, nil
}

// GetGameByID fetches a single game with full details
func (c *igdbClient) GetGameByID(ctx context.Context, gameID int) (*Game, error) {
	body := fmt.Sprintf(`%s; where id = %d;`, detailFields, gameID)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", gameID, err)
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return &games[0], nil
}

// GetGamesByCategory lists games matching a category slug, by rating volume
func (c *igdbClient) GetGamesByCategory(ctx context.Context, category string, limit, offset int) ([]Game, error) {
	body := fmt.Sprintf(
		`%s; where %s; sort rating_count desc; limit %d; offset %d;`,
		summaryFields, categoryWhereClause(category), limit, offset,
	)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, fmt.Errorf("failed to get %s games: %w", category, err)
	}
	return games, nil
}

// GetTrendingGames lists well-rated games released in the last 90 days
func (c *igdbClient) GetTrendingGames(ctx context.Context, limit int) ([]Game, error) {
	now := time.Now().Unix()
	since := now - 90*24*60*60

	body := fmt.Sprintf(
		`%s; where first_release_date > %d & first_release_date < %d & rating_count > 10; sort rating desc; limit %d;`,
		summaryFields, since, now, limit,
	)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, fmt.Errorf("failed to get trending games: %w", err)
	}
	return games, nil
}

// GetPopularGames lists all-time popular games by rating volume
func (c *igdbClient) GetPopularGames(ctx context.Context, limit int) ([]Game, error) {
	body := fmt.Sprintf(
		`%s; where rating_count > 100; sort rating_count desc; limit %d;`,
		summaryFields, limit,
	)

	var games []Game
	if err := c.query(ctx, "games", body, &games); err != nil {
		return nil, fmt.Errorf("failed to get popular games: %w", err)
	}
	return games, nil
}

// query posts an Apicalypse body to an IGDB endpoint. A 401 response forces a
// token refresh and a single retry.
func (c *igdbClient) query(ctx context.Context, endpoint, body string, out interface{}) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	status, err := c.doRequest(ctx, endpoint, body, token, out)
	if status == http.StatusUnauthorized {
		c.logger.Warn("IGDB returned 401, refreshing token and retrying",
			zap.String("endpoint", endpoint))

		token, err = c.tokens.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to refresh access token: %w", err)
		}
		_, err = c.doRequest(ctx, endpoint, body, token, out)
	}
	return err
}

func (c *igdbClient) doRequest(ctx context.Context, endpoint, body, token string, out interface{}) (int, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordExternalAPIRequest("igdb", endpoint, 0, duration, err)
		}
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordExternalAPIRequest("igdb", endpoint, resp.StatusCode, duration, nil)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("IGDB request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return resp.StatusCode, fmt.Errorf("igdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// escapeQuery strips quotes and backslashes so user input cannot break out of
// the Apicalypse search string
func escapeQuery(query string) string {
	escaped := make([]rune, 0, len(query))
	for _, r := range query {
		if r == '"' || r == '\\' {
			continue
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}
