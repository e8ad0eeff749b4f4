package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devhub/internal/cache"
	"devhub/internal/models"
	"devhub/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// GithubRepo is the subset of a GitHub repository the API exposes.
type GithubRepo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Stargazers  int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

// GithubService proxies public repository lookups to the GitHub API.
type GithubService struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGithubService returns a GithubService against baseURL. The token is
// optional; when set it raises the unauthenticated rate limit.
func NewGithubService(baseURL, token string) *GithubService {
	return &GithubService{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Repos returns the user's five oldest public repositories. Results are
// cached; any upstream failure, including an unknown username, maps to a
// single upstream error so GitHub's status codes never leak through.
func (s *GithubService) Repos(ctx context.Context, username string) ([]GithubRepo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Github username is required")
	}

	return cache.Aside(ctx, cache.GithubReposKey(username), cache.GithubReposTTL, func() ([]GithubRepo, error) {
		return s.fetchRepos(ctx, username)
	})
}

func (s *GithubService) fetchRepos(ctx context.Context, username string) ([]GithubRepo, error) {
	ctx, span := observability.StartSpan(ctx, "github.fetch_repos",
		attribute.String("github.username", username))
	defer span.End()

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created&direction=asc",
		s.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devhub-api")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		observability.GithubProxyRequests.WithLabelValues("network_error").Inc()
		observability.RecordErrorInContext(ctx, err)
		return nil, models.NewUpstreamError("No Github profile found")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("github.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		observability.GithubProxyRequests.WithLabelValues("upstream_error").Inc()
		return nil, models.NewUpstreamError("No Github profile found")
	}

	var repos []GithubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		observability.GithubProxyRequests.WithLabelValues("decode_error").Inc()
		observability.RecordErrorInContext(ctx, err)
		return nil, models.NewUpstreamError("No Github profile found")
	}

	span.SetAttributes(attribute.Int("github.repo_count", len(repos)))
	observability.GithubProxyRequests.WithLabelValues("ok").Inc()
	return repos, nil
}
