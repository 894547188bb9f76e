package services

import (
	"context"
	"strings"

	"github.com/osspulse/osspulse/internal/analytics"
	"github.com/osspulse/osspulse/internal/models"
)

// MetricSource fetches metric series from the metrics data service.
// *fetch.OpenDiggerClient satisfies it.
type MetricSource interface {
	RepoMetric(ctx context.Context, owner, repo, metric string) (analytics.MetricSeries, error)
	RepoMetrics(ctx context.Context, owner, repo string, metrics []string, start, end string) (map[string]analytics.MetricSeries, error)
	DeveloperMetrics(ctx context.Context, username string, metrics []string) (map[string]analytics.MetricSeries, error)
}

// ProfileSource fetches repository and user profiles. *fetch.GitHubClient
// satisfies it.
type ProfileSource interface {
	RepoInfo(ctx context.Context, owner, repo string) (*models.RepoInfoResponse, error)
	User(ctx context.Context, username string) (*models.DeveloperInfo, error)
	UserRepos(ctx context.Context, username string, limit int) ([]models.DeveloperRepo, error)
}

// splitRepo splits "owner/name" into its parts. Callers validate the format
// first, so a malformed value yields empty strings.
func splitRepo(repository string) (owner, name string) {
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
