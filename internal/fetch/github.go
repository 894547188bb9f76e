package fetch

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/osspulse/osspulse/internal/models"
)

// ErrNotFound indicates the GitHub API has no such repository or user.
var ErrNotFound = errors.New("resource not found")

const defaultGitHubBaseURL = "https://api.github.com"

// GitHubClient wraps the GitHub API for repository and user profiles.
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a GitHub client. An empty token yields an
// unauthenticated client with lower rate limits. A non-default baseURL
// (e.g. a GitHub Enterprise instance) is applied when given.
func NewGitHubClient(baseURL, token string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)

	if baseURL != "" && baseURL != defaultGitHubBaseURL {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, err
		}
	}

	return &GitHubClient{client: client}, nil
}

// RepoInfo fetches a repository profile together with its language
// breakdown and top contributors.
func (g *GitHubClient) RepoInfo(ctx context.Context, owner, repo string) (*models.RepoInfoResponse, error) {
	r, resp, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, mapGitHubError(resp, err)
	}

	info := &models.RepoInfoResponse{
		Repository: owner + "/" + repo,
		BasicInfo: models.RepoBasicInfo{
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			URL:         r.GetHTMLURL(),
			CreatedAt:   formatTimestamp(r.GetCreatedAt()),
			UpdatedAt:   formatTimestamp(r.GetUpdatedAt()),
			PushedAt:    formatTimestamp(r.GetPushedAt()),
			Language:    r.GetLanguage(),
			License:     r.GetLicense().GetName(),
			Archived:    r.GetArchived(),
			Disabled:    r.GetDisabled(),
		},
		Stats: models.RepoStats{
			Stars:      r.GetStargazersCount(),
			Forks:      r.GetForksCount(),
			Watchers:   r.GetSubscribersCount(),
			OpenIssues: r.GetOpenIssuesCount(),
			Size:       r.GetSize(),
		},
	}

	// Languages and contributors are best-effort; a partial profile beats
	// an error for repos with disabled features.
	if languages, _, err := g.client.Repositories.ListLanguages(ctx, owner, repo); err == nil {
		info.Languages = buildLanguages(languages)
	}

	contributors, _, err := g.client.Repositories.ListContributors(ctx, owner, repo, &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: 10},
	})
	if err == nil {
		info.Contributors = buildContributors(contributors)
	}

	return info, nil
}

// User fetches a GitHub user profile.
func (g *GitHubClient) User(ctx context.Context, username string) (*models.DeveloperInfo, error) {
	u, resp, err := g.client.Users.Get(ctx, username)
	if err != nil {
		return nil, mapGitHubError(resp, err)
	}

	return &models.DeveloperInfo{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		Blog:        u.GetBlog(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   formatTimestamp(u.GetCreatedAt()),
	}, nil
}

// UserRepos lists a user's most recently updated repositories.
func (g *GitHubClient) UserRepos(ctx context.Context, username string, limit int) ([]models.DeveloperRepo, error) {
	if limit <= 0 {
		limit = 5
	}

	repos, resp, err := g.client.Repositories.ListByUser(ctx, username, &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, mapGitHubError(resp, err)
	}

	result := make([]models.DeveloperRepo, 0, len(repos))
	for _, r := range repos {
		result = append(result, models.DeveloperRepo{
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			URL:         r.GetHTMLURL(),
			UpdatedAt:   formatTimestamp(r.GetUpdatedAt()),
		})
	}

	return result, nil
}

func buildLanguages(languages map[string]int) models.RepoLanguages {
	total := 0
	for _, bytes := range languages {
		total += bytes
	}

	details := make([]models.LanguageDetail, 0, len(languages))
	for language, bytes := range languages {
		pct := 0.0
		if total > 0 {
			pct = float64(bytes) / float64(total) * 100
		}
		details = append(details, models.LanguageDetail{
			Language:   language,
			Bytes:      bytes,
			Percentage: pct,
		})
	}

	sortLanguages(details)

	return models.RepoLanguages{
		Count:      len(details),
		TotalBytes: total,
		Details:    details,
	}
}

func buildContributors(contributors []*github.Contributor) models.RepoContributors {
	top := make([]models.ContributorInfo, 0, len(contributors))
	for _, c := range contributors {
		top = append(top, models.ContributorInfo{
			Username:      c.GetLogin(),
			Contributions: c.GetContributions(),
			AvatarURL:     c.GetAvatarURL(),
			URL:           c.GetHTMLURL(),
		})
	}

	return models.RepoContributors{
		Count:           len(top),
		TopContributors: top,
	}
}

// sortLanguages orders by byte count, largest first, name breaking ties.
func sortLanguages(details []models.LanguageDetail) {
	sort.Slice(details, func(i, j int) bool {
		if details[i].Bytes != details[j].Bytes {
			return details[i].Bytes > details[j].Bytes
		}
		return details[i].Language < details[j].Language
	})
}

func mapGitHubError(resp *github.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

func formatTimestamp(ts github.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
