package services

import (
	"context"
	"errors"

	"github.com/osspulse/osspulse/internal/fetch"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
	"github.com/osspulse/osspulse/internal/validation"
)

// developerMetrics are the OpenDigger series published per account rather
// than per repository.
var developerMetrics = []string{"openrank", "activity"}

const recentRepoLimit = 5

// ProfileService serves GitHub repository and developer profiles.
type ProfileService struct {
	logger   *logging.Logger
	metrics  MetricSource
	profiles ProfileSource
}

// NewProfileService creates a new ProfileService
func NewProfileService(logger *logging.Logger, metrics MetricSource, profiles ProfileSource) *ProfileService {
	return &ProfileService{
		logger:   logger,
		metrics:  metrics,
		profiles: profiles,
	}
}

// RepoInfo fetches the GitHub profile of one repository.
func (s *ProfileService) RepoInfo(ctx context.Context, owner, repo string) (*models.RepoInfoResponse, error) {
	repository := owner + "/" + repo
	if !validation.RepoName(repository) {
		return nil, NewServiceError(CodeInvalidRequest, "Invalid repository format, expected owner/repo")
	}

	info, err := s.profiles.RepoInfo(ctx, owner, repo)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return nil, NewServiceError(CodeRepositoryNotFound, "Repository not found: "+repository)
		}
		s.logger.Error("Repository profile fetch failed", "repository", repository, "error", err)
		return nil, NewServiceError(CodeUpstreamFailure, "Failed to fetch repository information")
	}

	return info, nil
}

// Developer combines OpenDigger account metrics with the GitHub user
// profile and recent repositories. The GitHub profile must exist; metric
// series and recent repos are best-effort.
func (s *ProfileService) Developer(ctx context.Context, username string) (*models.DeveloperResponse, error) {
	if !validation.Username(username) {
		return nil, NewServiceError(CodeInvalidRequest, "Invalid username format")
	}

	user, err := s.profiles.User(ctx, username)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return nil, NewServiceError(CodeUserNotFound, "User not found: "+username)
		}
		s.logger.Error("User profile fetch failed", "username", username, "error", err)
		return nil, NewServiceError(CodeUpstreamFailure, "Failed to fetch user information")
	}

	resp := &models.DeveloperResponse{
		Developer: username,
		UserInfo:  user,
	}

	series, err := s.metrics.DeveloperMetrics(ctx, username, developerMetrics)
	if err != nil {
		s.logger.Warn("Developer metrics fetch failed", "username", username, "error", err)
		resp.Errors = map[string]string{"metrics": err.Error()}
	} else {
		resp.Metrics = series
	}

	repos, err := s.profiles.UserRepos(ctx, username, recentRepoLimit)
	if err != nil {
		s.logger.Warn("Recent repositories fetch failed", "username", username, "error", err)
	} else {
		resp.RecentRepos = repos
	}

	return resp, nil
}
