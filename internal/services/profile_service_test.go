package services

import (
	"context"
	"testing"

	"github.com/osspulse/osspulse/internal/analytics"
	"github.com/osspulse/osspulse/internal/fetch"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
)

// fakeProfileSource serves canned profiles.
type fakeProfileSource struct {
	repos map[string]*models.RepoInfoResponse
	users map[string]*models.DeveloperInfo
	err   error
}

func (f *fakeProfileSource) RepoInfo(_ context.Context, owner, repo string) (*models.RepoInfoResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	info, ok := f.repos[owner+"/"+repo]
	if !ok {
		return nil, fetch.ErrNotFound
	}
	return info, nil
}

func (f *fakeProfileSource) User(_ context.Context, username string) (*models.DeveloperInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, fetch.ErrNotFound
	}
	return user, nil
}

func (f *fakeProfileSource) UserRepos(_ context.Context, username string, limit int) ([]models.DeveloperRepo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.DeveloperRepo{{Name: "demo", Stars: 1}}, nil
}

func TestRepoInfoSuccess(t *testing.T) {
	profiles := &fakeProfileSource{repos: map[string]*models.RepoInfoResponse{
		"golang/go": {Repository: "golang/go"},
	}}
	svc := NewProfileService(logging.NewDevelopment(), &fakeMetricSource{}, profiles)

	info, err := svc.RepoInfo(context.Background(), "golang", "go")
	if err != nil {
		t.Fatalf("RepoInfo: %v", err)
	}
	if info.Repository != "golang/go" {
		t.Errorf("repository = %s, want golang/go", info.Repository)
	}
}

func TestRepoInfoNotFound(t *testing.T) {
	svc := NewProfileService(logging.NewDevelopment(), &fakeMetricSource{}, &fakeProfileSource{})

	_, err := svc.RepoInfo(context.Background(), "nobody", "nothing")

	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected *ServiceError, got %T", err)
	}
	if svcErr.Code != CodeRepositoryNotFound {
		t.Errorf("code = %s, want %s", svcErr.Code, CodeRepositoryNotFound)
	}
}

func TestDeveloperSuccess(t *testing.T) {
	metrics := &fakeMetricSource{series: map[string]analytics.MetricSeries{
		"torvalds/openrank": {"2023-01": 42},
	}}
	profiles := &fakeProfileSource{users: map[string]*models.DeveloperInfo{
		"torvalds": {Login: "torvalds"},
	}}
	svc := NewProfileService(logging.NewDevelopment(), metrics, profiles)

	resp, err := svc.Developer(context.Background(), "torvalds")
	if err != nil {
		t.Fatalf("Developer: %v", err)
	}

	if resp.UserInfo == nil || resp.UserInfo.Login != "torvalds" {
		t.Errorf("unexpected user info: %+v", resp.UserInfo)
	}
	if resp.Metrics["openrank"]["2023-01"] != 42 {
		t.Errorf("metrics = %+v, want openrank 2023-01 = 42", resp.Metrics)
	}
	if len(resp.RecentRepos) != 1 {
		t.Errorf("recent repos = %+v, want one entry", resp.RecentRepos)
	}
}

func TestDeveloperUserNotFound(t *testing.T) {
	svc := NewProfileService(logging.NewDevelopment(), &fakeMetricSource{}, &fakeProfileSource{})

	_, err := svc.Developer(context.Background(), "ghost")

	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected *ServiceError, got %T", err)
	}
	if svcErr.Code != CodeUserNotFound {
		t.Errorf("code = %s, want %s", svcErr.Code, CodeUserNotFound)
	}
}

func TestDeveloperInvalidUsername(t *testing.T) {
	svc := NewProfileService(logging.NewDevelopment(), &fakeMetricSource{}, &fakeProfileSource{})

	_, err := svc.Developer(context.Background(), "-bad-")

	svcErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("Expected *ServiceError, got %T", err)
	}
	if svcErr.Code != CodeInvalidRequest {
		t.Errorf("code = %s, want %s", svcErr.Code, CodeInvalidRequest)
	}
}
