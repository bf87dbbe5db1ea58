// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// UserProfile holds the account details needed to bound the contribution history.
type UserProfile struct {
	Login     string
	Name      string
	CreatedAt time.Time
}

// ContributionCalendar is the daily contribution history of one time window.
// Days includes days without contributions.
type ContributionCalendar struct {
	TotalContributions int
	Days               []domain.ContributionRecord
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, login string) (*UserProfile, error)
	FetchContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionCalendar, error)
}

// Endpoints overrides the public GitHub API endpoints, e.g. for GitHub Enterprise Server.
// Empty fields keep the github.com defaults.
type Endpoints struct {
	APIURL     string
	GraphQLURL string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// contributionCalendarQuery fetches the contribution calendar for a window of at most one year.
type contributionCalendarQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions int
				Weeks              []struct {
					ContributionDays []struct {
						ContributionCount int
						Date              string
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, endpoints Endpoints, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	if endpoints.APIURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(endpoints.APIURL, endpoints.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure REST API URL: %w", err)
		}
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if endpoints.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(endpoints.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// FetchUser looks up the user's public profile using the REST API.
func (g *GitHubGateway) FetchUser(ctx context.Context, login string) (*UserProfile, error) {
	g.logger.Printf("Fetching profile of %s using REST API...\n", login)
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s with REST API: %w", login, err)
	}
	return &UserProfile{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		CreatedAt: user.GetCreatedAt().Time,
	}, nil
}

// FetchContributionCalendar fetches daily contribution counts between from and to.
// GitHub rejects windows longer than one year.
func (g *GitHubGateway) FetchContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionCalendar, error) {
	g.logger.Printf("  Fetching contribution calendar %s..%s...\n", from.Format(time.DateOnly), to.Format(time.DateOnly))
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	var q contributionCalendarQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for contribution calendar: %w", err)
	}

	calendar := q.User.ContributionsCollection.ContributionCalendar
	result := &ContributionCalendar{TotalContributions: calendar.TotalContributions}
	for _, week := range calendar.Weeks {
		for _, d := range week.ContributionDays {
			result.Days = append(result.Days, domain.ContributionRecord{
				Date:  d.Date,
				Count: d.ContributionCount,
			})
		}
	}
	g.logger.Printf("  Completed %s..%s: %d contributions.\n", from.Format(time.DateOnly), to.Format(time.DateOnly), result.TotalContributions)
	return result, nil
}
