package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}

	return gateway, server
}

func TestNewGitHubGateway(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	t.Run("default endpoints", func(t *testing.T) {
		fetcher, err := NewGitHubGateway("token", Endpoints{}, logger)
		require.NoError(t, err)
		gw, ok := fetcher.(*GitHubGateway)
		require.True(t, ok)
		assert.Equal(t, "https://api.github.com/", gw.restClient.BaseURL.String())
	})

	t.Run("enterprise endpoints", func(t *testing.T) {
		fetcher, err := NewGitHubGateway("token", Endpoints{
			APIURL:     "https://ghe.example.com/api/v3/",
			GraphQLURL: "https://ghe.example.com/api/graphql",
		}, logger)
		require.NoError(t, err)
		gw, ok := fetcher.(*GitHubGateway)
		require.True(t, ok)
		assert.Equal(t, "https://ghe.example.com/api/v3/", gw.restClient.BaseURL.String())
	})
}

func TestGitHubGateway_FetchUser(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       *UserProfile
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - successfully fetches the profile",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octocat", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"login": "octocat", "name": "The Octocat", "created_at": "2011-01-25T18:44:36Z"}`)
			},
			expected: &UserProfile{
				Login:     "octocat",
				Name:      "The Octocat",
				CreatedAt: time.Date(2011, time.January, 25, 18, 44, 36, 0, time.UTC),
			},
		},
		{
			name: "error case - user does not exist",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to get user octocat with REST API",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()
			profile, err := gateway.FetchUser(context.Background(), "octocat")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected.Login, profile.Login)
				assert.Equal(t, tc.expected.Name, profile.Name)
				assert.True(t, tc.expected.CreatedAt.Equal(profile.CreatedAt))
			}
		})
	}
}

func TestGitHubGateway_FetchContributionCalendar(t *testing.T) {
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)

	testCases := []struct {
		name           string
		responseBody   string
		expected       *ContributionCalendar
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - flattens weeks into days",
			responseBody: `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{"totalContributions":5,"weeks":[` +
				`{"contributionDays":[{"contributionCount":0,"date":"2026-01-01"},{"contributionCount":2,"date":"2026-01-02"}]},` +
				`{"contributionDays":[{"contributionCount":3,"date":"2026-01-03"}]}]}}}}}`,
			expected: &ContributionCalendar{
				TotalContributions: 5,
				Days: []domain.ContributionRecord{
					{Date: "2026-01-01", Count: 0},
					{Date: "2026-01-02", Count: 2},
					{Date: "2026-01-03", Count: 3},
				},
			},
		},
		{
			name:         "empty calendar",
			responseBody: `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{"totalContributions":0,"weeks":[]}}}}}`,
			expected:     &ContributionCalendar{},
		},
		{
			name:           "error case - GraphQL returns errors",
			responseBody:   `{"errors":[{"message":"Could not resolve to a User with the login of 'ghost'."}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for contribution calendar",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)

				assert.Contains(t, string(body), "contributionsCollection(from: $from, to: $to)")
				assert.Contains(t, string(body), `"login":"octocat"`)
				assert.Contains(t, string(body), `"from":"2026-01-01T00:00:00Z"`)

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			calendar, err := gateway.FetchContributionCalendar(context.Background(), "octocat", from, to)

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, calendar)
			}
		})
	}
}
