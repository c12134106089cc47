package catalogfeed

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/infra/provider"
)

const (
	testBaseURL  = "https://catalog.example.com"
	testEndpoint = testBaseURL + Endpoint
)

func newTestClient() *Client {
	cfg := provider.ClientConfig{
		BaseURL: testBaseURL,
		Timeout: 5 * time.Second,
		Retry: provider.RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: provider.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockCatalog() Response {
	return Response{
		Products: []Product{
			{
				ID:           1,
				Title:        "Swedish Massage",
				ShortDesc:    "Relaxing full body session",
				LongDesc:     "Ninety minutes of long strokes.",
				Category:     "Massage",
				Location:     "Mumbai",
				Price:        45,
				PriceType:    "session",
				AgeMin:       domain.IntPtr(21),
				AgeMax:       domain.IntPtr(60),
				Gender:       "Female",
				Tags:         []string{"massage", "relax"},
				SafetyBadges: []string{"Verified", "Licensed"},
				Images: Images{
					Thumbnail: "https://img.example.com/1-thumb.jpg",
					Gallery:   []string{"https://img.example.com/1-thumb.jpg", "https://img.example.com/1-a.jpg"},
				},
				Featured:  true,
				CreatedAt: "2024-05-01T09:00:00Z",
			},
			{
				ID:        2,
				Title:     "Corporate Chair Massage",
				ShortDesc: "At your office",
				Price:     30,
				Tags:      []string{"corporate"},
			},
		},
	}
}

func TestCatalogFeed_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockCatalog()))

	client := newTestClient()
	listings, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, Name, first.Source)
	assert.Equal(t, "1", first.ExternalID)
	assert.Equal(t, "Swedish Massage", first.Title)
	assert.Equal(t, "Relaxing full body session", first.Description)
	assert.Equal(t, "Ninety minutes of long strokes.", first.LongDescription)
	assert.Equal(t, "female", first.Gender)
	assert.Equal(t, domain.ListingStatusApproved, first.Status)
	require.NotNil(t, first.AgeMin)
	assert.Equal(t, 21, *first.AgeMin)
	assert.Equal(t, []string{"https://img.example.com/1-thumb.jpg", "https://img.example.com/1-a.jpg"}, first.Images)
	assert.True(t, first.Featured)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), first.CreatedAt)

	// absent optional fields stay absent so defaults apply downstream
	second := listings[1]
	assert.Nil(t, second.AgeMin)
	assert.Nil(t, second.AgeMax)
	assert.True(t, second.CreatedAt.IsZero())
	minAge, maxAge := second.AgeRange()
	assert.Equal(t, 18, minAge)
	assert.Equal(t, 65, maxAge)
}

func TestCatalogFeed_Fetch_SkipsIncompleteProducts(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := Response{Products: []Product{
		{ID: 0, Title: "No ID"},
		{ID: 7, Title: "   "},
		{ID: 8, Title: "Kept"},
	}}
	httpmock.RegisterResponder("GET", testEndpoint, httpmock.NewJsonResponderOrPanic(200, resp))

	listings, err := newTestClient().Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "8", listings[0].ExternalID)
}

func TestCatalogFeed_Fetch_EmptyResponse(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, Response{Products: []Product{}}))

	listings, err := newTestClient().Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestCatalogFeed_Fetch_HTTPError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"404 Not Found", 404},
		{"429 Too Many Requests", 429},
		{"503 Service Unavailable", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			listings, err := newTestClient().Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, listings)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

func TestCatalogFeed_Fetch_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")))

	listings, err := newTestClient().Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, listings)
	assert.Contains(t, err.Error(), "fetching from catalog feed")
}

func TestCatalogFeed_Retry_RecoversFromServerErrors(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				return httpmock.NewStringResponse(500, "Server Error"), nil
			}
			return httpmock.NewJsonResponse(200, mockCatalog())
		})

	listings, err := newTestClient().Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, 3, callCount)
}

func TestCatalogFeed_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	start := time.Now()
	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, time.Since(start).Milliseconds(), int64(100))
}

func TestCatalogFeed_HealthCheck(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	httpmock.RegisterResponder("GET", testBaseURL+provider.HealthPath, httpmock.NewStringResponder(200, "ok"))
	assert.NoError(t, client.HealthCheck(context.Background()))

	httpmock.Reset()
	httpmock.RegisterResponder("GET", testBaseURL+provider.HealthPath, httpmock.NewStringResponder(404, "missing"))
	assert.Error(t, client.HealthCheck(context.Background()))
}
