package parser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var gotContentType, gotAPIKey string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get("apikey")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Jane Doe",
			"email": "jane@example.com",
			"phone": "+1 555 0100",
			"skills": ["Go", "SQL"],
			"education": [{"name": "State University", "dates": ["2015", "2019"]}],
			"experience": [{"name": "Acme Corp", "dates": ["2019", "2023"]}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	result, err := client.Parse(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, []byte("%PDF-1.4 fake"), gotBody)

	assert.Equal(t, "Jane Doe", result.Name)
	assert.Equal(t, "jane@example.com", result.Email)
	assert.Equal(t, []string{"Go", "SQL"}, result.Skills)
	assert.NotEmpty(t, result.Raw)
}

func TestParseNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	result, err := client.Parse(context.Background(), []byte("content"))
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "429")
}

func TestParseBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	_, err := client.Parse(context.Background(), []byte("content"))
	assert.Error(t, err)
}

func TestParseContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Parse(ctx, []byte("content"))
	assert.Error(t, err)
}

func TestFlattenHelpers(t *testing.T) {
	r := &Result{
		Skills: []string{"Go", "SQL", "Kubernetes"},
		Education: []Entry{
			{Name: "State University", Dates: []string{"2015", "2019"}},
			{Name: ""},
		},
		Experience: []Entry{
			{Name: "Acme Corp", Dates: []string{"2019", "2023"}},
			{Name: "Globex"},
		},
	}

	assert.Equal(t, "Go, SQL, Kubernetes", r.FlattenSkills())
	assert.Equal(t, "State University", r.FlattenEducation())
	assert.Equal(t, "Acme Corp (2019 - 2023), Globex (N/A)", r.FlattenExperience())

	empty := &Result{}
	assert.Equal(t, "", empty.FlattenSkills())
	assert.Equal(t, "", empty.FlattenEducation())
	assert.Equal(t, "", empty.FlattenExperience())
}
