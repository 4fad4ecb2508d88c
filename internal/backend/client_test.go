package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/logsearch/internal/mockbackend"
	"github.com/tinytelemetry/logsearch/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMockClient(t *testing.T) (*Client, *mockbackend.Server) {
	t.Helper()
	mock := mockbackend.NewServer("", nil, mockbackend.Options{})
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL), mock
}

func testRange() (model.Timestamp, model.Timestamp) {
	start := time.Date(2024, 3, 24, 17, 53, 44, 0, time.UTC)
	return model.Timestamp(start), model.Timestamp(start.Add(64 * time.Second))
}

func TestDensity_SendsBrowserShapedBody(t *testing.T) {
	t.Parallel()

	var gotBody, gotType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	start, end := testRange()
	series, err := New(srv.URL).Density(context.Background(), model.DensityQuery{Start: start, End: end, Table: "logs"})
	if err != nil {
		t.Fatalf("Density: %v", err)
	}
	if len(series) != 3 || series[2].Value != 3 {
		t.Errorf("series = %+v", series)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	want := `{"start":"2024-03-24T17:53:44.000Z","end":"2024-03-24T17:54:48.000Z","table":"logs"}`
	if gotBody != want {
		t.Errorf("body = %s\nwant %s", gotBody, want)
	}
}

func TestNoAuthHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ListMetrics(context.Background()); err != nil {
		t.Fatalf("ListMetrics: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none", gotAuth)
	}
}

func TestAgainstMockBackend(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	ctx := context.Background()
	start, end := testRange()

	h, err := c.Health(ctx)
	if err != nil || h.Status != "success" {
		t.Fatalf("Health = %+v, %v", h, err)
	}

	views, err := c.ListViews(ctx)
	if err != nil {
		t.Fatalf("ListViews: %v", err)
	}
	if len(views) != 2 || views[1].Name != "logs" || views[1].Cols[0].Agg != "max" {
		t.Errorf("views = %+v", views)
	}

	metrics, err := c.ListMetrics(ctx)
	if err != nil || len(metrics) != 3 {
		t.Fatalf("ListMetrics = %v, %v", metrics, err)
	}

	density, err := c.Density(ctx, model.DensityQuery{Start: start, End: end, Table: "logs"})
	if err != nil || len(density) != model.DefaultDensityBuckets {
		t.Fatalf("Density = %d buckets, %v", len(density), err)
	}

	series, err := c.Metric(ctx, model.MetricQuery{Start: start, End: end, MetricName: "Data", ViewName: "logs"})
	if err != nil {
		t.Fatalf("Metric: %v", err)
	}
	if series[6].Valid {
		t.Error("bucket 6 should decode as a gap")
	}

	logs, err := c.Logs(ctx, model.LogQuery{Start: start, End: end, Table: "logs"})
	if err != nil || len(logs) != model.DefaultLogPageSize {
		t.Fatalf("Logs = %d rows, %v", len(logs), err)
	}

	if mock.Calls(PathDensity) != 1 || mock.Calls(PathMetric) != 1 || mock.Calls(PathLogs) != 1 {
		t.Errorf("unexpected call counts: density=%d metric=%d logs=%d",
			mock.Calls(PathDensity), mock.Calls(PathMetric), mock.Calls(PathLogs))
	}
}

func TestCreateAndDeleteView(t *testing.T) {
	t.Parallel()

	c, _ := newMockClient(t)
	ctx := context.Background()

	def := model.ViewDefinition{
		Columns: []model.ColumnDefinition{{Name: "test_col", Query: "logdata", MetricAgg: "max"}},
		Filter:  model.FilterDefinition{Name: "test view", Query: "true"},
	}
	if err := c.CreateView(ctx, def); err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	views, _ := c.ListViews(ctx)
	if len(views) != 3 {
		t.Fatalf("views after create = %d, want 3", len(views))
	}

	if err := c.DeleteView(ctx, "test view"); err != nil {
		t.Fatalf("DeleteView: %v", err)
	}
	views, _ = c.ListViews(ctx)
	if len(views) != 2 {
		t.Errorf("views after delete = %d, want 2", len(views))
	}
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	start, end := testRange()
	_, err := New(srv.URL).Logs(context.Background(), model.LogQuery{Start: start, End: end, Table: "logs"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if len(apiErr.Body) != 512 {
		t.Errorf("body length = %d, want 512", len(apiErr.Body))
	}
}

func TestParseFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	start, end := testRange()
	_, err := New(srv.URL).Density(context.Background(), model.DensityQuery{Start: start, End: end})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("decode failure should not be an APIError: %v", err)
	}
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := New(url).ListViews(context.Background()); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	if _, err := c.ListMetrics(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	if got := New("http://localhost:8000/").BaseURL(); got != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q", got)
	}
}
