package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a metric matching the
// given name, partial label pattern and value. The regex tolerates the extra OTel scope
// labels added by the exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordOperation(ctx, "store", "buy", "success")
	bm.RecordOperation(ctx, "store", "buy", "success")
	bm.RecordOperation(ctx, "store", "buy", "error")
	bm.RecordOperation(ctx, "auth", "login", "success")

	bm.RecordDuration(ctx, "store", "buy", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "store", "buy", 60*time.Millisecond, "success")

	bm.RecordDeposit(ctx, 50)
	bm.RecordDeposit(ctx, 50)
	bm.RecordDeposit(ctx, 5)

	bm.RecordPurchase(ctx, 20, 3)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="store".*operation="buy".*status="success"`, `2`)
	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="store".*operation="buy".*status="error"`, `1`)
	assertBizMetricLine(t, output, `integration_test_operations_total`,
		`domain="auth".*operation="login".*status="success"`, `1`)
	assertBizMetricLine(t, output, `integration_test_operation_duration_seconds_count`,
		`domain="store".*operation="buy".*status="success"`, `2`)
	assertBizMetricLine(t, output, `integration_test_coins_deposited_total`,
		`denomination="50"`, `2`)
	assertBizMetricLine(t, output, `integration_test_coins_deposited_total`,
		`denomination="5"`, `1`)
	assert.Contains(t, output, "integration_test_purchase_revenue_total")
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_DoesNotPanic", func(t *testing.T) {
		ctx := context.Background()
		noOpMetrics.RecordOperation(ctx, "store", "buy", "success")
		noOpMetrics.RecordDuration(ctx, "store", "buy", time.Millisecond, "error")
		noOpMetrics.RecordDeposit(ctx, 10)
		noOpMetrics.RecordPurchase(ctx, 20, 2)
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "success", Status(nil))
	assert.Equal(t, "error", Status(errors.New("boom")))
}
