package observability

import (
	"testing"
	"time"

	"github.com/danmuck/vtcab/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordSDLCFrame("cab-a", 3, true)
	RecordSDLCFrame("cab-a", 0x42, false)
	RecordSDLCIOError("cab-a", "read")
	RecordWiringTick("cab-a", 150*time.Microsecond)
	RecordHTTPRequest("cab-a", "GET", "/health", 200, 12*time.Millisecond)
}
