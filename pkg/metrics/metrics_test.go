package metrics

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Websocket connections live on their own gauge. The HTTP in-flight gauge
// tracks requests only, so a long-lived socket must not move it.
func TestWebsocketGaugeIsIndependentOfHTTPConnections(t *testing.T) {
	RegisterTestingT(t)

	m := NewAppMetrics(prometheus.NewRegistry())

	m.IncrementWebsocketClients()
	m.IncrementWebsocketClients()
	m.DecrementWebsocketClients()

	Expect(testutil.ToFloat64(m.websocketClients)).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.activeConnections)).To(Equal(0.0))

	m.IncrementActiveConnections()

	Expect(testutil.ToFloat64(m.activeConnections)).To(Equal(1.0))
	Expect(testutil.ToFloat64(m.websocketClients)).To(Equal(1.0))
}
