package chatmsg

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	channelRich      = "rich"
	channelPlain     = "plain"
	channelBroadcast = "broadcast"
)

// Metrics counts host calls made by a Dispatcher. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	sent     *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatmsg",
			Name:      "messages_sent_total",
			Help:      "Host calls that delivered a message, by channel.",
		}, []string{"channel"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatmsg",
			Name:      "dispatch_failures_total",
			Help:      "Host calls that returned an error, by channel.",
		}, []string{"channel"}),
	}
	if reg != nil {
		reg.MustRegister(m.sent, m.failures)
	}
	return m
}

func (m *Metrics) observe(channel string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failures.WithLabelValues(channel).Inc()
		return
	}
	m.sent.WithLabelValues(channel).Inc()
}
