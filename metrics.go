package kbucket

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors updated by a KBucket.
// A nil *Metrics records nothing.
type Metrics struct {
	Added    prometheus.Counter
	Updated  prometheus.Counter
	Removed  prometheus.Counter
	Pings    prometheus.Counter
	Splits   prometheus.Counter
	Contacts prometheus.Gauge
}

// NewMetrics creates the KBucket collectors under namespace and registers them
// with reg. A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kbucket",
			Name:      name,
			Help:      help,
		})
	}

	m := &Metrics{
		Added:   counter("added_total", "Contacts stored under a new id."),
		Updated: counter("updated_total", "Contacts replaced or re-touched under an existing id."),
		Removed: counter("removed_total", "Contacts removed."),
		Pings:   counter("ping_total", "Insertions refused because the bucket was full and could not be split."),
		Splits:  counter("splits_total", "Bucket splits."),
		Contacts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "kbucket",
			Name:      "contacts",
			Help:      "Contacts currently stored.",
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.Added, m.Updated, m.Removed, m.Pings, m.Splits, m.Contacts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) added() {
	if m == nil {
		return
	}

	m.Added.Inc()
	m.Contacts.Inc()
}

func (m *Metrics) updated() {
	if m != nil {
		m.Updated.Inc()
	}
}

func (m *Metrics) removed() {
	if m == nil {
		return
	}

	m.Removed.Inc()
	m.Contacts.Dec()
}

func (m *Metrics) ping() {
	if m != nil {
		m.Pings.Inc()
	}
}

func (m *Metrics) split() {
	if m != nil {
		m.Splits.Inc()
	}
}

func (m *Metrics) reset() {
	if m != nil {
		m.Contacts.Set(0)
	}
}
