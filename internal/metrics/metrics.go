package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"trendboard/internal/corpus"
)

// Query outcome labels
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	recordsDesc = prometheus.NewDesc(
		"trendboard_dataset_records",
		"Records in the loaded dataset by category",
		[]string{"category"},
		nil,
	)
	filesDesc = prometheus.NewDesc(
		"trendboard_dataset_files",
		"Files that contributed records to the loaded dataset",
		nil,
		nil,
	)
	warningsDesc = prometheus.NewDesc(
		"trendboard_dataset_load_warnings",
		"Files or folders skipped while loading the dataset",
		nil,
		nil,
	)
	loadedAtDesc = prometheus.NewDesc(
		"trendboard_dataset_loaded_timestamp_seconds",
		"Unix time the dataset was built",
		nil,
		nil,
	)

	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendboard_queries_total",
			Help: "Dashboard and API queries by outcome",
		},
		[]string{"outcome"},
	)
)

// DatasetCollector is a custom Prometheus collector that reports on the cached
// dataset for a root on each scrape. It never triggers a load.
type DatasetCollector struct {
	corpus *corpus.Corpus
	root   string
}

// NewDatasetCollector creates a collector for root.
func NewDatasetCollector(c *corpus.Corpus, root string) *DatasetCollector {
	return &DatasetCollector{corpus: c, root: root}
}

// Describe sends the metric descriptors to the channel.
func (c *DatasetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
	ch <- filesDesc
	ch <- warningsDesc
	ch <- loadedAtDesc
}

// Collect emits gauges for the cached dataset, or nothing if none is loaded.
func (c *DatasetCollector) Collect(ch chan<- prometheus.Metric) {
	ds, ok := c.corpus.Cached(c.root)
	if !ok {
		return
	}

	byCategory := make(map[string]int)
	for _, r := range ds.Records {
		byCategory[r.Category]++
	}
	for category, n := range byCategory {
		ch <- prometheus.MustNewConstMetric(recordsDesc, prometheus.GaugeValue, float64(n), category)
	}
	ch <- prometheus.MustNewConstMetric(filesDesc, prometheus.GaugeValue, float64(ds.Files))
	ch <- prometheus.MustNewConstMetric(warningsDesc, prometheus.GaugeValue, float64(len(ds.Warnings)))
	ch <- prometheus.MustNewConstMetric(loadedAtDesc, prometheus.GaugeValue, float64(ds.LoadedAt.Unix()))
}

var initOnce sync.Once

// Init registers the dataset collector and the query counter.
// Must be called once at startup.
func Init(c *corpus.Corpus, root string) {
	initOnce.Do(func() {
		prometheus.MustRegister(NewDatasetCollector(c, root), queriesTotal)
	})
}

// RecordQuery counts a query by outcome.
func RecordQuery(outcome string) {
	queriesTotal.WithLabelValues(outcome).Inc()
}
