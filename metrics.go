package cable

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "vcable"

// Collector exports a cable's Stats as Prometheus metrics. Every scrape
// takes one fresh snapshot.
type Collector struct {
	cable *Cable

	running          *prometheus.Desc
	samplesProcessed *prometheus.Desc
	underruns        *prometheus.Desc
	overruns         *prometheus.Desc
	latency          *prometheus.Desc
	cpuUsage         *prometheus.Desc
	inputPeak        *prometheus.Desc
	inputRMS         *prometheus.Desc
	bufferSamples    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for c. Register it with a
// prometheus.Registerer.
func NewCollector(c *Cable) *Collector {
	labels := prometheus.Labels{"cable": c.ID(), "device": c.cfg.DeviceName}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, variable, labels)
	}

	return &Collector{
		cable:            c,
		running:          desc("running", "Whether the cable is running (1) or stopped (0)."),
		samplesProcessed: desc("samples_processed_total", "Samples delivered to the consumer."),
		underruns:        desc("underruns_total", "Reads that found the output stage empty."),
		overruns:         desc("overruns_total", "Writes that could not stage all input."),
		latency:          desc("latency_seconds", "Resample-stage backlog in seconds."),
		cpuUsage:         desc("cpu_usage_ratio", "Processing time as a fraction of audio time."),
		inputPeak:        desc("input_peak", "Absolute peak of the latest input block."),
		inputRMS:         desc("input_rms", "RMS level of the latest input block."),
		bufferSamples:    desc("buffer_samples", "Samples per buffer stage.", "stage", "state"),
	}
}

// Describe implements prometheus.Collector.
func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- col.running
	ch <- col.samplesProcessed
	ch <- col.underruns
	ch <- col.overruns
	ch <- col.latency
	ch <- col.cpuUsage
	ch <- col.inputPeak
	ch <- col.inputRMS
	ch <- col.bufferSamples
}

// Collect implements prometheus.Collector.
func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	s := col.cable.Stats()

	running := 0.0
	if s.Running {
		running = 1
	}

	ch <- prometheus.MustNewConstMetric(col.running, prometheus.GaugeValue, running)
	ch <- prometheus.MustNewConstMetric(col.samplesProcessed, prometheus.CounterValue, float64(s.SamplesProcessed))
	ch <- prometheus.MustNewConstMetric(col.underruns, prometheus.CounterValue, float64(s.Underruns))
	ch <- prometheus.MustNewConstMetric(col.overruns, prometheus.CounterValue, float64(s.Overruns))
	ch <- prometheus.MustNewConstMetric(col.latency, prometheus.GaugeValue, s.LatencyMillis/millisPerSecond)
	ch <- prometheus.MustNewConstMetric(col.cpuUsage, prometheus.GaugeValue, s.CPUUsage/percent)
	ch <- prometheus.MustNewConstMetric(col.inputPeak, prometheus.GaugeValue, float64(s.InputPeak))
	ch <- prometheus.MustNewConstMetric(col.inputRMS, prometheus.GaugeValue, float64(s.InputRMS))

	stages := []struct {
		name            string
		available, free int
	}{
		{"input", s.Buffers.InputAvailable, s.Buffers.InputFree},
		{"resample", s.Buffers.ResampleAvailable, s.Buffers.ResampleFree},
		{"output", s.Buffers.OutputAvailable, s.Buffers.OutputFree},
	}
	for _, st := range stages {
		ch <- prometheus.MustNewConstMetric(col.bufferSamples, prometheus.GaugeValue, float64(st.available), st.name, "available")
		ch <- prometheus.MustNewConstMetric(col.bufferSamples, prometheus.GaugeValue, float64(st.free), st.name, "free")
	}
}
