package statistics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	namespace = "turbine2go"
)

func Register(registerer prometheus.Registerer, collector prometheus.Collector) {
	registerer.MustRegister(collector)
}

// WriteText writes all metrics of the given gatherer in the prometheus text format
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}
