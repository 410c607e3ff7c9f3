package statistics

import (
	"github.com/markusressel/turbine2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const turbineSubsystem = "turbine"

type TurbineCollector struct {
	controllers []*controller.SpeedController

	rpm               *prometheus.Desc
	targetRpm         *prometheus.Desc
	valvePosition     *prometheus.Desc
	operational       *prometheus.Desc
	sensorOperational *prometheus.Desc

	adjustmentCount            *prometheus.Desc
	avgAdjustment              *prometheus.Desc
	rejectedMeasurementCount   *prometheus.Desc
	faultCount                 *prometheus.Desc
	preconditionViolationCount *prometheus.Desc
}

func NewTurbineCollector(controllers []*controller.SpeedController) *TurbineCollector {
	return &TurbineCollector{
		controllers: controllers,
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "rpm"),
			"Speed of the turbine used by the last regulation step",
			[]string{"id"}, nil,
		),
		targetRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "target_rpm"),
			"Configured target speed of the turbine",
			[]string{"id"}, nil,
		),
		valvePosition: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "valve_position"),
			"Current valve opening as a fraction between 0 and 1",
			[]string{"id"}, nil,
		),
		operational: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "operational"),
			"1 if both sensors of the turbine are healthy, 0 otherwise",
			[]string{"id"}, nil,
		),
		sensorOperational: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "sensor_operational"),
			"1 if the sensor was healthy at the last health check, 0 otherwise",
			[]string{"id", "sensor"}, nil,
		),
		adjustmentCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "valve_adjustment_count"),
			"Number of regulation steps that changed the valve position",
			[]string{"id"}, nil,
		),
		avgAdjustment: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "valve_adjustment_avg"),
			"Average absolute valve change of all adjustments, as a fraction",
			[]string{"id"}, nil,
		),
		rejectedMeasurementCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "rejected_measurement_count"),
			"Number of speed measurements rejected because they were out of range",
			[]string{"id"}, nil,
		),
		faultCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "fault_count"),
			"Number of transitions into the faulted state",
			[]string{"id"}, nil,
		),
		preconditionViolationCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, turbineSubsystem, "precondition_violation_count"),
			"Number of rejected operations due to a violated precondition",
			[]string{"id"}, nil,
		),
	}
}

func (collector *TurbineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rpm
	ch <- collector.targetRpm
	ch <- collector.valvePosition
	ch <- collector.operational
	ch <- collector.sensorOperational
	ch <- collector.adjustmentCount
	ch <- collector.avgAdjustment
	ch <- collector.rejectedMeasurementCount
	ch <- collector.faultCount
	ch <- collector.preconditionViolationCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *TurbineCollector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range collector.controllers {
		id := c.GetId()
		stats := c.GetStatistics()

		ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, c.CurrentRpm(), id)
		ch <- prometheus.MustNewConstMetric(collector.targetRpm, prometheus.GaugeValue, c.GetConfig().TargetRpm, id)
		ch <- prometheus.MustNewConstMetric(collector.valvePosition, prometheus.GaugeValue, c.ValvePosition(), id)
		ch <- prometheus.MustNewConstMetric(collector.operational, prometheus.GaugeValue, boolToFloat(c.IsOperational()), id)
		ch <- prometheus.MustNewConstMetric(collector.sensorOperational, prometheus.GaugeValue, boolToFloat(c.RpmSensorStatus()), id, "rpm")
		ch <- prometheus.MustNewConstMetric(collector.sensorOperational, prometheus.GaugeValue, boolToFloat(c.ValvePositionSensorStatus()), id, "valve")
		ch <- prometheus.MustNewConstMetric(collector.adjustmentCount, prometheus.CounterValue, float64(stats.AdjustmentCount), id)
		ch <- prometheus.MustNewConstMetric(collector.avgAdjustment, prometheus.GaugeValue, stats.AvgAdjustment, id)
		ch <- prometheus.MustNewConstMetric(collector.rejectedMeasurementCount, prometheus.CounterValue, float64(stats.RejectedMeasurementCount), id)
		ch <- prometheus.MustNewConstMetric(collector.faultCount, prometheus.CounterValue, float64(stats.FaultCount), id)
		ch <- prometheus.MustNewConstMetric(collector.preconditionViolationCount, prometheus.CounterValue, float64(stats.PreconditionViolationCount), id)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
