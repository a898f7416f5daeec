package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复调用不会重复注册
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if SummaryGenerationsTotal == nil {
		t.Error("SummaryGenerationsTotal未初始化")
	}
	if RateLimitRejectedTotal == nil {
		t.Error("RateLimitRejectedTotal未初始化")
	}
}

// TestNilSafe 未初始化的指标调用便捷函数不会panic
func TestNilSafe(t *testing.T) {
	var counter prometheus.Counter
	var counterVec *prometheus.CounterVec
	var gauge prometheus.Gauge
	var histogramVec *prometheus.HistogramVec

	IncCounter(counter)
	IncCounterVec(counterVec, map[string]string{"a": "b"})
	IncGauge(gauge)
	DecGauge(gauge)
	ObserveHistogramVec(histogramVec, map[string]string{"a": "b"}, 1)
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, BooksCreatedTotal)

	IncCounter(BooksCreatedTotal)
	IncCounter(BooksCreatedTotal)
	IncCounter(BooksCreatedTotal)

	if got := getCounterValue(t, BooksCreatedTotal) - before; got != 3 {
		t.Errorf("Counter值错误: expected=3, got=%f", got)
	}
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	success := map[string]string{"kind": "book", "result": "success"}
	failure := map[string]string{"kind": "book", "result": "failure"}

	IncCounterVec(SummaryGenerationsTotal, success)
	IncCounterVec(SummaryGenerationsTotal, failure)
	IncCounterVec(SummaryGenerationsTotal, success)

	if value := getCounterVecValue(t, SummaryGenerationsTotal, success); value != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", value)
	}
	if value := getCounterVecValue(t, SummaryGenerationsTotal, failure); value != 1 {
		t.Errorf("CounterVec值错误: expected=1, got=%f", value)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()
	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", value)
	}

	DecGauge(HTTPRequestsInProgress)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", value)
	}

	SetGauge(HTTPRequestsInProgress, 0)
}

// TestGaugeVec 测试GaugeVec指标
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "llm-a"}, 0) // CLOSED
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "llm-b"}, 1) // OPEN

	if value := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "llm-a"}); value != 0 {
		t.Errorf("GaugeVec值错误: expected=0, got=%f", value)
	}
	if value := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "llm-b"}); value != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", value)
	}
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"kind": "reviews"}
	before := getHistogramVecCount(t, SummaryGenerationDuration, labels)

	ObserveHistogramVec(SummaryGenerationDuration, labels, 0.8)
	ObserveHistogramVec(SummaryGenerationDuration, labels, 2.5)
	ObserveHistogramVec(SummaryGenerationDuration, map[string]string{"kind": "text"}, 1)

	if count := getHistogramVecCount(t, SummaryGenerationDuration, labels) - before; count != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", count)
	}
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	gauge := gaugeVec.With(labels)
	if err := gauge.(prometheus.Gauge).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
