package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

type (
	RequestStat struct {
		mtx       sync.Mutex
		hist      *hdrhistogram.Histogram
		total     time.Duration
		numErrors int64
	}

	StatsData struct {
		throughput  float32
		avgLatency  time.Duration
		minLatency  time.Duration
		maxLatency  time.Duration
		p50Latency  time.Duration
		p95Latency  time.Duration
		p99Latency  time.Duration
		numRequests int64
		numErrors   int64
	}
)

func (s *RequestStat) Init() {
	s.hist = hdrhistogram.New(1, int64(time.Minute), 3)
}

func (s *RequestStat) Put(tm time.Duration, err error) {
	s.mtx.Lock()
	if s.hist == nil {
		s.Init()
	}
	s.hist.RecordValues(int64(tm), 1)
	s.total += tm
	if err != nil {
		s.numErrors++
	}
	s.mtx.Unlock()
}

func (s *RequestStat) GetStats() (stat StatsData) {
	s.mtx.Lock()
	if s.hist == nil {
		s.Init()
	}
	stat.numRequests = s.hist.TotalCount()
	stat.numErrors = s.numErrors
	stat.minLatency = time.Duration(s.hist.Min())
	stat.maxLatency = time.Duration(s.hist.Max())
	stat.p50Latency = time.Duration(s.hist.ValueAtQuantile(50.))
	stat.p95Latency = time.Duration(s.hist.ValueAtQuantile(95.))
	stat.p99Latency = time.Duration(s.hist.ValueAtQuantile(99.))
	total := s.total
	s.mtx.Unlock()

	if stat.numRequests != 0 {
		v := float32(total) / float32(stat.numRequests)
		stat.avgLatency = time.Duration(v)
		stat.throughput = 1.0e9 / v
	}
	return
}

func (s *RequestStat) PrettyPrint(w io.Writer, name string) {
	stat := s.GetStats()
	fmt.Fprintf(w, "%-12s count: %d  errors: %d\n", name, stat.numRequests, stat.numErrors)
	fmt.Fprintf(w, "  throughput: %.0f/s\n", stat.throughput)
	fmt.Fprintf(w, "  latency avg: %v  min: %v  max: %v\n", stat.avgLatency, stat.minLatency, stat.maxLatency)
	fmt.Fprintf(w, "  p50: %v  p95: %v  p99: %v\n", stat.p50Latency, stat.p95Latency, stat.p99Latency)
}
