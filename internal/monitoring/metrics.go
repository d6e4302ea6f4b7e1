package monitoring

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics holds application metrics
type Metrics struct {
	RequestCount        int64
	ErrorCount          int64
	CacheHits           int64
	CacheMisses         int64
	ComparisonCount     int64
	LLMAPICalls         int64
	LLMFallbacks        int64
	RateLimitBlocks     int64
	AverageResponseTime int64 // in nanoseconds
	StartTime           time.Time

	// Status code tracking
	RequestCountByStatus map[int]int64
	StatusMutex          sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		RequestCountByStatus: make(map[int]int64),
	}
}

// IncrementRequest increments the request count
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// IncrementComparison increments the comparison count
func (m *Metrics) IncrementComparison() {
	atomic.AddInt64(&m.ComparisonCount, 1)
}

// IncrementLLMCalls increments the LLM API call count
func (m *Metrics) IncrementLLMCalls() {
	atomic.AddInt64(&m.LLMAPICalls, 1)
}

// IncrementLLMFallbacks counts comparisons served by the deterministic
// engine because the LLM analyzer was unavailable or failed
func (m *Metrics) IncrementLLMFallbacks() {
	atomic.AddInt64(&m.LLMFallbacks, 1)
}

// IncrementRateLimitBlocks increments the rate limit block count
func (m *Metrics) IncrementRateLimitBlocks() {
	atomic.AddInt64(&m.RateLimitBlocks, 1)
}

// RecordResponseTime records response time for averaging
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	current := atomic.LoadInt64(&m.AverageResponseTime)
	newAverage := (current + duration.Nanoseconds()) / 2
	atomic.StoreInt64(&m.AverageResponseTime, newAverage)
}

// RecordStatus records a response status code
func (m *Metrics) RecordStatus(code int) {
	m.StatusMutex.Lock()
	defer m.StatusMutex.Unlock()
	m.RequestCountByStatus[code]++
}

// GetStats returns current metrics as a map
func (m *Metrics) GetStats() map[string]interface{} {
	m.StatusMutex.RLock()
	byStatus := make(map[int]int64, len(m.RequestCountByStatus))
	for code, count := range m.RequestCountByStatus {
		byStatus[code] = count
	}
	m.StatusMutex.RUnlock()

	return map[string]interface{}{
		"request_count":        atomic.LoadInt64(&m.RequestCount),
		"error_count":          atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":           atomic.LoadInt64(&m.CacheHits),
		"cache_misses":         atomic.LoadInt64(&m.CacheMisses),
		"comparison_count":     atomic.LoadInt64(&m.ComparisonCount),
		"llm_api_calls":        atomic.LoadInt64(&m.LLMAPICalls),
		"llm_fallbacks":        atomic.LoadInt64(&m.LLMFallbacks),
		"rate_limit_blocks":    atomic.LoadInt64(&m.RateLimitBlocks),
		"avg_response_time_ns": atomic.LoadInt64(&m.AverageResponseTime),
		"requests_by_status":   byStatus,
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
	}
}

// MonitoringMiddleware captures request metrics and logs every request
func MonitoringMiddleware(metrics *Metrics, logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementRequest()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		metrics.RecordResponseTime(duration)
		metrics.RecordStatus(status)
		if status >= 400 {
			metrics.IncrementError()
		}

		logger.RequestLogger(c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, duration)
	}
}
