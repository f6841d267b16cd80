package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogEntry は単一のリクエストログを表します。
type RequestLogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// MonitoringService はAPIのモニタリング機能を提供します。
// リクエストログに加えて、会話ターンをコンテキストタグ別に集計します。
type MonitoringService struct {
	mu         sync.RWMutex
	logs       []RequestLogEntry
	turnCounts map[string]int // 処理前のコンテキストタグ -> ターン数
	started    time.Time
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs:       make([]RequestLogEntry, 0),
		turnCounts: make(map[string]int),
		started:    time.Now(),
	}
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry RequestLogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
}

// RecordTurn は1会話ターンを、処理時点のコンテキストタグで集計します。
// メニュー（空コンテキスト）は "menu" として数えます。
func (s *MonitoringService) RecordTurn(contextTag string) {
	if contextTag == "" {
		contextTag = "menu"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turnCounts[contextTag]++
}

// Uptime returns the elapsed time since service start
func (s *MonitoringService) Uptime() time.Duration {
	return time.Since(s.started)
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 次のミドルウェア/ハンドラを実行
		c.Next()

		// 管理・監視エンドポイント自身は記録しない
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(RequestLogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// MonitoringStats は /monitoring/logs で返す集計結果です。
type MonitoringStats struct {
	TotalRequests int               `json:"total_requests"`
	StatusCodes   map[string]int    `json:"status_codes"`
	Endpoints     map[string]int    `json:"endpoints"`
	TurnsByFlow   map[string]int    `json:"turns_by_flow"`
	RecentErrors  []RequestLogEntry `json:"recent_errors"`
	AvgResponseMs map[string]int64  `json:"avg_response_ms"`
}

// GetStats はリクエストログと会話ターンを集計して返します。
func (s *MonitoringService) GetStats() MonitoringStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := MonitoringStats{
		TotalRequests: len(s.logs),
		StatusCodes:   map[string]int{"2xx Success": 0, "4xx Client Error": 0, "5xx Server Error": 0},
		Endpoints:     make(map[string]int),
		TurnsByFlow:   make(map[string]int),
		RecentErrors:  make([]RequestLogEntry, 0),
		AvgResponseMs: make(map[string]int64),
	}

	for tag, n := range s.turnCounts {
		stats.TurnsByFlow[tag] = n
	}

	responseTimeSum := make(map[string]time.Duration)
	for _, entry := range s.logs {
		stats.Endpoints[entry.Path]++
		responseTimeSum[entry.Path] += entry.ResponseTime

		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			stats.StatusCodes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			stats.StatusCodes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			stats.StatusCodes["5xx Server Error"]++
		}
	}

	for path, total := range responseTimeSum {
		stats.AvgResponseMs[path] = total.Milliseconds() / int64(stats.Endpoints[path])
	}

	// 直近のサーバーエラーを新しい順に最大10件
	for i := len(s.logs) - 1; i >= 0 && len(stats.RecentErrors) < 10; i-- {
		if s.logs[i].StatusCode >= 500 {
			stats.RecentErrors = append(stats.RecentErrors, s.logs[i])
		}
	}

	return stats
}
