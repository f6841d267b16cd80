package handlers

import (
	"net/http"

	"retailx-assistant/pkg/services"

	"github.com/gin-gonic/gin"
)

// MonitoringHandler はモニタリングAPIのハンドラです。
type MonitoringHandler struct {
	monitoringService *services.MonitoringService
}

// NewMonitoringHandler は新しいMonitoringHandlerを生成します。
func NewMonitoringHandler(monitoringService *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{
		monitoringService: monitoringService,
	}
}

// GetLogs はリクエストログと会話ターンの集計を返します。
func (h *MonitoringHandler) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.monitoringService.GetStats(),
	})
}
