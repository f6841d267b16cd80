package handlers

import (
	"net/http"
	"sync/atomic"

	"retailx-assistant/pkg/dataset"
	"retailx-assistant/pkg/services"

	"github.com/gin-gonic/gin"
)

// isMaintenanceMode はサーバーがメンテナンスモードかどうかを示します。
// atomic.Boolを使用して、スレッドセーフな読み書きを保証します。
var isMaintenanceMode atomic.Bool

// IsMaintenanceMode reports whether maintenance mode is active
func IsMaintenanceMode() bool {
	return isMaintenanceMode.Load()
}

// AdminHandler は管理者向け操作のハンドラです。
type AdminHandler struct {
	tables     *dataset.Tables
	monitoring *services.MonitoringService
}

// NewAdminHandler は新しいAdminHandlerを生成します。
func NewAdminHandler(tables *dataset.Tables, monitoring *services.MonitoringService) *AdminHandler {
	return &AdminHandler{
		tables:     tables,
		monitoring: monitoring,
	}
}

// StartMaintenance はメンテナンスモードを開始します。
// 有効な間、/chat は503を返します。
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	isMaintenanceMode.Store(true)
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode started"})
}

// StopMaintenance はメンテナンスモードを停止します。
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	isMaintenanceMode.Store(false)
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode stopped"})
}

// GetHealthStatus は現在のサーバー状態とデータセットの行数を返します。
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"isMaintenanceMode": isMaintenanceMode.Load(),
		"uptime":            h.monitoring.Uptime().String(),
		"tables": gin.H{
			"products":  len(h.tables.Products),
			"orders":    len(h.tables.Orders),
			"stores":    len(h.tables.Stores),
			"customers": len(h.tables.Customers),
		},
	})
}

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func HealthCheck(c *gin.Context) {
	if isMaintenanceMode.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "RetailX Assistant",
	})
}
