package handlers

import (
	"log"
	"net/http"

	"retailx-assistant/pkg/models"
	"retailx-assistant/pkg/services"
	"retailx-assistant/pkg/session"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the dialog endpoint. The server is stateless between
// turns: the session carrier travels in the payload and is echoed back
// updated. When a session store is configured, carriers are additionally
// mirrored under the caller-supplied session_id.
type ChatHandler struct {
	dialog     *services.DialogService
	monitoring *services.MonitoringService
	store      session.Store // nilの場合はクライアント持ち回りのみ
}

// NewChatHandler creates a new ChatHandler. store may be nil.
func NewChatHandler(dialog *services.DialogService, monitoring *services.MonitoringService, store session.Store) *ChatHandler {
	return &ChatHandler{
		dialog:     dialog,
		monitoring: monitoring,
		store:      store,
	}
}

// Chat は1会話ターンを処理します。
func (h *ChatHandler) Chat(c *gin.Context) {
	if IsMaintenanceMode() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server is in maintenance mode"})
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	// セッション解決: リクエスト本体 → ストア → 新規の順
	sess := req.Session
	if sess == nil && h.store != nil && req.SessionID != "" {
		stored, err := h.store.Load(c.Request.Context(), req.SessionID)
		if err != nil {
			log.Printf("⚠️ session load failed for %s: %v", req.SessionID, err)
			stored = &models.Session{}
		}
		sess = stored
	}
	if sess == nil {
		// セッションが無いリクエストは新規会話として扱う
		sess = &models.Session{}
	}

	if h.monitoring != nil {
		h.monitoring.RecordTurn(sess.Context)
	}

	reply := h.dialog.Step(req.UserInput, sess)

	if h.store != nil && req.SessionID != "" {
		if err := h.store.Save(c.Request.Context(), req.SessionID, sess); err != nil {
			log.Printf("⚠️ session save failed for %s: %v", req.SessionID, err)
		}
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Response:  reply,
		Session:   sess,
		SessionID: req.SessionID,
	})
}

// Index はチャットUIページを返します。
func (h *ChatHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": "RetailX Assistant",
	})
}
