package server

import (
	"log"
	"net/http"
	"time"

	"agentstack/internal/metrics"
	"agentstack/internal/route"

	"github.com/gin-gonic/gin"
)

// SiteHandler はルートテーブルに従ってファイルを返すハンドラ
type SiteHandler struct {
	table    *route.Table
	metrics  *metrics.Metrics
	readFile func(name string) ([]byte, error)
}

// HealthResponse はヘルスチェックの応答
type HealthResponse struct {
	Status    string    `json:"status"`
	Routes    int       `json:"routes"`
	Timestamp time.Time `json:"timestamp"`
}

// ServeSite はリクエストパスを解決してファイルを返す
func (h *SiteHandler) ServeSite(c *gin.Context) {
	// デコード前のパスで解決する（%3F や %2F を ? や / として扱わない）
	res, ok := h.table.Resolve(c.Request.URL.EscapedPath())
	if !ok {
		h.metrics.Observe(metrics.OutcomeNotFound, 0)
		c.Status(http.StatusNotFound)
		return
	}

	// キャッシュせず毎回読み直す
	body, err := h.readFile(res.Path)
	if err != nil {
		// 存在確認の後に消えた・読めなくなった場合も 404 として扱う
		log.Printf("ファイルの読み込みに失敗しました: %s: %v", res.Path, err)
		h.metrics.Observe(metrics.OutcomeReadError, 0)
		c.Status(http.StatusNotFound)
		return
	}

	h.metrics.Observe(metrics.OutcomeServed, len(body))
	c.Data(http.StatusOK, res.ContentType, body)
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *SiteHandler) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Routes:    h.table.Len(),
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}
