package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HandleAdminConfig 提供驱动配置的读取与更新（热更新）
// GET /admin/config  返回当前配置
// POST /admin/config 以 JSON 载荷更新部分字段
func HandleAdminConfig(robot *Robot, log *zap.SugaredLogger) http.HandlerFunc {
	type cfg struct {
		MaxSpeed          *int   `json:"maxSpeed,omitempty"`
		ShutdownTimeoutMs *int64 `json:"shutdownTimeoutMs,omitempty"`
	}

	current := func() cfg {
		speed := robot.MaxSpeed()
		ms := robot.ShutdownTimeout().Milliseconds()
		return cfg{MaxSpeed: &speed, ShutdownTimeoutMs: &ms}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(current())
		case http.MethodPost:
			var body cfg
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			if body.MaxSpeed != nil {
				if err := robot.SetMaxSpeed(*body.MaxSpeed); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
			if body.ShutdownTimeoutMs != nil {
				d := time.Duration(*body.ShutdownTimeoutMs) * time.Millisecond
				if err := robot.SetShutdownTimeout(d); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
			log.Infof("config updated: maxSpeed=%d shutdownTimeout=%v", robot.MaxSpeed(), robot.ShutdownTimeout())
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleMetrics 输出运行指标与当前电机状态
// GET /metrics
func HandleMetrics(robot *Robot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"state":   robot.State(),
			"metrics": robot.Metrics().Snapshot(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}
