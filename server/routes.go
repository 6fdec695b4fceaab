package server

import (
	"net/http"

	"go.uber.org/zap"

	"robodrive/command"
)

// NewMux 组装全部 HTTP 路由；webDir 为空时不提供静态资源
func NewMux(robot *Robot, hub *Hub, webDir string, log *zap.SugaredLogger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(command.MovePath, HandleMove(robot))
	mux.HandleFunc("/ws", HandleWS(robot, hub, log))
	// 管理与监控接口
	mux.HandleFunc("/admin/config", HandleAdminConfig(robot, log))
	mux.HandleFunc("/metrics", HandleMetrics(robot))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}
	return mux
}
