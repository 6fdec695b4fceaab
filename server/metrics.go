package server

import (
	"sync/atomic"

	"robodrive/command"
)

// DriveMetrics 记录指令处理的关键指标（用于监控与调试）
type DriveMetrics struct {
	Accepted      int64 // 被执行的指令数
	Rejected      int64 // 无法解析或非法方向
	WatchdogStops int64 // 看门狗触发的停止

	Forward  int64
	Backward int64
	Left     int64
	Right    int64
	Stop     int64
}

func (m *DriveMetrics) IncRejected()      { atomic.AddInt64(&m.Rejected, 1) }
func (m *DriveMetrics) IncWatchdogStops() { atomic.AddInt64(&m.WatchdogStops, 1) }

func (m *DriveMetrics) IncAccepted(d command.Direction) {
	atomic.AddInt64(&m.Accepted, 1)
	switch d {
	case command.Forward:
		atomic.AddInt64(&m.Forward, 1)
	case command.Backward:
		atomic.AddInt64(&m.Backward, 1)
	case command.Left:
		atomic.AddInt64(&m.Left, 1)
	case command.Right:
		atomic.AddInt64(&m.Right, 1)
	case command.Stop:
		atomic.AddInt64(&m.Stop, 1)
	}
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *DriveMetrics) Snapshot() map[string]any {
	return map[string]any{
		"accepted":       atomic.LoadInt64(&m.Accepted),
		"rejected":       atomic.LoadInt64(&m.Rejected),
		"watchdog_stops": atomic.LoadInt64(&m.WatchdogStops),
		"directions": map[string]int64{
			string(command.Forward):  atomic.LoadInt64(&m.Forward),
			string(command.Backward): atomic.LoadInt64(&m.Backward),
			string(command.Left):     atomic.LoadInt64(&m.Left),
			string(command.Right):    atomic.LoadInt64(&m.Right),
			string(command.Stop):     atomic.LoadInt64(&m.Stop),
		},
	}
}
