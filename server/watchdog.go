package server

import (
	"context"
	"time"
)

// watchdogInterval 与控制器超时精度一致（0.1s）
var watchdogInterval = 100 * time.Millisecond

// StartWatchdog 启动看门狗循环：超时未收到指令则待机
// ctx 取消后循环退出，返回的通道随之关闭；重复启动时返回已关闭的通道
func (r *Robot) StartWatchdog(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	r.mu.Lock()
	if r.watchdogStarted {
		r.mu.Unlock()
		close(done)
		return done
	}
	r.watchdogStarted = true
	r.mu.Unlock()

	ticker := time.NewTicker(watchdogInterval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		defer func() {
			r.mu.Lock()
			r.watchdogStarted = false
			r.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.checkWatchdog()
			}
		}
	}()
	return done
}
