package input

import (
	"go.uber.org/zap"

	"robodrive/command"
)

// Sender 把方向指令发往远端；不得阻塞调用方
type Sender interface {
	Send(d command.Direction)
}

// Dispatcher 无状态：按键 → 方向 → 发送
type Dispatcher struct {
	sender Sender
	log    *zap.SugaredLogger
}

// NewDispatcher log 可为 nil
func NewDispatcher(sender Sender, log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{sender: sender, log: log}
}

// HandleKey 每次按键最多触发一次发送；未识别的按键直接忽略
func (d *Dispatcher) HandleKey(k Key) {
	dir, ok := Lookup(k)
	if !ok {
		return
	}
	d.SendDirection(dir)
}

// SendDirection 交给 Sender 后立即返回，不等待也不观察结果
func (d *Dispatcher) SendDirection(dir command.Direction) {
	d.log.Debugf("send direction=%s", dir)
	d.sender.Send(dir)
}
