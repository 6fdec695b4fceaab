package server

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"robodrive/command"
)

const (
	// DefaultMaxSpeed 方向指令使用的速度
	DefaultMaxSpeed = 100
	// SpeedLimit 电机控制器接受的速度范围 [-SpeedLimit, SpeedLimit]
	SpeedLimit = 32767
)

// Motor 电机驱动（硬件或模拟）
type Motor interface {
	SetSpeed(left, right int) error
	Standby() error
}

// LogMotor 只记录日志的电机，开发与测试环境使用
type LogMotor struct {
	Log *zap.SugaredLogger
}

func (m LogMotor) SetSpeed(left, right int) error {
	m.Log.Infof("[robot] %d %d", left, right)
	return nil
}

func (m LogMotor) Standby() error {
	m.Log.Info("[robot] stop")
	return nil
}

// State 广播给监控客户端的电机状态
type State struct {
	Left    int  `json:"left"`
	Right   int  `json:"right"`
	Standby bool `json:"standby"`
}

// Robot 服务端权威状态：两个电机速度 + 看门狗
type Robot struct {
	mu    sync.Mutex
	motor Motor
	log   *zap.SugaredLogger

	maxSpeed        int
	shutdownTimeout time.Duration // 0 表示关闭看门狗
	state           State
	lastCommand     time.Time

	metrics   *DriveMetrics
	observers []func(State)

	watchdogStarted bool
	now             func() time.Time
}

// NewRobot 初始为待机
func NewRobot(motor Motor, log *zap.SugaredLogger) *Robot {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Robot{
		motor:    motor,
		log:      log,
		maxSpeed: DefaultMaxSpeed,
		state:    State{Standby: true},
		metrics:  &DriveMetrics{},
		now:      time.Now,
	}
}

// Metrics 运行指标
func (r *Robot) Metrics() *DriveMetrics { return r.metrics }

// OnChange 状态变化回调（在 Robot 锁外调用）
func (r *Robot) OnChange(fn func(State)) {
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

// State 当前状态副本
func (r *Robot) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Robot) MaxSpeed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxSpeed
}

// SetMaxSpeed 范围 1..SpeedLimit
func (r *Robot) SetMaxSpeed(v int) error {
	if v < 1 || v > SpeedLimit {
		return fmt.Errorf("max speed must be between 1 and %d: %d", SpeedLimit, v)
	}
	r.mu.Lock()
	r.maxSpeed = v
	r.mu.Unlock()
	return nil
}

func (r *Robot) ShutdownTimeout() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shutdownTimeout
}

// SetShutdownTimeout 0 关闭；否则与控制器一致，0.1s 到 10s
func (r *Robot) SetShutdownTimeout(d time.Duration) error {
	if d != 0 && (d < 100*time.Millisecond || d > 10*time.Second) {
		return fmt.Errorf("shutdown timeout must be 0 or between 100ms and 10s: %v", d)
	}
	r.mu.Lock()
	r.shutdownTimeout = d
	r.mu.Unlock()
	return nil
}

// Apply 解释方向指令
func (r *Robot) Apply(d command.Direction) error {
	speed := r.MaxSpeed()
	var err error
	switch d {
	case command.Forward:
		err = r.Move(speed, speed)
	case command.Backward:
		err = r.Move(-speed, -speed)
	case command.Right:
		err = r.Move(speed, -speed)
	case command.Left:
		err = r.Move(-speed, speed)
	case command.Stop:
		err = r.Stop()
	default:
		r.metrics.IncRejected()
		return fmt.Errorf("%w: %q", command.ErrUnknownDirection, string(d))
	}
	if err != nil {
		return err
	}
	r.metrics.IncAccepted(d)
	return nil
}

// Move 注意参数顺序：先右后左
func (r *Robot) Move(right, left int) error {
	if err := checkSpeed(left, "left"); err != nil {
		return err
	}
	if err := checkSpeed(right, "right"); err != nil {
		return err
	}
	if err := r.motor.SetSpeed(left, right); err != nil {
		return fmt.Errorf("set motor speed: %w", err)
	}
	r.update(State{Left: left, Right: right})
	return nil
}

// Stop 电机进入待机
func (r *Robot) Stop() error {
	if err := r.motor.Standby(); err != nil {
		return fmt.Errorf("standby: %w", err)
	}
	r.update(State{Standby: true})
	return nil
}

func (r *Robot) update(s State) {
	r.mu.Lock()
	r.state = s
	r.lastCommand = r.now()
	obs := make([]func(State), len(r.observers))
	copy(obs, r.observers)
	r.mu.Unlock()
	for _, fn := range obs {
		fn(s)
	}
}

func checkSpeed(v int, name string) error {
	if v < -SpeedLimit || v > SpeedLimit {
		return fmt.Errorf("%s motor speed must be between %d and %d: %d", name, -SpeedLimit, SpeedLimit, v)
	}
	return nil
}
