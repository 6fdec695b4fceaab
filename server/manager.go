package server

import (
	"sync"

	"robodrive/applog"
)

var (
	defaultRobot *Robot
	defaultHub   *Hub
	once         sync.Once
)

// GetRobot 单例机器人（LogMotor 驱动）与状态广播；看门狗由调用方按 ctx 启动
func GetRobot() *Robot {
	once.Do(func() {
		log := applog.Named("robot")
		defaultRobot = NewRobot(LogMotor{Log: log}, log)
		defaultHub = NewHub(defaultRobot)
	})
	return defaultRobot
}

// GetHub 与单例机器人配套的 WebSocket 广播中心
func GetHub() *Hub {
	GetRobot()
	return defaultHub
}
