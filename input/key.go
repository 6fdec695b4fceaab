package input

import "robodrive/command"

// Key 平台按键标识（与浏览器 KeyboardEvent.key 同名）
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeySpace      Key = " "
)

// 只读映射表，启动后不再修改
var keyMap = map[Key]command.Direction{
	KeyArrowUp:    command.Forward,
	KeyArrowDown:  command.Backward,
	KeyArrowLeft:  command.Left,
	KeyArrowRight: command.Right,
	KeySpace:      command.Stop,
}

// Lookup 返回按键对应的方向；未识别的按键返回 false
func Lookup(k Key) (command.Direction, bool) {
	d, ok := keyMap[k]
	return d, ok
}
