package command

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Direction 方向指令（线上传输的字符串令牌）
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
	Left     Direction = "left"
	Right    Direction = "right"
	Stop     Direction = "stop"
)

const (
	// MovePath 服务端接收方向指令的固定路径
	MovePath = "/move"
	// ContentType 请求体的文本交换格式
	ContentType = "application/json"
)

// ErrUnknownDirection 不在五个令牌之内
var ErrUnknownDirection = errors.New("unknown direction")

// All 返回全部合法令牌（按固定顺序）
func All() []Direction {
	return []Direction{Forward, Backward, Left, Right, Stop}
}

// Valid 判断是否为五个合法令牌之一
func (d Direction) Valid() bool {
	switch d {
	case Forward, Backward, Left, Right, Stop:
		return true
	}
	return false
}

func (d Direction) String() string { return string(d) }

// Parse 严格按字面匹配（大小写敏感）
func Parse(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// Command 请求体：{"direction":"forward"}
type Command struct {
	Direction Direction `json:"direction"`
}

// Encode 序列化为请求体；同一令牌总是得到相同字节
func Encode(d Direction) ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, string(d))
	}
	return json.Marshal(Command{Direction: d})
}
