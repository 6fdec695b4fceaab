package input

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

const banner = "arrows: move   space: stop   esc / ctrl-c: quit"

// Subscription 由 Terminal.Subscribe 返回，Close 后不再收到按键
type Subscription struct {
	t  *Terminal
	id int
}

// Close 取消订阅（可重复调用）
func (s *Subscription) Close() {
	s.t.mu.Lock()
	delete(s.t.handlers, s.id)
	s.t.mu.Unlock()
}

// Terminal 用 tcell 读取终端按键，作为进程级的按键事件源
type Terminal struct {
	screen tcell.Screen

	mu       sync.Mutex
	handlers map[int]func(Key)
	nextID   int
	closed   bool
}

// NewTerminal 打开当前终端
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen)
}

// NewTerminalWithScreen 使用给定 screen（测试中传入 SimulationScreen）
func NewTerminalWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	t := &Terminal{screen: screen, handlers: make(map[int]func(Key))}
	t.draw("")
	return t, nil
}

// Subscribe 注册按键回调
func (t *Terminal) Subscribe(fn func(Key)) *Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.handlers[id] = fn
	return &Subscription{t: t, id: id}
}

// Run 事件循环：ctx 取消、Esc 或 Ctrl-C 时返回
func (t *Terminal) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// 唤醒阻塞中的 PollEvent
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := t.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			// screen 已 Fini
			return nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
				return nil
			}
			k := convertKey(e)
			t.draw(k)
			t.emit(k)
		}
	}
}

// Close 释放终端
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

func (t *Terminal) emit(k Key) {
	t.mu.Lock()
	fns := make([]func(Key), 0, len(t.handlers))
	for _, fn := range t.handlers {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn(k)
	}
}

func (t *Terminal) draw(last Key) {
	t.screen.Clear()
	putString(t.screen, 0, 0, banner)
	if last != "" {
		line := "key: " + keyLabel(last)
		if d, ok := Lookup(last); ok {
			line += " -> " + string(d)
		}
		putString(t.screen, 0, 1, line)
	}
	t.screen.Show()
}

func putString(s tcell.Screen, x, y int, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func keyLabel(k Key) string {
	if k == KeySpace {
		return "Space"
	}
	return string(k)
}

// convertKey 把 tcell 事件换成平台按键标识
func convertKey(e *tcell.EventKey) Key {
	switch e.Key() {
	case tcell.KeyUp:
		return KeyArrowUp
	case tcell.KeyDown:
		return KeyArrowDown
	case tcell.KeyLeft:
		return KeyArrowLeft
	case tcell.KeyRight:
		return KeyArrowRight
	case tcell.KeyRune:
		return Key(string(e.Rune()))
	}
	return Key(e.Name())
}
