package input

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"robodrive/command"
)

// HTTPSender 每个指令一个独立的 POST /move，发后即忘
type HTTPSender struct {
	url    string
	client *http.Client
	wg     sync.WaitGroup
}

// NewHTTPSender baseURL 如 "http://robot.local:3000"；client 为 nil 时用默认客户端
func NewHTTPSender(baseURL string, client *http.Client) *HTTPSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSender{
		url:    strings.TrimRight(baseURL, "/") + command.MovePath,
		client: client,
	}
}

// URL 实际请求地址
func (s *HTTPSender) URL() string { return s.url }

// Send 在独立协程中发出请求；响应与错误都被丢弃，不重试
func (s *HTTPSender) Send(d command.Direction) {
	body, err := command.Encode(d)
	if err != nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", command.ContentType)
		resp, err := s.client.Do(req)
		if err != nil {
			return
		}
		// 读空响应体以便连接复用，内容不看
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
}

// Wait 等待已发出的请求结束（测试用）
func (s *HTTPSender) Wait() {
	s.wg.Wait()
}

// WaitTimeout 最多等待 d；超时返回 false，未完成的请求留给进程退出
func (s *HTTPSender) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-done:
		return true
	case <-t.C:
		return false
	}
}
