package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"robodrive/applog"
	"robodrive/input"
	"robodrive/server"
)

// robodrive 入口：drive 模式读取终端方向键并发往 /move；serve 模式接收 /move 驱动电机
func main() {
	var (
		mode            string
		addr            string
		serverURL       string
		logFile         string
		webDir          string
		maxSpeed        int
		shutdownTimeout time.Duration
	)
	flag.StringVar(&mode, "mode", "drive", "drive (keyboard client) or serve (robot server)")
	flag.StringVar(&addr, "addr", ":3000", "serve: listen address, e.g. :3000")
	flag.StringVar(&serverURL, "server", "http://localhost:3000", "drive: robot server base URL")
	flag.StringVar(&logFile, "log", "robodrive.log", "log file path")
	flag.StringVar(&webDir, "web", "", "serve: static files directory (empty: no static files)")
	flag.IntVar(&maxSpeed, "max-speed", server.DefaultMaxSpeed, "serve: motor speed used for direction commands")
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "serve: stop motors when no command arrives in this window (0 disables)")
	flag.Parse()

	// zap 日志写入文件（lumberjack 滚动）
	if err := applog.Init(applog.DefaultOptions(logFile)); err != nil {
		panic(err)
	}
	defer applog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch mode {
	case "drive":
		err = runDrive(ctx, serverURL)
	case "serve":
		err = runServe(ctx, addr, webDir, maxSpeed, shutdownTimeout)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		applog.Log.Errorf("%s: %v", mode, err)
		fmt.Fprintln(os.Stderr, err)
		applog.Sync()
		os.Exit(1)
	}
}

// teardownWait drive 模式退出时等待在途请求的上限
const teardownWait = 500 * time.Millisecond

func runDrive(ctx context.Context, serverURL string) error {
	log := applog.Named("input")
	term, err := input.NewTerminal()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer term.Close()

	sender := input.NewHTTPSender(serverURL, nil)
	dispatcher := input.NewDispatcher(sender, log)

	// 启动时注册一次，退出时注销
	sub := term.Subscribe(dispatcher.HandleKey)
	defer sub.Close()

	log.Infof("driving %s", sender.URL())
	err = term.Run(ctx)
	// 不因未返回的请求阻塞退出
	if !sender.WaitTimeout(teardownWait) {
		log.Debug("exiting with requests in flight")
	}
	return err
}

func runServe(ctx context.Context, addr, webDir string, maxSpeed int, shutdownTimeout time.Duration) error {
	log := applog.Named("http")
	robot := server.GetRobot()
	if err := robot.SetMaxSpeed(maxSpeed); err != nil {
		return err
	}
	if err := robot.SetShutdownTimeout(shutdownTimeout); err != nil {
		return err
	}
	watchdogDone := robot.StartWatchdog(ctx)

	srv := &http.Server{Addr: addr, Handler: server.NewMux(robot, server.GetHub(), webDir, log)}

	errc := make(chan error, 1)
	go func() {
		log.Infof("robodrive listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	// 优雅退出（Ctrl+C）
	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down...")
	_ = robot.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	<-watchdogDone
	return err
}
