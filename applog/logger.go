package applog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 全局 SugaredLogger；Init 之前为 Nop，调用方无需判空
var Log = zap.NewNop().Sugar()

// Options 日志文件与滚动策略
type Options struct {
	FilePath   string // 如 "robodrive.log"
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Level      zapcore.Level
}

// DefaultOptions 10MB 每文件，保留3个备份，7天
func DefaultOptions(filePath string) Options {
	return Options{
		FilePath:   filePath,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      zapcore.DebugLevel,
	}
}

// Init 初始化 zap 日志到本地文件（lumberjack 滚动）
// drive 模式下终端由按键源占用，所以只写文件
func Init(opts Options) error {
	lj := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	Log = New(zapcore.AddSync(lj), opts.Level)
	return nil
}

// New 基于任意 WriteSyncer 构建 logger（测试中可写入内存）
func New(ws zapcore.WriteSyncer, level zapcore.Level) *zap.SugaredLogger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Named 返回带子系统名的 logger，例如 "input"、"robot"
func Named(name string) *zap.SugaredLogger {
	return Log.Named(name)
}

// Sync 清理和同步缓冲
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
