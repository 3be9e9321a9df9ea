package logger

import (
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inkwell-blog/inkwell-api/internal/config"
)

var (
	// Logger 全局日志实例
	Logger *zap.Logger
	// SugaredLogger 语法糖日志实例
	SugaredLogger *zap.SugaredLogger

	loggerOnce sync.Once
)

// Init 根据全局配置初始化日志
func Init() {
	cfg := config.GlobalConfig.Log
	loggerOnce.Do(func() {
		InitLogger(&cfg)
	})
}

// InitLogger 初始化日志
func InitLogger(cfg *config.LogConfig) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// 日志输出目标：文件轮转、控制台或两者
	var writeSyncer zapcore.WriteSyncer
	if cfg.Filename != "" {
		lumberjackLogger := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
		if cfg.Stdout {
			writeSyncer = zapcore.NewMultiWriteSyncer(
				zapcore.AddSync(lumberjackLogger),
				zapcore.AddSync(os.Stdout),
			)
		} else {
			writeSyncer = zapcore.AddSync(lumberjackLogger)
		}
	} else {
		writeSyncer = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writeSyncer,
		level,
	)

	Logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	SugaredLogger = Logger.Sugar()
}

// GetLogger 获取日志实例
func GetLogger() *zap.Logger {
	if Logger == nil {
		// 未初始化时（单元测试）退化为开发模式日志
		Logger, _ = zap.NewDevelopment()
		SugaredLogger = Logger.Sugar()
	}
	return Logger
}

// GetSugaredLogger 获取语法糖日志实例
func GetSugaredLogger() *zap.SugaredLogger {
	if SugaredLogger == nil {
		GetLogger()
	}
	return SugaredLogger
}

// Sync 同步日志
func Sync() error {
	return Logger.Sync()
}

// GinLogger 返回Gin中间件日志处理函数
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		Logger.Info("HTTP请求",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("cost", cost),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}

// Info 信息日志
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Warn 警告日志
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error 错误日志
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Warnf 格式化警告日志
func Warnf(format string, args ...interface{}) {
	GetSugaredLogger().Warnf(format, args...)
}

// Errorf 格式化错误日志
func Errorf(format string, args ...interface{}) {
	GetSugaredLogger().Errorf(format, args...)
}
