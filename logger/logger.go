package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type _LoggingFormat int8

const (
	_JSONFormat _LoggingFormat = iota
	_ConsoleFormat
)

type _Logger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

var l *_Logger

// Init logger initialize
func Init(name string, config *viper.Viper) {
	SetLogger(newLogger(name, config))
	l.logger.Info("initialize logger", zap.String("name", name))
}

// SetLogger 直接替换底层的 zap logger，传 nil 则回退到标准输出
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		l = nil
		return
	}
	l = &_Logger{
		logger: logger,
		sugar:  logger.Sugar(),
	}
}

// Zap 当前的 zap logger，没有初始化时返回 nop logger
func Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.logger
}

// Sync flushes buffered logs
func Sync() error {
	if l == nil {
		return nil
	}
	return l.logger.Sync()
}

// Debugf logger
func Debugf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Debugf(format, args...)
}

// Infof logger
func Infof(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Infof(format, args...)
}

// Warnf logger
func Warnf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Warnf(format, args...)
}

// Errorf logger
func Errorf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Errorf(format, args...)
}

// Debug logger
func Debug(msg string, fields ...zapcore.Field) {
	if l == nil {
		return
	}
	l.logger.Debug(msg, fields...)
}

// Info logger
func Info(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn logger
func Warn(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error logger
func Error(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Error(msg, fields...)
}

// Fatal logger, log message then call os.Exit(1).
func Fatal(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		os.Exit(1)
	}
	l.logger.Fatal(msg, fields...)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "", "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	fmt.Println("Logger level invalid, must be one of: DEBUG, INFO, WARN, or ERROR")
	return zapcore.InfoLevel
}

func parseFormat(format string) _LoggingFormat {
	if strings.ToLower(format) == "console" {
		return _ConsoleFormat
	}
	return _JSONFormat
}

// newLogger {dir}{name}.log
func newLogger(name string, config *viper.Viper) *zap.Logger {
	level := parseLevel(config.GetString("logger.level"))
	format := parseFormat(config.GetString("logger.format"))
	fileDir := config.GetString("logger.dir")
	rotation := config.GetBool("logger.rotation")
	stdout := config.GetBool("logger.stdout")

	consoleLogger := newLoggerWithSyncer(zapcore.Lock(os.Stdout), level, format)

	if len(fileDir) == 0 {
		return consoleLogger
	}

	file := filepath.Join(fileDir, name+".log")
	var fileLogger *zap.Logger
	if rotation {
		fileLogger = newRotatingFileLogger(config, consoleLogger, file, level, format)
	} else {
		fileLogger = newFileLogger(consoleLogger, file, level, format)
	}
	if fileLogger == nil {
		return consoleLogger
	}
	if stdout {
		return newMultiLogger(consoleLogger, fileLogger)
	}
	return fileLogger
}

func newFileLogger(consoleLogger *zap.Logger, fileName string, level zapcore.Level, format _LoggingFormat) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		consoleLogger.Error("Could not create log directory", zap.Error(err))
		return nil
	}
	output, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		consoleLogger.Error("Could not create log file", zap.Error(err))
		return nil
	}
	return newLoggerWithSyncer(zapcore.Lock(output), level, format)
}

func newRotatingFileLogger(config *viper.Viper, consoleLogger *zap.Logger, fileName string, level zapcore.Level, format _LoggingFormat) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		consoleLogger.Error("Could not create log directory", zap.Error(err))
		return nil
	}
	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    config.GetInt("logger.maxsize"),
		MaxAge:     config.GetInt("logger.maxage"),
		MaxBackups: config.GetInt("logger.maxbackups"),
		LocalTime:  config.GetBool("logger.localtime"),
		Compress:   config.GetBool("logger.compress"),
	})
	return newLoggerWithSyncer(writeSyncer, level, format)
}

func newMultiLogger(loggers ...*zap.Logger) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(loggers))
	for _, logger := range loggers {
		cores = append(cores, logger.Core())
	}
	teeCore := zapcore.NewTee(cores...)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(teeCore, options...)
}

func newLoggerWithSyncer(output zapcore.WriteSyncer, level zapcore.Level, format _LoggingFormat) *zap.Logger {
	core := zapcore.NewCore(newEncoder(format), output, level)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1)}
	return zap.New(core, options...)
}

func newEncoder(format _LoggingFormat) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == _ConsoleFormat {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}
