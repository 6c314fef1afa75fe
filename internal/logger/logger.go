// Package logger 构建命令行使用的zerolog日志
package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console" // 面向终端的彩色输出
	FormatJSON    = "json"    // 结构化JSON输出
)

// New 按级别与格式创建日志
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}

	switch format {
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
