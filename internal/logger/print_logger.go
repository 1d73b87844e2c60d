package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// PrintLogger routes Printf/Println style logging from third-party clients
// into a zerolog logger at a fixed level.
type PrintLogger struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func NewPrintLogger(logger zerolog.Logger, level zerolog.Level) *PrintLogger {
	return &PrintLogger{logger: logger, level: level}
}

func (p *PrintLogger) Printf(format string, v ...interface{}) {
	p.logger.WithLevel(p.level).Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

func (p *PrintLogger) Println(v ...interface{}) {
	p.logger.WithLevel(p.level).Msg(strings.TrimRight(fmt.Sprintln(v...), "\n"))
}
