package log

import (
	"fmt"
	"os"

	logger "github.com/phuslu/log"

	"github.com/portside/httpmeta/common/observable"
)

var (
	logCh  = make(chan Event)
	source = observable.NewObservable[Event](logCh)
	level  = INFO
)

func init() {
	logger.DefaultLogger = logger.Logger{
		Level:  logger.DebugLevel,
		Writer: &logger.ConsoleWriter{Writer: os.Stdout},
	}
}

type Event struct {
	LogLevel LogLevel `json:"type"`
	Payload  string   `json:"payload"`
}

func (e *Event) Type() string {
	return e.LogLevel.String()
}

func Infoln(format string, v ...any) {
	event := newLog(INFO, format, v...)
	logCh <- event
	print(event)
}

func Warnln(format string, v ...any) {
	event := newLog(WARNING, format, v...)
	logCh <- event
	print(event)
}

func Errorln(format string, v ...any) {
	event := newLog(ERROR, format, v...)
	logCh <- event
	print(event)
}

func Debugln(format string, v ...any) {
	event := newLog(DEBUG, format, v...)
	logCh <- event
	print(event)
}

func Fatalln(format string, v ...any) {
	logger.Fatal().Msgf(format, v...)
}

func Subscribe() observable.Subscription[Event] {
	sub, _ := source.Subscribe()
	return sub
}

func UnSubscribe(sub observable.Subscription[Event]) {
	source.UnSubscribe(sub)
}

func Level() LogLevel {
	return level
}

func SetLevel(newLevel LogLevel) {
	level = newLevel
}

func print(data Event) {
	if data.LogLevel < level {
		return
	}

	switch data.LogLevel {
	case INFO:
		logger.Info().Msg(data.Payload)
	case WARNING:
		logger.Warn().Msg(data.Payload)
	case ERROR:
		logger.Error().Msg(data.Payload)
	case DEBUG:
		logger.Debug().Msg(data.Payload)
	}
}

func newLog(logLevel LogLevel, format string, v ...any) Event {
	return Event{
		LogLevel: logLevel,
		Payload:  fmt.Sprintf(format, v...),
	}
}
