package logsvc

import (
	"fmt"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/sirupsen/logrus"

	"github.com/trezcool/elimu/core"
)

// RollbarLogger reports to Rollbar and writes the same events to a logrus logger.
type RollbarLogger struct {
	std *logrus.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

var rollbarReporters = map[logrus.Level]func(...interface{}){
	logrus.DebugLevel: rollbar.Debug,
	logrus.InfoLevel:  rollbar.Info,
	logrus.WarnLevel:  rollbar.Warning,
	logrus.ErrorLevel: rollbar.Error,
	logrus.FatalLevel: rollbar.Critical,
}

func NewRollbarLogger(std *logrus.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// NewStdLogger returns the logrus logger used for local output: text in DEV|TEST, JSON otherwise.
func NewStdLogger(conf *core.Config) *logrus.Logger {
	std := logrus.New()
	switch {
	case conf.Debug:
		std.SetLevel(logrus.DebugLevel)
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case conf.TestMode:
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		std.SetFormatter(&logrus.JSONFormatter{})
	}
	return std
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// event is one log call split for both outputs.
type event struct {
	rollbarArgs []interface{} // msg, then everything but the requester
	fields      logrus.Fields
	person      core.Requester
}

// split sorts args (error | map[string]interface{} | core.Requester) into an event.
// Only the first authenticated requester is kept; errors after the first get a numbered key.
// Errors are formatted with %+v so wrapped stack traces reach the log line.
func split(msg string, args []interface{}) event {
	ev := event{
		rollbarArgs: append(make([]interface{}, 0, len(args)+1), msg),
		fields:      make(logrus.Fields, len(args)),
	}
	var errCount int
	for _, arg := range args {
		switch a := arg.(type) {
		case core.Requester:
			if ev.person.IsAnonymous() && !a.IsAnonymous() {
				ev.person = a
				ev.fields["user_id"] = a.ID
			}
			continue
		case error:
			key := logrus.ErrorKey
			if errCount > 0 {
				key += "_" + strconv.Itoa(errCount)
			}
			ev.fields[key] = fmt.Sprintf("%+v", a)
			errCount++
		case map[string]interface{}:
			for k, v := range a {
				ev.fields[k] = v
			}
		default:
			ev.fields["arg"] = a
		}
		ev.rollbarArgs = append(ev.rollbarArgs, arg)
	}
	return ev
}

func (l *RollbarLogger) log(level logrus.Level, msg string, args []interface{}) {
	ev := split(msg, args)

	if ev.person.IsAnonymous() {
		rollbar.ClearPerson()
	} else {
		rollbar.SetPerson(ev.person.ID, "", ev.person.Email)
	}
	rollbarReporters[level](ev.rollbarArgs...)

	entry := l.std.WithFields(ev.fields)
	if level == logrus.FatalLevel {
		rollbar.Wait()
		entry.Fatal(msg)
		return
	}
	entry.Log(level, msg)
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.log(logrus.DebugLevel, msg, args) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.log(logrus.InfoLevel, msg, args) }
func (l *RollbarLogger) Warn(msg string, args ...interface{})  { l.log(logrus.WarnLevel, msg, args) }
func (l *RollbarLogger) Error(msg string, args ...interface{}) { l.log(logrus.ErrorLevel, msg, args) }
func (l *RollbarLogger) Fatal(msg string, args ...interface{}) { l.log(logrus.FatalLevel, msg, args) }
