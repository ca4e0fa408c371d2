package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is an io.Writer for NewZapLogger that forwards error-level
// entries to Sentry. Only the "prod" and "dev" environments report.
type SentryHook struct {
	appEnv  string
	appName string
	l       *Logger
}

func NewSentryHook(appEnv, appName string, maxErrorDepth int, isDebug bool, dsn string) (*SentryHook, error) {
	if dsn == "" {
		return nil, errors.New("sentry: no DSN")
	}
	if maxErrorDepth == 0 {
		maxErrorDepth = _sentryMaxErrorDepth
	}

	transport := sentry.NewHTTPTransport()
	transport.Timeout = _sentryServerRequestTimeout

	err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    maxErrorDepth,
		ServerName:       appName,
		Transport:        transport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "sentry init")
	}

	return &SentryHook{appEnv: appEnv, appName: appName}, nil
}

// Enabled reports whether entries are forwarded in this environment.
func (h *SentryHook) Enabled() bool {
	return h.appEnv == "prod" || h.appEnv == "dev"
}

// entry mirrors the fields written by Logger.
type entry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppEnv     string `json:"app_env"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`

	// forecast context attached by the service and handlers
	Route    string `json:"route"`
	Location string `json:"location"`
	Feed     string `json:"feed"`
}

func (h *SentryHook) Write(p []byte) (int, error) {
	if !h.Enabled() {
		return len(p), nil
	}

	var e entry
	if err := json.Unmarshal(p, &e); err != nil {
		h.report(errors.Wrap(err, "[SentryHook] unmarshal entry"))
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(e.Level)
	if err != nil {
		h.report(errors.Wrap(err, "[SentryHook] parse zap level"))
		return len(p), nil
	}
	if level < zapcore.ErrorLevel || e.Message == "" {
		return len(p), nil
	}

	sentry.CaptureEvent(h.event(level, e))
	return len(p), nil
}

func (h *SentryHook) event(level zapcore.Level, e entry) *sentry.Event {
	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.Level = mapLevel(level)
	event.Message = e.Message
	if ts, err := time.Parse(TimestampLayout, e.Timestamp); err == nil {
		event.Timestamp = ts
	}

	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = e.Error
	event.Extra["CallerFile"] = e.CallerFile
	event.Extra["CallerLine"] = e.CallerLine
	event.Extra["CallerFunc"] = e.CallerFunc
	event.Extra["Stack"] = e.Stack

	for tag, v := range map[string]string{"route": e.Route, "location": e.Location, "feed": e.Feed} {
		if v != "" {
			event.Tags[tag] = v
		}
	}

	event.Exception = append(event.Exception, sentry.Exception{
		Type:       e.Message,
		Value:      e.Error,
		Stacktrace: sentry.NewStacktrace(),
	})
	return event
}

func (h *SentryHook) report(err error) {
	// the hook is itself a logger sink, so fall back to the std logger
	// when no separate logger has been attached
	if h.l != nil {
		h.l.Warning(err.Error())
		return
	}
	log.Println(err.Error())
}

func (h *SentryHook) SetLogger(logger *Logger) {
	if logger != nil {
		h.l = logger
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelDebug
	}
}
