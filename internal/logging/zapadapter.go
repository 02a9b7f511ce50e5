package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter forwards zap log entries to our Logger so that libraries
// speaking zap share the service's output and level filtering.
type ZapAdapter struct {
	logger *Logger
}

// NewZapAdapter wraps logger as a zapcore.Core.
func NewZapAdapter(logger *Logger) *ZapAdapter {
	return &ZapAdapter{logger: logger}
}

func mapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarnLevel
	default:
		// DPanic, Panic and Fatal all surface as errors here
		return ErrorLevel
	}
}

// Enabled implements zapcore.Core.
func (a *ZapAdapter) Enabled(level zapcore.Level) bool {
	return a.logger.enabled(mapLevel(level))
}

// With implements zapcore.Core.
func (a *ZapAdapter) With(fields []zapcore.Field) zapcore.Core {
	return &ZapAdapter{logger: a.logger.WithFields(fieldMap(fields))}
}

// Check implements zapcore.Core.
func (a *ZapAdapter) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(ent.Level) {
		return ce.AddCore(ent, a)
	}
	return ce
}

// Write implements zapcore.Core.
func (a *ZapAdapter) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	f := fieldMap(fields)
	if ent.Caller.Defined {
		f["caller"] = ent.Caller.String()
	}
	a.logger.log(mapLevel(ent.Level), ent.Message, f)
	return nil
}

// Sync implements zapcore.Core.
func (a *ZapAdapter) Sync() error { return nil }

// NewZapLogger returns a *zap.Logger backed by our Logger.
func NewZapLogger(logger *Logger) *zap.Logger {
	return zap.New(NewZapAdapter(logger))
}

// fieldMap renders zap fields through a throwaway map encoder, which
// handles every field type without replicating zap's switch.
func fieldMap(fields []zapcore.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}
	return enc.Fields
}
