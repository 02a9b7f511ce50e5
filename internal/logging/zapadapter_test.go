package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestZapLoggerForwardsEntries(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(DebugLevel, &buf))

	zl.Info("hawk dispatched", zap.String("run_id", "run_1"), zap.Int("dim", 2))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hawk dispatched", entry["message"])
	assert.Equal(t, "run_1", entry["run_id"])
	assert.Equal(t, float64(2), entry["dim"])
}

func TestZapLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(WarnLevel, &buf))

	zl.Debug("ignored")
	zl.Info("ignored too")
	assert.Zero(t, buf.Len())

	zl.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf).WithFields(map[string]interface{}{"service": "raptr"})

	logger.WithField("run_id", "run_7").Info("Run accepted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "raptr", entry["service"])
	assert.Equal(t, "run_7", entry["run_id"])
}
