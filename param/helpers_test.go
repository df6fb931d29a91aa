package param

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/paramspace/logger"
)

// captureWarnings routes the global logger to an observer core for the
// duration of the test and returns the recorded entries.
func captureWarnings(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { logger.SetLogger(nil) })
	return logs
}
