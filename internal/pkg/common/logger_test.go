package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObserver(t *testing.T, mode string) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prevLogger, prevMode := Logger, LogMode
	Logger, LogMode = zap.New(core), mode
	t.Cleanup(func() { Logger, LogMode = prevLogger, prevMode })
	return logs
}

func TestLogFiltersSensitiveFields(t *testing.T) {
	logs := withObserver(t, "")

	LogInfo("成分檢查完成",
		zap.Strings("ingredients", []string{"Peanut Butter"}),
		zap.Int("match_count", 1),
	)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.NotContains(t, ctx, "ingredients")
		assert.Equal(t, int64(1), ctx["match_count"])
	}
}

func TestConciseModeDropsChattyInfo(t *testing.T) {
	logs := withObserver(t, "concise")

	LogInfo("成分檢查完成")
	LogInfo("請求完成")
	LogWarn("用戶端錯誤")

	assert.Equal(t, 2, logs.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}
