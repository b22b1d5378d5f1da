package testhelper

import (
	"errors"
	"testing"
)

func TestTestLogger(t *testing.T) {
	t.Run("Basic Logging", func(t *testing.T) {
		logger := NewTestLogger(true)

		logger.LogInfo("test info", map[string]interface{}{"key": "value"})
		logger.LogError(errors.New("test error"), "error message")
		logger.LogWarn("test warning", nil)
		logger.LogDebug("test debug", nil)

		if len(logger.GetInfoMessages()) != 1 {
			t.Error("Expected 1 info message")
		}
		if len(logger.GetErrorMessages()) != 1 {
			t.Error("Expected 1 error message")
		}
		if len(logger.GetWarnMessages()) != 1 {
			t.Error("Expected 1 warning message")
		}
		if len(logger.GetDebugMessages()) != 1 {
			t.Error("Expected 1 debug message")
		}
	})

	t.Run("Debug Disabled", func(t *testing.T) {
		logger := NewTestLogger(false)

		logger.LogDebug("test debug", nil)
		if len(logger.GetDebugMessages()) != 0 {
			t.Error("Expected no debug messages when debug is disabled")
		}
	})

	t.Run("Field Merging", func(t *testing.T) {
		logger := NewTestLogger(true)
		withFields := logger.WithFields(map[string]interface{}{
			"base": "value",
		})

		withFields.LogInfo("test", map[string]interface{}{
			"additional": "value",
		})

		messages := logger.GetInfoMessages()
		if len(messages) != 1 {
			t.Fatal("Expected derived logger to record into the parent")
		}

		fields := messages[0].Fields
		if fields["base"] != "value" || fields["additional"] != "value" {
			t.Error("Expected both base and additional fields to be present")
		}
	})

	t.Run("Request and Session IDs", func(t *testing.T) {
		logger := NewTestLogger(false)

		logger.WithRequestID("req-1").WithSessionID("sess-1").LogWarn("slow upload", nil)

		fields := logger.GetWarnMessages()[0].Fields
		if fields["requestID"] != "req-1" || fields["sessionID"] != "sess-1" {
			t.Errorf("Expected scoped IDs, got %v", fields)
		}
	})

	t.Run("Clear Messages", func(t *testing.T) {
		logger := NewTestLogger(true)
		logger.LogInfo("a", nil)
		logger.LogFatal(errors.New("b"), "c")
		logger.ClearMessages()

		if len(logger.GetInfoMessages())+len(logger.GetErrorMessages()) != 0 {
			t.Error("Expected no messages after clear")
		}
	})
}
