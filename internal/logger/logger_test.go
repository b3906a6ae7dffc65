package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Feature: quotation-platform, Property 11: Logs are structured
// Validates: Requirements 13.1
func TestProperty_LogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every log entry is a parseable JSON object", prop.ForAll(
		func(message string) bool {
			var buf bytes.Buffer

			encoderConfig := zap.NewProductionEncoderConfig()
			core := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(&buf),
				zapcore.DebugLevel,
			)
			logger := zap.New(core)

			logger.Info(message, zap.String("component", "test"))
			logger.Sync()

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Logf("log output is not valid JSON: %v", err)
				return false
			}
			return entry["msg"] == message && entry["component"] == "test"
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestNew_ProductionAndDevelopment(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		logger, err := New(env)
		if err != nil {
			t.Errorf("New(%q) returned error: %v", env, err)
			continue
		}
		if logger == nil {
			t.Errorf("New(%q) returned nil logger", env)
		}
	}
}

func TestNewWithDefaults_NeverNil(t *testing.T) {
	if NewWithDefaults() == nil {
		t.Fatal("NewWithDefaults returned nil")
	}
}
