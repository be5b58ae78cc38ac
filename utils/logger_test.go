package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorLoggerEmitsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger.SetOutput(&buf)
	defer InitLogger()

	// ErrorLogger filters below ErrorLevel, so Printf (Info) is dropped
	// and Errorf is the one that actually reaches the output.
	ErrorLogger.Printf("dropped %s", "line")
	assert.Empty(t, buf.String())

	ErrorLogger.Errorf("failed to save booking %d", 42)
	assert.Contains(t, buf.String(), "failed to save booking 42")
	assert.Contains(t, buf.String(), "level=error")
}
