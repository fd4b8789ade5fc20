package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestLoggerWritesComponentAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info("BOOT", "service starting")
	log.Error("DATABASE", "connection refused")

	out := buf.String()
	assert.Contains(t, out, "INFO  [BOOT] service starting")
	assert.Contains(t, out, "ERROR [DATABASE] connection refused")
}

func TestLoggerDropsDebugUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("REQUEST", "hidden")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug("REQUEST", "shown")
	assert.Contains(t, buf.String(), "[REQUEST] shown")
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	code := -1
	log.exit = func(c int) { code = c }
	log.Fatal("SERVER", "bind failed")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "FATAL [SERVER] bind failed")
}

func TestDomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.LogBooking("SAVE", "order_1", "persisted")
	log.LogMail("SEND", "a@b.c", "delivered")
	log.LogAPI("GET", "/get-bookings", "200", "1ms")

	out := buf.String()
	assert.Contains(t, out, "[BOOKING] SAVE [order_1] persisted")
	assert.Contains(t, out, "[MAIL] SEND <a@b.c> delivered")
	assert.Contains(t, out, "[API] GET /get-bookings - 200 (1ms)")
}

func TestNewLoggerMirrorsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking.log")

	log := NewLogger(true, path)
	log.Debug("CACHE", "fill skipped")
	log.Info("BOOKING", "saved")
	log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG [CACHE] fill skipped")
	assert.Contains(t, string(data), "INFO  [BOOKING] saved")
}
