package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdaerrors "github.com/YuminosukeSato/mda/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("scatter matrix computed", FeaturesKey, 4)
	logger.Info("training finished", OperationKey, OperationFit)
	logger.Error("training failed", fmt.Errorf("boom"), ErrorCodeKey, ErrorInvalidInput)

	require.NotEmpty(t, buffer.String())
	assert.Equal(t, []string{"scatter matrix computed", "training finished", "training failed"}, logger.Messages())
	assert.True(t, logger.ContainsField(FeaturesKey, 4.0))
	assert.True(t, logger.ContainsField("error", "boom"))
	assert.True(t, logger.ContainsField(ErrorCodeKey, ErrorInvalidInput))
}

func TestTestLoggerWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	ctxLogger := logger.With(ModelNameKey, "MDA", ComponentKey, "mda")
	ctxLogger.Info("fit", OperationKey, OperationFit)
	logger.Debug("dropped")

	assert.True(t, logger.ContainsField(ModelNameKey, "MDA"))
	assert.True(t, logger.ContainsField(OperationKey, OperationFit))
	assert.False(t, logger.ContainsMessage("dropped"))
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelInfo)

	logger := p.GetLoggerWithName("mda").With(ModelNameKey, "MDA")
	logger.Debug("hidden")
	logger.Info("training started", FeaturesKey, 3, SamplesKey, 5)
	logger.Error("training failed", fmt.Errorf("bad shape"), OperationKey, OperationFit)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "training started", lines[0]["message"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "mda", lines[0][ComponentKey])
	assert.Equal(t, "MDA", lines[0][ModelNameKey])
	assert.Equal(t, 3.0, lines[0][FeaturesKey])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "bad shape", lines[1]["error"])
	assert.Equal(t, OperationFit, lines[1][OperationKey])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	p.SetLevel(LevelDebug)
	assert.True(t, p.GetLogger().Enabled(context.Background(), LevelDebug))
}

func TestSetupZerologRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	SetupZerolog(&buf, LevelInfo)
	defer func() {
		mdaerrors.SetZerologWarnFunc(nil)
		SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelInfo))
	}()

	mdaerrors.Warn(mdaerrors.NewRankWarning("MDA.Fit", 2, 4))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "RankWarning", lines[0]["type"])
	assert.Equal(t, 2.0, lines[0]["rank"])

	GetLoggerWithName("viz").Info("saved")
	lines = decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "viz", lines[1][ComponentKey])
}

func TestToLogLevel(t *testing.T) {
	level, err := ToLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())

	level, err = ToLogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, "WARN", level.String())

	_, err = ToLogLevel("verbose")
	var vErr *mdaerrors.ValidationError
	assert.True(t, mdaerrors.As(err, &vErr))
}

func TestSlogProvider(t *testing.T) {
	var buf bytes.Buffer
	p := NewSlogProvider(&buf, slog.LevelInfo)

	logger := p.GetLoggerWithName("mda").With(ModelNameKey, "MDA")
	logger.Debug("dropped")
	logger.Info("fitted", RankKey, 4)
	logger.Error("fit failed", mdaerrors.New("boom"), ErrorCodeKey, ErrorRankDeficient)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "INFO", lines[0]["severity"])
	assert.Equal(t, "fitted", lines[0]["message"])
	assert.Equal(t, "mda", lines[0][ComponentKey])
	assert.Equal(t, "MDA", lines[0][ModelNameKey])
	assert.Equal(t, 4.0, lines[0][RankKey])

	assert.Equal(t, "ERROR", lines[1]["severity"])
	assert.Equal(t, "boom", lines[1][ErrAttrKey])
	assert.NotEmpty(t, lines[1][StacktraceAttrKey])

	// the level is shared with loggers handed out earlier
	p.SetLevel(LevelDebug)
	assert.True(t, logger.Enabled(context.Background(), LevelDebug))
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}
