package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"
)

func TestObservedLoggerLevels(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("projected", "pixel", []float64{1, 2})
	logger.SetLevel(WARN)
	logger.Info("dropped")
	logger.Warnf("kept %d", 1)
	logger.Errorw("also kept", "camera", "NAVCAM_LEFT")

	entries := logs.All()
	test.That(t, len(entries), test.ShouldEqual, 3)
	test.That(t, entries[0].Message, test.ShouldEqual, "projected")
	test.That(t, entries[0].Level, test.ShouldEqual, zapcore.DebugLevel)
	test.That(t, entries[0].ContextMap()["pixel"], test.ShouldResemble, []interface{}{1., 2.})
	test.That(t, entries[1].Message, test.ShouldEqual, "kept 1")
	test.That(t, entries[2].ContextMap()["camera"], test.ShouldEqual, "NAVCAM_LEFT")
}

func loggerNamed(name string) func(observer.LoggedEntry) bool {
	return func(e observer.LoggedEntry) bool {
		return e.LoggerName == name
	}
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("frustum")
	sub.Info("built")
	test.That(t, logs.Filter(loggerNamed("frustum")).Len(), test.ShouldEqual, 1)

	// child level is independent of the parent
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	sub.Warn("dropped")
	test.That(t, logs.FilterMessage("dropped").Len(), test.ShouldEqual, 0)

	nested := sub.Sublogger("cache")
	test.That(t, nested.GetLevel(), test.ShouldEqual, ERROR)
	nested.Error("miss")
	test.That(t, logs.Filter(loggerNamed("frustum.cache")).Len(), test.ShouldEqual, 1)
}

func TestBlankLogger(t *testing.T) {
	logger := NewBlankLogger("blank")
	logger.Errorw("discarded", "camera", "NAVCAM_LEFT")
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestLevelFromString(t *testing.T) {
	for in, want := range map[string]Level{"debug": DEBUG, "INFO": INFO, "Warn": WARN, "warning": WARN, "error": ERROR} {
		got, err := LevelFromString(in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, want)
		test.That(t, got.AsZap().String(), test.ShouldEqual, map[Level]string{
			DEBUG: "debug", INFO: "info", WARN: "warn", ERROR: "error",
		}[want])
	}
	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, Level(42).String(), test.ShouldEqual, "Unknown")
}
