package log

import "testing"

func TestInitLevels(t *testing.T) {
	for _, lvl := range []string{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		Init(lvl, "stderr")
		if Logger() == nil {
			t.Fatalf("expected non-nil logger for level %q", lvl)
		}
	}
}

func TestInitInvalidLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid log level")
		}
	}()
	Init("nonsense", "stderr")
}
