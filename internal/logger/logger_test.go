package logger

import (
	"bytes"
	"os"
	"testing"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebugAndInfo_GatedOnVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("skipped entry %s", "a.csv")
	Info("loaded %d documents", 3)
	if buf.Len() != 0 {
		t.Errorf("expected no output when not verbose, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("skipped entry %s", "a.csv")
	Info("loaded %d documents", 3)

	want := "[DEBUG] skipped entry a.csv\n[INFO] loaded 3 documents\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("bad rule pattern %q", "([x")

	if buf.String() != "[WARN] bad rule pattern \"([x\"\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
