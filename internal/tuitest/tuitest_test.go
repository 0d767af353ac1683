package tuitest

import (
	"bytes"
	"testing"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[Hfirst  \r\nframe\x1b[2J\x1b[H\x1b[1mprompt-maker\x1b[0m\n\n")
	frames := parseFrames(raw)
	if len(frames) != 2 {
		t.Fatalf("frame count mismatch: got %d want 2", len(frames))
	}
	if frames[0].Plain != "first\nframe" {
		t.Fatalf("first frame mismatch: got %q", frames[0].Plain)
	}
	if frames[1].Plain != "prompt-maker" || frames[1].Index != 1 {
		t.Fatalf("second frame mismatch: got %+v", frames[1])
	}
	rec := &Recording{Frames: frames}
	if !rec.Contains("prompt-maker") || rec.Contains("missing") {
		t.Fatal("Contains should only match rendered text")
	}
	if last, ok := rec.FinalFrame(); !ok || last.Index != 1 {
		t.Fatalf("final frame mismatch: %+v", last)
	}
}

func TestParseFramesWithoutClears(t *testing.T) {
	frames := parseFrames([]byte("plain output\n"))
	if len(frames) != 1 || frames[0].Plain != "plain output" {
		t.Fatalf("unexpected frames: %+v", frames)
	}
}

func TestStripANSIRemovesPasteMarkers(t *testing.T) {
	got := stripANSI("\x1b[?2004h\x1b[200~hi\x1b[201~\x1b]11;?\x07")
	if got != "hi" {
		t.Fatalf("strip mismatch: got %q want %q", got, "hi")
	}
}

func TestTerminalResponderAnswersQueries(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("abc\x1b]11;?\x07def\x1b["))
	tr.Process([]byte("6n"))
	want := "\x1b]11;rgb:0000/0000/0000\x07\x1b[1;1R"
	if out.String() != want {
		t.Fatalf("responses mismatch: got %q want %q", out.String(), want)
	}
}

func TestPasteWrapsMarkers(t *testing.T) {
	if got := string(Paste("x")); got != "\x1b[200~x\x1b[201~" {
		t.Fatalf("paste mismatch: got %q", got)
	}
}
