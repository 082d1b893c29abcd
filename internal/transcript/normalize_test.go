package transcript

import (
	"strings"
	"testing"
)

func TestNormalize_StripsTimestampsAndMarkers(t *testing.T) {
	raw := "[00:01:15] Advisor: What is your name?\nClient: [inaudible] My name is Dan."
	got := Normalize(raw)

	if strings.Contains(got, "[00:01:15]") {
		t.Errorf("timestamp survived normalization: %q", got)
	}
	if strings.Contains(got, "[inaudible]") {
		t.Errorf("disfluency marker survived normalization: %q", got)
	}
	if !strings.Contains(got, "My name is Dan.") {
		t.Errorf("content lost: %q", got)
	}
}

func TestNormalize_RemovesFillerWords(t *testing.T) {
	got := Normalize("Client: I, um, work at, uh, Vertex.")
	if strings.Contains(strings.ToLower(got), "um") || strings.Contains(strings.ToLower(got), "uh") {
		t.Errorf("filler words survived: %q", got)
	}
	if !strings.Contains(got, "Vertex") {
		t.Errorf("content lost: %q", got)
	}
}

func TestNormalize_FillerBoundaries(t *testing.T) {
	// Word-bounded removal: "umbrella" keeps its um.
	got := Normalize("Client: I keep an umbrella nearby.")
	if !strings.Contains(got, "umbrella") {
		t.Errorf("expected umbrella to survive, got %q", got)
	}
}

func TestNormalize_PreservesLineBreaks(t *testing.T) {
	raw := "Advisor: What   is your name?\n\n\nClient: Dan."
	got := Normalize(raw)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "Advisor: What is your name?" {
		t.Errorf("whitespace not collapsed within line: %q", lines[0])
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	if got := Normalize("   \n  \n"); got != "" {
		t.Errorf("expected empty output for blank lines, got %q", got)
	}
}
