package converter

import (
	"encoding/json"
	"testing"
)

func TestResultAccessors(t *testing.T) {
	r := newResult()
	r.set(OutputSeconds, 45.59)
	r.set(OutputFrames, int64(1366))

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if got, ok := r.Seconds(); !ok || got != 45.59 {
		t.Errorf("Seconds() = (%v, %v), want (45.59, true)", got, ok)
	}
	if got, ok := r.Frames(); !ok || got != 1366 {
		t.Errorf("Frames() = (%v, %v), want (1366, true)", got, ok)
	}
	if _, ok := r.Timecode(); ok {
		t.Error("Timecode() ok = true, want false")
	}
	if _, ok := r.Value(OutputTimecode); ok {
		t.Error("Value(timecode) ok = true, want false")
	}
}

func TestResultOverwriteKeepsPosition(t *testing.T) {
	r := newResult()
	r.set(OutputFrames, int64(1))
	r.set(OutputTimecode, "0:01")
	r.set(OutputFrames, int64(2))

	want := []OutputFormat{OutputFrames, OutputTimecode}
	got := r.Formats()
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if frames, _ := r.Frames(); frames != 2 {
		t.Errorf("Frames() = %d, want 2", frames)
	}
}

func TestResultString(t *testing.T) {
	r := newResult()
	r.set(OutputSeconds, 45.59)
	r.set(OutputFrames, int64(1366))
	r.set(OutputTimecode, "45:17")

	want := "{seconds: 45.59, frames: 1366, timecode: 45:17}"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestResultMarshalJSONOrdered(t *testing.T) {
	result, err := Convert(InputTimecode, []OutputFormat{OutputFrames, OutputTimecode, OutputSeconds}, StringValue("0:45.59"), Params{FPS: 29.97})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	want := `{"seconds":45.59,"frames":1366,"timecode":"45:17"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestResultMarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(newResult())
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Marshal = %s, want {}", data)
	}
}
