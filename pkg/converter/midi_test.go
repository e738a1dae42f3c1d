package converter

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// buildTestSMF writes a single-track MIDI file with note onsets at the
// given ascending ticks. A zero usPerBeat omits the tempo event.
func buildTestSMF(t *testing.T, ticksPerBeat uint16, usPerBeat uint32, noteTicks []uint32) []byte {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var track smf.Track
	if usPerBeat > 0 {
		track.Add(0, smf.Message([]byte{
			0xFF, 0x51, 0x03,
			byte(usPerBeat >> 16),
			byte(usPerBeat >> 8),
			byte(usPerBeat),
		}))
	}

	var currentTick uint32
	for _, tick := range noteTicks {
		track.Add(tick-currentTick, midi.NoteOn(0, 60, 100))
		track.Add(10, midi.NoteOff(0, 60))
		currentTick = tick + 10
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		t.Fatalf("failed to add track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("failed to write MIDI: %v", err)
	}
	return buf.Bytes()
}

func TestParseMIDITiming(t *testing.T) {
	data := buildTestSMF(t, 480, 500000, []uint32{0, 480, 960})

	timing, err := ParseMIDITiming(data)
	if err != nil {
		t.Fatalf("ParseMIDITiming() error = %v", err)
	}

	if timing.TicksPerBeat != 480 {
		t.Errorf("TicksPerBeat = %d, want 480", timing.TicksPerBeat)
	}
	if timing.BPM() != 120 {
		t.Errorf("BPM() = %d, want 120", timing.BPM())
	}
	if len(timing.Notes) != 3 {
		t.Fatalf("parsed %d notes, want 3", len(timing.Notes))
	}
	for i, want := range []int64{0, 480, 960} {
		if timing.Notes[i].Tick != want {
			t.Errorf("Notes[%d].Tick = %d, want %d", i, timing.Notes[i].Tick, want)
		}
	}
	if timing.Notes[0].Note != 60 {
		t.Errorf("Notes[0].Note = %d, want 60", timing.Notes[0].Note)
	}
	if timing.Notes[0].Velocity != 100 {
		t.Errorf("Notes[0].Velocity = %d, want 100", timing.Notes[0].Velocity)
	}
}

func TestParseMIDITimingDefaultTempo(t *testing.T) {
	data := buildTestSMF(t, 96, 0, []uint32{96})

	timing, err := ParseMIDITiming(data)
	if err != nil {
		t.Fatalf("ParseMIDITiming() error = %v", err)
	}
	if timing.BPM() != 120 {
		t.Errorf("BPM() = %d, want default 120", timing.BPM())
	}
	if timing.TicksPerBeat != 96 {
		t.Errorf("TicksPerBeat = %d, want 96", timing.TicksPerBeat)
	}
}

func TestParseMIDITimingInvalidData(t *testing.T) {
	if _, err := ParseMIDITiming([]byte("not a midi file")); err == nil {
		t.Error("ParseMIDITiming() expected error for junk data, got nil")
	}
}

func TestMIDITimingBPMRounding(t *testing.T) {
	tests := []struct {
		tempo float64
		want  int
	}{
		{120.0, 120},
		{133.7, 134},
		{185.0, 185},
		{99.4, 99},
	}

	for _, tt := range tests {
		timing := &MIDITiming{Tempo: tt.tempo}
		if got := timing.BPM(); got != tt.want {
			t.Errorf("BPM() with tempo %v = %d, want %d", tt.tempo, got, tt.want)
		}
	}
}

func TestConvertNotes(t *testing.T) {
	// 312500 microseconds per beat is exactly 192 bpm.
	data := buildTestSMF(t, 480, 312500, []uint32{240, 480})

	timing, err := ParseMIDITiming(data)
	if err != nil {
		t.Fatalf("ParseMIDITiming() error = %v", err)
	}
	if timing.BPM() != 192 {
		t.Fatalf("BPM() = %d, want 192", timing.BPM())
	}

	results, err := timing.ConvertNotes([]OutputFormat{OutputTimecode}, Params{FPS: 29.97})
	if err != nil {
		t.Fatalf("ConvertNotes() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("ConvertNotes() returned %d results, want 2", len(results))
	}

	if tc, ok := results[0].Timecode(); !ok || tc != "0:04" {
		t.Errorf("results[0].Timecode() = (%q, %v), want (\"0:04\", true)", tc, ok)
	}
}

func TestConvertNotesMissingFPS(t *testing.T) {
	data := buildTestSMF(t, 480, 500000, []uint32{480})

	timing, err := ParseMIDITiming(data)
	if err != nil {
		t.Fatalf("ParseMIDITiming() error = %v", err)
	}

	_, err = timing.ConvertNotes([]OutputFormat{OutputFrames}, Params{})
	if err == nil {
		t.Fatal("ConvertNotes() expected error, got nil")
	}
	if kind := KindOf(err); kind != KindMissingParam {
		t.Errorf("ConvertNotes() error kind = %q, want %q", kind, KindMissingParam)
	}
}
