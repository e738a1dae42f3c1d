package converter

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// NoteEvent is a note onset inside a MIDI file, located by its absolute
// tick position.
type NoteEvent struct {
	Track    int
	Tick     int64
	Note     uint8
	Velocity uint8
}

// MIDITiming holds the timing-relevant contents of a Standard MIDI File:
// the tick resolution, the first tempo found, and every note onset. Files
// without a tempo event default to 120 bpm.
type MIDITiming struct {
	TicksPerBeat int
	Tempo        float64
	Notes        []NoteEvent
}

// ParseMIDITimingFile reads a MIDI file and extracts its timing data.
func ParseMIDITimingFile(filename string) (*MIDITiming, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return ParseMIDITiming(data)
}

// ParseMIDITiming parses MIDI data and extracts its timing data.
func ParseMIDITiming(data []byte) (*MIDITiming, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	timing := &MIDITiming{
		TicksPerBeat: DefaultTicksPerBeat,
		Tempo:        120.0,
	}

	// Get ticks per quarter note from the time format
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		timing.TicksPerBeat = int(mt.Resolution())
	}

	tempoSeen := false
	for trackNo, track := range s.Tracks {
		var currentTick int64
		for _, ev := range track {
			currentTick += int64(ev.Delta)

			msg := ev.Message

			// Check for tempo meta message (FF 51 03 ...)
			if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
				microsecondsPerBeat := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				if microsecondsPerBeat > 0 && !tempoSeen {
					timing.Tempo = 60000000.0 / float64(microsecondsPerBeat)
					tempoSeen = true
				}
			}

			// Note On (0x9n nn vv) with nonzero velocity marks an onset;
			// note offs and running-status shortcuts are not relevant here.
			if len(msg) >= 3 {
				status := msg[0]
				if status >= 0x90 && status <= 0x9F && msg[2] > 0 {
					timing.Notes = append(timing.Notes, NoteEvent{
						Track:    trackNo,
						Tick:     currentTick,
						Note:     msg[1],
						Velocity: msg[2],
					})
				}
			}
		}
	}

	return timing, nil
}

// BPM returns the file tempo rounded to the nearest whole beat per minute.
func (m *MIDITiming) BPM() int {
	return int(math.Round(m.Tempo))
}

// ConvertNotes converts the tick position of every note onset to the
// requested target formats. The file's own tempo and resolution apply
// unless p overrides them; the frame rate always comes from p.
func (m *MIDITiming) ConvertNotes(targets []OutputFormat, p Params) ([]*Result, error) {
	if p.BPM == 0 {
		p.BPM = m.BPM()
	}
	if p.TicksPerBeat == 0 {
		p.TicksPerBeat = m.TicksPerBeat
	}

	results := make([]*Result, 0, len(m.Notes))
	for _, note := range m.Notes {
		res, err := Convert(InputTicks, targets, IntValue(note.Tick), p)
		if err != nil {
			return nil, fmt.Errorf("note at tick %d: %w", note.Tick, err)
		}
		results = append(results, res)
	}
	return results, nil
}
