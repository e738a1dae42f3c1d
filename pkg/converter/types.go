// Package converter converts musical time (MIDI ticks, beats, measures,
// audio timecode) to video time (frames, timecode, seconds).
//
// Every conversion funnels through one canonical pivot value, a number of
// seconds. Convert validates the raw input, turns it into seconds, then
// renders each requested output format from that pivot.
package converter

// Timing constants.
const (
	// DefaultTicksPerBeat is the standard MIDI resolution in ticks per
	// quarter note.
	DefaultTicksPerBeat = 480

	// SecondsPerMinute relates per-minute rates (bpm) to seconds.
	SecondsPerMinute = 60

	// DefaultRoundingThreshold is the fractional-frame cutoff at which a
	// frame count rounds up instead of truncating. It sits above one half
	// to absorb floating-point drift at frame boundaries with non-integer
	// rates such as 29.97.
	DefaultRoundingThreshold = 0.75
)

// InputFormat identifies a source time representation. The set is fixed;
// there is no runtime extension.
type InputFormat string

const (
	InputTicks       InputFormat = "ticks"
	InputBeats       InputFormat = "beats"
	InputMeasures    InputFormat = "measures"
	InputTimecode    InputFormat = "timecode"
	InputVideoFrames InputFormat = "video_frames"
)

// OutputFormat identifies a target time representation. The set is fixed.
type OutputFormat string

const (
	OutputFrames   OutputFormat = "frames"
	OutputTimecode OutputFormat = "timecode"
	OutputSeconds  OutputFormat = "seconds"
)

// InputFormats returns the accepted input formats.
func InputFormats() []InputFormat {
	return []InputFormat{InputTicks, InputBeats, InputMeasures, InputTimecode, InputVideoFrames}
}

// OutputFormats returns the accepted output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputFrames, OutputTimecode, OutputSeconds}
}

// ParseInputFormat parses s as an input format name.
func ParseInputFormat(s string) (InputFormat, error) {
	switch f := InputFormat(s); f {
	case InputTicks, InputBeats, InputMeasures, InputTimecode, InputVideoFrames:
		return f, nil
	}
	return "", errorf(KindUnknownFormat, "unknown input format %q", s)
}

// ParseOutputFormat parses s as an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFrames, OutputTimecode, OutputSeconds:
		return f, nil
	}
	return "", errorf(KindUnknownFormat, "unknown output format %q", s)
}

// Params carries the tempo and frame-rate context for a conversion. Zero
// values mean "not supplied"; a format that needs an unsupplied parameter
// fails with a missing-parameter error. A zero TicksPerBeat falls back to
// DefaultTicksPerBeat.
type Params struct {
	BPM             int     // beats per minute, for ticks/beats/measures input
	FPS             float64 // frames per second, for video_frames input and frame-based output
	TicksPerBeat    int     // MIDI resolution, for ticks input
	NotesPerMeasure int     // quarter notes per measure, for measures input
}

func (p Params) ticksPerBeat() int {
	if p.TicksPerBeat == 0 {
		return DefaultTicksPerBeat
	}
	return p.TicksPerBeat
}
