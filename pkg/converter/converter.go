package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TicksToSeconds converts a MIDI tick count to seconds at the given tempo
// and resolution.
func TicksToSeconds(ticks int64, bpm, ticksPerBeat int) (float64, error) {
	if ticksPerBeat == 0 {
		return 0, errorf(KindDivideByZero, "ticks conversion: ticks per beat is zero")
	}
	if bpm == 0 {
		return 0, errorf(KindDivideByZero, "ticks conversion: bpm is zero")
	}
	return float64(ticks) / float64(ticksPerBeat) / float64(bpm) * SecondsPerMinute, nil
}

// BeatsToSeconds converts a beat count to seconds at the given tempo.
func BeatsToSeconds(beats int64, bpm int) (float64, error) {
	if bpm == 0 {
		return 0, errorf(KindDivideByZero, "beats conversion: bpm is zero")
	}
	return float64(beats) / float64(bpm) * SecondsPerMinute, nil
}

// MeasuresToSeconds converts a measure count to seconds at the given tempo
// and measure length in quarter notes.
func MeasuresToSeconds(measures int64, bpm, notesPerMeasure int) (float64, error) {
	if bpm == 0 {
		return 0, errorf(KindDivideByZero, "measures conversion: bpm is zero")
	}
	return float64(measures) * float64(notesPerMeasure) / float64(bpm) * SecondsPerMinute, nil
}

// TimecodeToSeconds parses a "minutes:seconds" audio timecode, or a bare
// decimal string of seconds, into seconds. There is no hours field; the
// minutes component is unbounded and the seconds component may carry a
// fraction.
func TimecodeToSeconds(tc string) (float64, error) {
	if strings.Contains(tc, ":") {
		parts := strings.Split(tc, ":")
		if len(parts) != 2 {
			return 0, errorf(KindMalformedTimecode, "timecode %q must have a single minutes:seconds separator", tc)
		}
		minutes, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, errorf(KindMalformedTimecode, "timecode %q: bad minutes component", tc)
		}
		seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, errorf(KindMalformedTimecode, "timecode %q: bad seconds component", tc)
		}
		return minutes*SecondsPerMinute + seconds, nil
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(tc), 64)
	if err != nil {
		return 0, errorf(KindMalformedTimecode, "timecode %q is not a number", tc)
	}
	return seconds, nil
}

// VideoFramesToSeconds converts a frame count to seconds at the given
// frame rate, rounded to two decimal places with ties going to the even
// hundredth.
func VideoFramesToSeconds(frames int64, fps float64) (float64, error) {
	if fps == 0 {
		return 0, errorf(KindDivideByZero, "video_frames conversion: fps is zero")
	}
	return math.RoundToEven(float64(frames)/fps*100) / 100, nil
}

// SecondsToFrames converts seconds to a whole frame count at the given
// frame rate. The fractional part of a frame rounds up once it reaches
// frac and truncates below it; pass DefaultRoundingThreshold for the
// standard policy.
func SecondsToFrames(seconds, fps, frac float64) int64 {
	raw := seconds * fps
	whole := math.Floor(raw)
	if raw-whole >= frac {
		whole++
	}
	return int64(whole)
}

// SecondsToTimecode converts seconds to a "seconds:frames" video timecode
// at the given frame rate, with frac as in SecondsToFrames. The seconds
// field is the raw floored value and does not roll over into minutes, so
// 90 seconds renders as "90:NN"; only the frame field is bounded by the
// rate.
func SecondsToTimecode(seconds, fps, frac float64) string {
	frames := SecondsToFrames(seconds, fps, frac)
	wholeSeconds := math.Floor(seconds)
	frameField := int64(float64(frames) - wholeSeconds*fps)
	return fmt.Sprintf("%d:%02d", int64(wholeSeconds), frameField)
}

// validateInput enforces the raw-input contract: floats are rejected
// outright, the numeric formats must parse as whole numbers, and timecode
// travels as text for TimecodeToSeconds to judge.
func validateInput(v Value, ref InputFormat) (Value, error) {
	if v.isFloat() {
		return Value{}, errorf(KindInvalidInput,
			"floats are not accepted: supply timecode as a minutes:seconds or plain decimal string, other formats as whole numbers")
	}
	switch ref {
	case InputTicks, InputBeats, InputMeasures, InputVideoFrames:
		n, ok := v.whole()
		if !ok {
			return Value{}, errorf(KindMalformedNumber, "input for %s must be an integer", ref)
		}
		return IntValue(n), nil
	default:
		// Timecode, and anything outside the accepted set, passes through
		// as text; dispatch rejects unknown formats.
		return StringValue(v.String()), nil
	}
}

// toSeconds dispatches the validated input to its format's converter,
// checking the parameters that format requires.
func toSeconds(ref InputFormat, v Value, p Params) (float64, error) {
	switch ref {
	case InputTicks:
		if p.BPM == 0 {
			return 0, errorf(KindMissingParam, "bpm is required for ticks conversion")
		}
		return TicksToSeconds(v.i, p.BPM, p.ticksPerBeat())
	case InputBeats:
		if p.BPM == 0 {
			return 0, errorf(KindMissingParam, "bpm is required for beats conversion")
		}
		return BeatsToSeconds(v.i, p.BPM)
	case InputMeasures:
		if p.BPM == 0 || p.NotesPerMeasure == 0 {
			return 0, errorf(KindMissingParam, "bpm and notes_per_measure are required for measures conversion")
		}
		return MeasuresToSeconds(v.i, p.BPM, p.NotesPerMeasure)
	case InputTimecode:
		return TimecodeToSeconds(v.s)
	case InputVideoFrames:
		if p.FPS == 0 {
			return 0, errorf(KindMissingParam, "fps is required for video_frames conversion")
		}
		return VideoFramesToSeconds(v.i, p.FPS)
	default:
		return 0, errorf(KindUnknownFormat, "unknown input format %q", ref)
	}
}

// Convert validates value against ref, converts it to canonical seconds,
// then renders every requested target format into a Result. Seconds is
// seeded first when requested; the remaining targets follow in request
// order. Validation failures come back as-is; failures past validation
// share a "conversion failed" prefix and keep their kind.
func Convert(ref InputFormat, targets []OutputFormat, value Value, p Params) (*Result, error) {
	v, err := validateInput(value, ref)
	if err != nil {
		return nil, err
	}

	seconds, err := toSeconds(ref, v, p)
	if err != nil {
		return nil, wrapConversion(err)
	}

	result := newResult()
	remaining := make([]OutputFormat, 0, len(targets))
	for _, target := range targets {
		// Seconds is the pivot value itself, so it needs no frame rate
		// and no further transformation.
		if target == OutputSeconds {
			result.set(OutputSeconds, seconds)
			continue
		}
		remaining = append(remaining, target)
	}

	for _, target := range remaining {
		if p.FPS == 0 {
			return nil, wrapConversion(errorf(KindMissingParam, "fps is required for %s conversion", target))
		}
		switch target {
		case OutputFrames:
			result.set(OutputFrames, SecondsToFrames(seconds, p.FPS, DefaultRoundingThreshold))
		case OutputTimecode:
			result.set(OutputTimecode, SecondsToTimecode(seconds, p.FPS, DefaultRoundingThreshold))
		default:
			return nil, wrapConversion(errorf(KindUnknownFormat, "unknown output format %q", target))
		}
	}

	return result, nil
}
