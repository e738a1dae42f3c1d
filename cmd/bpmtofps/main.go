// Package main is the entry point for the bpmtofps CLI
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/JHGFD82/BPMtoFPS/pkg/api"
	"github.com/JHGFD82/BPMtoFPS/pkg/converter"
	"github.com/JHGFD82/BPMtoFPS/pkg/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	fromFormat      string
	bpm             int
	fps             float64
	division        int
	notesPerMeasure int
	outputs         []string
	allFormats      bool
	quiet           bool
	serverPort      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bpmtofps",
	Short: "Convert musical time to video time",
	Long: `bpmtofps converts positions in a piece of music (MIDI ticks, beats,
measures, audio timecode) into positions in a video timeline (frames,
timecode, seconds), so cuts can land exactly on the music.

Examples:
  bpmtofps ticks 240 -B 192 -F 29.97 -o timecode
  bpmtofps beats 24 -B 192 -F 29.97 -o frames -o timecode
  bpmtofps timecode 0:45.59 -F 29.97 -A
  bpmtofps convert 112 --from video_frames -F 30 -o seconds
  bpmtofps midi track.mid -F 29.97 -o timecode
  bpmtofps tui
  bpmtofps serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <value>",
	Short: "Convert a value from any input format",
	Long:  `Converts a single value; the input format is named with --from instead of a dedicated subcommand.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var ticksCmd = &cobra.Command{
	Use:   "ticks <count>",
	Short: "Convert a MIDI tick position",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicks,
}

var beatsCmd = &cobra.Command{
	Use:   "beats <count>",
	Short: "Convert a beat position",
	Args:  cobra.ExactArgs(1),
	RunE:  runBeats,
}

var measuresCmd = &cobra.Command{
	Use:   "measures <count>",
	Short: "Convert a measure position",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeasures,
}

var timecodeCmd = &cobra.Command{
	Use:   "timecode <minutes:seconds>",
	Short: "Convert an audio timecode position",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimecode,
}

var videoFramesCmd = &cobra.Command{
	Use:   "video-frames <count>",
	Short: "Convert a video frame position",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideoFrames,
}

var midiCmd = &cobra.Command{
	Use:   "midi <file.mid>",
	Short: "Convert every note onset in a MIDI file",
	Long: `Reads a Standard MIDI File, takes its tempo and resolution from the file
itself (overridable with --bpm and --division), and converts the tick
position of every note-on event.`,
	Args: cobra.ExactArgs(1),
	RunE: runMIDI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Convert command
	convertCmd.Flags().StringVar(&fromFormat, "from", "", "Input format (ticks, beats, measures, timecode, video_frames)")
	_ = convertCmd.MarkFlagRequired("from")

	// Conversion flags shared by every converting command
	conversionCmds := []*cobra.Command{convertCmd, ticksCmd, beatsCmd, measuresCmd, timecodeCmd, videoFramesCmd, midiCmd}
	for _, cmd := range conversionCmds {
		cmd.Flags().IntVarP(&bpm, "bpm", "B", 0, "Beats per minute (required for ticks, beats and measures)")
		cmd.Flags().Float64VarP(&fps, "fps", "F", 0, "Frames per second (required for frame-based output)")
		cmd.Flags().IntVarP(&division, "division", "D", 0, "MIDI ticks per beat (default 480; the midi command reads it from the file)")
		cmd.Flags().IntVarP(&notesPerMeasure, "notes-per-measure", "N", 0, "Quarter notes per measure (required for measures)")
		cmd.Flags().StringSliceVarP(&outputs, "to", "o", nil, "Output formats: frames, timecode, seconds (default frames)")
		cmd.Flags().BoolVarP(&allFormats, "all", "A", false, "Output every available format")
		cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print bare values for piping")
	}

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(ticksCmd)
	rootCmd.AddCommand(beatsCmd)
	rootCmd.AddCommand(measuresCmd)
	rootCmd.AddCommand(timecodeCmd)
	rootCmd.AddCommand(videoFramesCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func conversionParams() converter.Params {
	return converter.Params{
		BPM:             bpm,
		FPS:             fps,
		TicksPerBeat:    division,
		NotesPerMeasure: notesPerMeasure,
	}
}

// outputTargets resolves --to and --all into output formats, defaulting
// to frames.
func outputTargets() ([]converter.OutputFormat, error) {
	if allFormats {
		return converter.OutputFormats(), nil
	}
	if len(outputs) == 0 {
		return []converter.OutputFormat{converter.OutputFrames}, nil
	}
	targets := make([]converter.OutputFormat, 0, len(outputs))
	for _, name := range outputs {
		target, err := converter.ParseOutputFormat(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func runConversion(ref converter.InputFormat, raw string) error {
	targets, err := outputTargets()
	if err != nil {
		return err
	}

	result, err := converter.Convert(ref, targets, converter.StringValue(raw), conversionParams())
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func printResult(result *converter.Result) {
	if quiet {
		parts := lo.Map(result.Formats(), func(f converter.OutputFormat, _ int) string {
			v, _ := result.Value(f)
			return fmt.Sprint(v)
		})
		fmt.Println(strings.Join(parts, " "))
		return
	}

	for _, f := range result.Formats() {
		v, _ := result.Value(f)
		switch f {
		case converter.OutputFrames:
			fmt.Printf("Frames: %d\n", v)
		case converter.OutputTimecode:
			fmt.Printf("Timecode: %s\n", v)
		case converter.OutputSeconds:
			fmt.Printf("Seconds: %.3f\n", v)
		}
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	ref, err := converter.ParseInputFormat(fromFormat)
	if err != nil {
		return err
	}
	return runConversion(ref, args[0])
}

func runTicks(cmd *cobra.Command, args []string) error {
	return runConversion(converter.InputTicks, args[0])
}

func runBeats(cmd *cobra.Command, args []string) error {
	return runConversion(converter.InputBeats, args[0])
}

func runMeasures(cmd *cobra.Command, args []string) error {
	return runConversion(converter.InputMeasures, args[0])
}

func runTimecode(cmd *cobra.Command, args []string) error {
	return runConversion(converter.InputTimecode, args[0])
}

func runVideoFrames(cmd *cobra.Command, args []string) error {
	return runConversion(converter.InputVideoFrames, args[0])
}

func runMIDI(cmd *cobra.Command, args []string) error {
	timing, err := converter.ParseMIDITimingFile(args[0])
	if err != nil {
		return err
	}

	targets, err := outputTargets()
	if err != nil {
		return err
	}

	results, err := timing.ConvertNotes(targets, conversionParams())
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("%s: %d ticks per beat, %d bpm, %d notes\n", args[0], timing.TicksPerBeat, timing.BPM(), len(timing.Notes))
	}
	for i, result := range results {
		if quiet {
			printResult(result)
			continue
		}
		fmt.Printf("tick %6d  %s\n", timing.Notes[i].Tick, result)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
