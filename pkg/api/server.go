// Package api provides the REST API server for BPMtoFPS
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JHGFD82/BPMtoFPS/pkg/converter"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title BPMtoFPS API
// @version 1.0
// @description API for converting musical time to video time
// @host localhost:8080
// @BasePath /api/v1

// TargetList is the target_formats field: it accepts a single format name
// or an array of them.
type TargetList []string

// UnmarshalJSON normalizes a bare string into a one-element list.
func (t *TargetList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*t = TargetList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*t = TargetList(many)
	return nil
}

// ConvertRequest is the JSON body accepted by the convert endpoint. It
// mirrors converter.Convert: one input format, one or more target formats,
// the raw value, and whatever parameters those formats require.
type ConvertRequest struct {
	RefFormat       string           `json:"ref_format"`
	TargetFormats   TargetList       `json:"target_formats"`
	InputValue      *converter.Value `json:"input_value"`
	BPM             int              `json:"bpm,omitempty"`
	FPS             float64          `json:"fps,omitempty"`
	TicksPerBeat    int              `json:"ticks_per_beat,omitempty"`
	NotesPerMeasure int              `json:"notes_per_measure,omitempty"`
}

// Validate checks the request shape before it reaches the converter.
func (r ConvertRequest) Validate() error {
	inputNames := lo.Map(converter.InputFormats(), func(f converter.InputFormat, _ int) any {
		return string(f)
	})
	outputNames := lo.Map(converter.OutputFormats(), func(f converter.OutputFormat, _ int) any {
		return string(f)
	})
	// InputValue is a pointer so an absent operand stays nil; NotNil rather
	// than Required, because the zero Value is a legitimate integer zero.
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefFormat, validation.Required, validation.In(inputNames...)),
		validation.Field(&r.TargetFormats, validation.Required, validation.Each(validation.In(outputNames...))),
		validation.Field(&r.InputValue, validation.NotNil),
		validation.Field(&r.BPM, validation.Min(0)),
		validation.Field(&r.FPS, validation.Min(0.0)),
		validation.Field(&r.TicksPerBeat, validation.Min(0)),
		validation.Field(&r.NotesPerMeasure, validation.Min(0)),
	)
}

// NewRouter builds the gin engine with all routes attached.
func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(requestid.New())
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert", handleConvert)
		v1.POST("/convert/midi", handleConvertMIDI)
		v1.GET("/formats", listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "bpmtofps",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns the accepted input and output formats and defaults
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"input_formats":  converter.InputFormats(),
		"output_formats": converter.OutputFormats(),
		"defaults": gin.H{
			"ticks_per_beat":     converter.DefaultTicksPerBeat,
			"rounding_threshold": converter.DefaultRoundingThreshold,
		},
	})
}

// handleConvert godoc
// @Summary Convert a musical time value to video time
// @Description Converts the input value to every requested target format
// @Tags convert
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert [post]
func handleConvert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := converter.ParseInputFormat(req.RefFormat)
	if err != nil {
		writeError(c, err)
		return
	}
	targets := make([]converter.OutputFormat, 0, len(req.TargetFormats))
	for _, name := range req.TargetFormats {
		target, err := converter.ParseOutputFormat(name)
		if err != nil {
			writeError(c, err)
			return
		}
		targets = append(targets, target)
	}

	result, err := converter.Convert(ref, targets, *req.InputValue, converter.Params{
		BPM:             req.BPM,
		FPS:             req.FPS,
		TicksPerBeat:    req.TicksPerBeat,
		NotesPerMeasure: req.NotesPerMeasure,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleConvertMIDI godoc
// @Summary Convert every note onset in a MIDI file
// @Description Upload a MIDI file and receive its note onsets in the requested formats
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Standard MIDI File"
// @Param fps query number true "Frames per second for frame-based outputs"
// @Param to query string false "Output formats (repeatable, default: frames)"
// @Param bpm query int false "Tempo override in beats per minute"
// @Param division query int false "Resolution override in ticks per beat"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/midi [post]
func handleConvertMIDI(c *gin.Context) {
	// Get uploaded file
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	params, err := queryParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetNames := c.QueryArray("to")
	if len(targetNames) == 0 {
		targetNames = []string{string(converter.OutputFrames)}
	}
	targets := make([]converter.OutputFormat, 0, len(targetNames))
	for _, name := range targetNames {
		target, err := converter.ParseOutputFormat(name)
		if err != nil {
			writeError(c, err)
			return
		}
		targets = append(targets, target)
	}

	timing, err := converter.ParseMIDITiming(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := timing.ConvertNotes(targets, params)
	if err != nil {
		writeError(c, err)
		return
	}

	notes := make([]gin.H, 0, len(results))
	for i, res := range results {
		notes = append(notes, gin.H{
			"track":    timing.Notes[i].Track,
			"tick":     timing.Notes[i].Tick,
			"note":     timing.Notes[i].Note,
			"velocity": timing.Notes[i].Velocity,
			"values":   res,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ticks_per_beat": timing.TicksPerBeat,
		"bpm":            timing.BPM(),
		"notes":          notes,
	})
}

// queryParams reads conversion parameters from the query string.
func queryParams(c *gin.Context) (converter.Params, error) {
	var p converter.Params
	if s := c.Query("bpm"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("bpm must be an integer")
		}
		p.BPM = n
	}
	if s := c.Query("fps"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, fmt.Errorf("fps must be a number")
		}
		p.FPS = f
	}
	if s := c.Query("division"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("division must be an integer")
		}
		p.TicksPerBeat = n
	}
	return p, nil
}

// writeError sends a converter failure as a 400 with its kind attached.
func writeError(c *gin.Context, err error) {
	resp := gin.H{"error": err.Error()}
	if kind := converter.KindOf(err); kind != "" {
		resp["kind"] = string(kind)
	}
	c.JSON(http.StatusBadRequest, resp)
}
