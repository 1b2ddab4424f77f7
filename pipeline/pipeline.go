package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shortchaser/shortchaser/scriptcheck"
	"golang.org/x/net/context"
)

// State names the stage a run is currently in. Stages always execute in the
// same order and a failure at any stage ends the run.
type State string

const (
	StateAwaitingTopic   State = "awaiting_topic"
	StateGenerating      State = "generating"
	StateFetchingFootage State = "fetching_footage"
	StateComposing       State = "composing"
	StateUploading       State = "uploading"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

type ScriptGenerator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

type FootageFetcher interface {
	Fetch(query string, count int, targetDir string) ([]string, error)
}

type VideoComposer interface {
	Compose(clipPaths []string, caption string, outputFilePath string) error
}

type Uploader interface {
	Upload(videoFilePath string, title string, description string, tags []string) (string, error)
}

// Result records what a finished run produced. FailedState is the stage that
// was active when Err occurred, or empty on success.
type Result struct {
	RunID       string              `json:"run_id"`
	Topic       string              `json:"topic"`
	Script      string              `json:"script,omitempty"`
	ClipPaths   []string            `json:"clip_paths,omitempty"`
	VideoPath   string              `json:"video_path,omitempty"`
	VideoID     string              `json:"video_id,omitempty"`
	Analysis    *scriptcheck.Report `json:"analysis,omitempty"`
	StartedAt   time.Time           `json:"started_at"`
	FinishedAt  time.Time           `json:"finished_at"`
	FailedState State               `json:"failed_state,omitempty"`
	FailReason  string              `json:"fail_reason,omitempty"`
	Err         error               `json:"-"`
}

type Runner struct {
	Generator ScriptGenerator
	Fetcher   FootageFetcher
	Composer  VideoComposer
	Uploader  Uploader

	// WorkDir holds per-run directories with downloaded clips and
	// diagnostics. OutputDir, when set, receives the finished video.
	WorkDir   string
	OutputDir string
	ClipCount int

	state State
}

func NewRunner(generator ScriptGenerator, fetcher FootageFetcher, composer VideoComposer, uploader Uploader, workDir string, clipCount int) *Runner {
	if clipCount < 1 {
		clipCount = 1
	}
	return &Runner{
		Generator: generator,
		Fetcher:   fetcher,
		Composer:  composer,
		Uploader:  uploader,
		WorkDir:   workDir,
		ClipCount: clipCount,
		state:     StateAwaitingTopic,
	}
}

func (r *Runner) State() State {
	return r.state
}

// Run drives one topic through script generation, footage retrieval,
// composition and upload. Each run gets its own directory under WorkDir.
func (r *Runner) Run(ctx context.Context, topic string) *Result {
	result := &Result{
		Topic:     topic,
		StartedAt: time.Now().UTC(),
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return r.fail(result, "", StateAwaitingTopic, fmt.Errorf("no topic provided"))
	}
	result.Topic = topic
	result.RunID = uuid.NewString()[:8]

	runDir := filepath.Join(r.WorkDir, result.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return r.fail(result, "", StateAwaitingTopic, err)
	}

	r.state = StateGenerating
	log.Printf("[%v] generating script for topic: %v\n", result.RunID, topic)
	script, err := r.Generator.Generate(ctx, topic)
	if err != nil {
		return r.fail(result, runDir, StateGenerating, err)
	}
	result.Script = script
	if err := os.WriteFile(filepath.Join(runDir, "script.txt"), []byte(script), 0644); err != nil {
		log.Printf("Failed to write script.txt: %v\n", err)
	}

	analysis := scriptcheck.Analyze(script, topic)
	result.Analysis = &analysis
	r.saveJSON(runDir, "script_analysis.json", analysis)
	log.Printf("[%v] script virality score: %v\n", result.RunID, analysis.Virality.Score)

	r.state = StateFetchingFootage
	clipPaths, err := r.Fetcher.Fetch(topic, r.ClipCount, runDir)
	if err != nil {
		return r.fail(result, runDir, StateFetchingFootage, err)
	}
	result.ClipPaths = clipPaths

	r.state = StateComposing
	outputDir := r.OutputDir
	if outputDir == "" {
		outputDir = runDir
	} else if err := os.MkdirAll(outputDir, 0755); err != nil {
		return r.fail(result, runDir, StateComposing, err)
	}
	outputPath := filepath.Join(outputDir, result.RunID+".mp4")
	if err := r.Composer.Compose(clipPaths, script, outputPath); err != nil {
		return r.fail(result, runDir, StateComposing, err)
	}
	result.VideoPath = outputPath

	r.state = StateUploading
	title := topic + " #Shorts"
	description := script
	if len(analysis.SuggestedHashtags) > 0 {
		description += "\n\n" + strings.Join(analysis.SuggestedHashtags, " ")
	}
	videoID, err := r.Uploader.Upload(outputPath, title, description, analysis.SuggestedHashtags)
	if err != nil {
		return r.fail(result, runDir, StateUploading, err)
	}
	result.VideoID = videoID

	r.state = StateDone
	result.FinishedAt = time.Now().UTC()
	r.saveJSON(runDir, "run_summary.json", result)
	return result
}

func (r *Runner) fail(result *Result, runDir string, state State, err error) *Result {
	r.state = StateFailed
	result.FailedState = state
	result.Err = err
	result.FinishedAt = time.Now().UTC()
	if runDir != "" {
		result.FailReason = err.Error()
		r.saveJSON(runDir, "run_summary.json", result)
	}
	return result
}

// saveJSON writes diagnostics next to the run artifacts. Failures here never
// fail the run.
func (r *Runner) saveJSON(runDir string, name string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Failed to encode %v: %v\n", name, err)
		return
	}
	if err := os.WriteFile(filepath.Join(runDir, name), data, 0644); err != nil {
		log.Printf("Failed to write %v: %v\n", name, err)
	}
}
