package videobuilder

import (
	"fmt"
	"os"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// CompositionError reports a failed ffmpeg invocation or a missing or empty
// output file.
type CompositionError struct {
	Output string
	Err    error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose %s: %v", e.Output, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// Spec describes one vertical composition.
type Spec struct {
	Width            int    // output frame width, portrait
	Height           int    // output frame height
	MaxSeconds       int    // hard cap on output duration
	Caption          string // drawn over the first clip, usually the script hook
	TitleCardPath    string // optional rendered intro card image
	TitleCardSeconds int
}

// Compose scales and pads the clips to the portrait frame, optionally
// prepends a title card, concatenates everything and caps the duration.
// Returns the output path on success.
func Compose(clipPaths []string, spec Spec, outputFilePath string) (string, error) {
	if len(clipPaths) == 0 {
		return "", &CompositionError{Output: outputFilePath, Err: fmt.Errorf("no input clips")}
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		spec.Width, spec.Height = 1080, 1920
	}
	if spec.MaxSeconds <= 0 {
		spec.MaxSeconds = 59
	}
	if spec.TitleCardSeconds <= 0 {
		spec.TitleCardSeconds = 2
	}

	var streamInputs []*ffmpeg.Stream

	if spec.TitleCardPath != "" {
		cardInput := ffmpeg.Input(spec.TitleCardPath, ffmpeg.KwArgs{
			"loop":      "1",
			"t":         spec.TitleCardSeconds,
			"framerate": 30,
		})
		streamInputs = append(streamInputs, fitPortrait(cardInput, spec))
	}

	for index, clipPath := range clipPaths {
		streamInput := fitPortrait(ffmpeg.Input(clipPath), spec)
		if index == 0 && spec.Caption != "" {
			streamInput = streamInput.Filter("drawtext", captionArgs(spec))
		}
		streamInputs = append(streamInputs, streamInput)
	}

	finalStream := ffmpeg.Concat(streamInputs, ffmpeg.KwArgs{"v": 1, "a": 0})
	err := finalStream.
		Output(outputFilePath, ffmpeg.KwArgs{"t": spec.MaxSeconds}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", &CompositionError{Output: outputFilePath, Err: err}
	}

	info, err := os.Stat(outputFilePath)
	if err != nil {
		return "", &CompositionError{Output: outputFilePath, Err: fmt.Errorf("no output file produced: %w", err)}
	}
	if info.Size() == 0 {
		return "", &CompositionError{Output: outputFilePath, Err: fmt.Errorf("output file is empty")}
	}
	return outputFilePath, nil
}

// fitPortrait scales into the portrait frame without distortion, then pads
// the remainder, so clips of any aspect ratio concat cleanly.
func fitPortrait(stream *ffmpeg.Stream, spec Spec) *ffmpeg.Stream {
	return stream.
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease", spec.Width, spec.Height)}).
		Filter("pad", ffmpeg.Args{fmt.Sprintf("%d:%d:(ow-iw)/2:(oh-ih)/2", spec.Width, spec.Height)}).
		Filter("setsar", ffmpeg.Args{"1"})
}

func captionArgs(spec Spec) ffmpeg.Args {
	return ffmpeg.Args{
		fmt.Sprintf("text='%v'", escapeDrawtext(spec.Caption)),
		"x=(w-text_w)/2",
		fmt.Sprintf("y=%d", spec.Height*3/4),
		fmt.Sprintf("fontsize=%d", spec.Width/18),
		"fontcolor=white",
		"borderw=3",
		"bordercolor=black",
	}
}

// escapeDrawtext strips the characters that break ffmpeg's drawtext filter
// syntax rather than fighting its three layers of escaping.
func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		"'", "",
		":", " ",
		"\\", "",
		"%", "",
		"\n", " ",
	)
	return strings.Join(strings.Fields(replacer.Replace(text)), " ")
}

// HookLine returns the first sentence of a script, the line worth drawing
// over the opening clip.
func HookLine(script string) string {
	script = strings.TrimSpace(script)
	for i, r := range script {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			return strings.TrimSpace(script[:i+1])
		}
	}
	return script
}
