package videobuilder

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	title_card_font_size  = 72
	title_card_line_chars = 18
)

// RenderTitleCard draws the topic centered on a dark portrait frame and
// writes it as a PNG, to be looped as the intro segment.
func RenderTitleCard(topic string, fontFile string, width int, height int, outPath string) error {
	fontData, err := os.ReadFile(fontFile)
	if err != nil {
		return err
	}
	ttf, err := truetype.Parse(fontData)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{16, 16, 16, 255}), image.Point{}, draw.Src)

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    title_card_font_size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: face,
	}

	lines := WrapTitle(topic, title_card_line_chars)
	startY, lineHeight := titleLayout(len(lines), height)
	for i, line := range lines {
		textWidth := drawer.MeasureString(line)
		x := (fixed.I(width) - textWidth) / 2
		drawer.Dot = fixed.Point26_6{X: x, Y: fixed.I(startY + i*lineHeight)}
		drawer.DrawString(line)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

// titleLayout centers the block of lines vertically, with line spacing at
// 1.3x the font size.
func titleLayout(lineCount int, height int) (int, int) {
	lineHeight := title_card_font_size * 13 / 10
	startY := height/2 - lineHeight*(lineCount-1)/2
	return startY, lineHeight
}

// WrapTitle breaks the topic into display lines of roughly maxChars each,
// never splitting a word.
func WrapTitle(topic string, maxChars int) []string {
	words := strings.Fields(topic)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > maxChars {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
