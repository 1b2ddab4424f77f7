package scriptcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const demoScript = "Stop scrolling! 3 things creators forget that cost views. " +
	"Hook fast, add value, and end with a strong call to action. " +
	"Try this today and tell me how it goes."

func TestMeasureHookStrength(t *testing.T) {
	hook := MeasureHookStrength("Did you know sharks predate trees? Subscribe for more.")
	assert.True(t, hook.PowerHits > 0)
	assert.True(t, hook.Score > 0.5)

	weak := MeasureHookStrength("This is a fairly ordinary and quite long opening sentence that rambles on without any punch or hook to speak of at all really.")
	assert.EqualValues(t, 0, weak.PowerHits)
	assert.True(t, weak.Score < hook.Score)
}

func TestDetectCTA(t *testing.T) {
	cta := DetectCTA(demoScript)
	assert.True(t, cta.Present)
	assert.Contains(t, cta.Phrases, "try this")

	none := DetectCTA("The ocean is deep. Whales sing songs.")
	assert.False(t, none.Present)
	assert.Empty(t, none.Phrases)
}

func TestAnalyzeSentiment(t *testing.T) {
	pos := AnalyzeSentiment("This amazing and powerful trick brings easy growth and success")
	assert.EqualValues(t, "positive", pos.Label)

	neg := AnalyzeSentiment("The worst scam, a total fail and a danger to everyone")
	assert.EqualValues(t, "negative", neg.Label)

	neutral := AnalyzeSentiment("Water boils at one hundred degrees")
	assert.EqualValues(t, "neutral", neutral.Label)
}

func TestCheckBrandSafety(t *testing.T) {
	safe := CheckBrandSafety(demoScript, nil)
	assert.True(t, safe.Safe)

	flagged := CheckBrandSafety("this product is shit", nil)
	assert.False(t, flagged.Safe)
	assert.Contains(t, flagged.Hits, "shit")

	banned := CheckBrandSafety("buy crypto now", []string{"crypto"})
	assert.False(t, banned.Safe)
	assert.Contains(t, banned.Hits, "crypto")
}

func TestCheckPlatformGuidelines(t *testing.T) {
	guide := CheckPlatformGuidelines(demoScript, "youtube_shorts")
	assert.True(t, guide.WithinLength)
	assert.True(t, guide.NoProfanity)
	assert.True(t, guide.Compliant)

	tooShort := CheckPlatformGuidelines("Buy now.", "youtube_shorts")
	assert.False(t, tooShort.WithinLength)
	assert.False(t, tooShort.Compliant)

	shouty := CheckPlatformGuidelines("STOP NOW AND WATCH THIS BECAUSE EVERYTHING YOU KNOW IS WRONG AND THIS TRICK WILL CHANGE YOUR ENTIRE LIFE FOREVER TRUST ME", "youtube_shorts")
	assert.False(t, shouty.MinimalCaps)
}

func TestAnalyzeVocabulary(t *testing.T) {
	vocab := AnalyzeVocabulary("one two three one two one")
	assert.EqualValues(t, 3, vocab.Unique)
	assert.EqualValues(t, 6, vocab.Total)
	assert.EqualValues(t, 0.5, vocab.Diversity)
}

func TestSanitizeHashtags(t *testing.T) {
	got := SanitizeHashtags([]string{" ocean facts ", "#Ocean", "ocean", "", "#", "a b c"}, 6)
	assert.EqualValues(t, []string{"#oceanfacts", "#Ocean", "#abc"}, got)

	capped := SanitizeHashtags([]string{"#a1", "#b2", "#c3", "#d4"}, 2)
	assert.EqualValues(t, 2, len(capped))
}

func TestSuggestHashtags(t *testing.T) {
	tags := SuggestHashtags("ocean facts", "positive")
	assert.Contains(t, tags, "#Shorts")
	assert.Contains(t, tags, "#oceanfacts")
	assert.Contains(t, tags, "#growth")
	assert.True(t, len(tags) <= 6)
}

func TestScoreVirality(t *testing.T) {
	strong := ScoreVirality(demoScript)
	weak := ScoreVirality("An unremarkable sentence about a mundane and entirely forgettable subject without any call to anything.")
	assert.True(t, strong.Score > weak.Score)
	assert.True(t, strong.Score >= 0 && strong.Score <= 100)
}

func TestAnalyzeReport(t *testing.T) {
	report := Analyze(demoScript, "creators")
	assert.True(t, report.CTA.Present)
	assert.True(t, report.BrandSafety.Safe)
	assert.True(t, report.Virality.Score > 0)
	assert.Contains(t, report.SuggestedHashtags, "#creators")
}
