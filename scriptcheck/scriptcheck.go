// Package scriptcheck scores a generated script with lightweight heuristics:
// hook strength, call-to-action presence, sentiment, readability, brand
// safety and an overall virality blend. Results are advisory and never block
// the pipeline.
package scriptcheck

import (
	"regexp"
	"strings"
)

var powerHooks = []string{
	"what if", "did you know", "here's why", "stop", "warning",
	"the secret", "nobody tells you", "don't make this mistake",
	"3 things", "top 5", "you won't believe", "the truth",
}

var ctaPhrases = []string{
	"subscribe", "follow", "like this", "comment", "share",
	"click the link", "link in bio", "check the description",
	"try this", "save this", "watch till the end",
}

var toxicKeywords = wordSet(
	"idiot", "stupid", "dumb", "hate", "kill", "trash", "loser",
	"moron", "racist", "sexist", "terrorist",
)

var profanity = wordSet(
	"fuck", "shit", "bitch", "asshole", "bastard", "dick", "cunt",
)

var positiveWords = wordSet(
	"amazing", "great", "awesome", "love", "win", "success", "powerful",
	"easy", "simple", "best", "boost", "growth", "viral", "smart",
)

var negativeWords = wordSet(
	"bad", "worst", "hate", "fail", "hard", "problem", "risk",
	"danger", "scam", "loss", "decline",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var (
	wordRegex     = regexp.MustCompile(`[a-zA-Z0-9']+`)
	sentenceRegex = regexp.MustCompile(`[.!?]+`)
	spaceRegex    = regexp.MustCompile(`\s+`)
	allCapsRegex  = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	hashtagRegex  = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

func normalize(text string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(text, " "))
}

func lowerWords(text string) []string {
	return wordRegex.FindAllString(strings.ToLower(text), -1)
}

func sentences(text string) []string {
	var out []string
	for _, s := range sentenceRegex.Split(text, -1) {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Toxicity is a crude keyword score, 0..1.
type Toxicity struct {
	Score float64  `json:"score"`
	Hits  []string `json:"hits"`
}

func AnalyzeToxicity(script string) Toxicity {
	var hits []string
	for _, w := range lowerWords(script) {
		if toxicKeywords[w] || profanity[w] {
			hits = append(hits, w)
		}
	}
	score := float64(len(hits)) / 3.0
	if score > 1.0 {
		score = 1.0
	}
	return Toxicity{Score: round3(score), Hits: hits}
}

// Sentiment balances positive against negative keywords, -1..1.
type Sentiment struct {
	Score    float64 `json:"score"`
	Label    string  `json:"label"`
	Positive int     `json:"pos"`
	Negative int     `json:"neg"`
}

func AnalyzeSentiment(script string) Sentiment {
	var pos, neg int
	for _, w := range lowerWords(script) {
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}
	total := pos + neg
	if total == 0 {
		total = 1
	}
	score := float64(pos-neg) / float64(total)
	label := "neutral"
	if score > 0.15 {
		label = "positive"
	} else if score < -0.15 {
		label = "negative"
	}
	return Sentiment{Score: round3(score), Label: label, Positive: pos, Negative: neg}
}

type CTA struct {
	Present bool     `json:"present"`
	Phrases []string `json:"phrases"`
}

func DetectCTA(script string) CTA {
	text := strings.ToLower(script)
	var hits []string
	for _, phrase := range ctaPhrases {
		if strings.Contains(text, phrase) {
			hits = append(hits, phrase)
		}
	}
	return CTA{Present: len(hits) > 0, Phrases: hits}
}

// Hook scores the first sentence: short and punchy with a power phrase wins.
type Hook struct {
	Score         float64 `json:"score"`
	FirstSentence string  `json:"first_sentence"`
	PowerHits     int     `json:"power_hits"`
}

func MeasureHookStrength(script string) Hook {
	first := ""
	if all := sentences(script); len(all) > 0 {
		first = strings.ToLower(all[0])
	}
	powerHits := 0
	for _, phrase := range powerHooks {
		if strings.Contains(first, phrase) {
			powerHits++
		}
	}
	lengthWords := len(lowerWords(first))
	lengthScore := 0.2
	switch {
	case lengthWords >= 4 && lengthWords <= 16:
		lengthScore = 1.0
	case lengthWords <= 24:
		lengthScore = 0.5
	}
	powerScore := 0.0
	if powerHits > 0 {
		powerScore = 1.0
	}
	score := clamp01(0.6*lengthScore + 0.4*powerScore)
	return Hook{Score: round3(score), FirstSentence: first, PowerHits: powerHits}
}

// Readability is a crude ease proxy: shorter sentences and words read easier.
type Readability struct {
	Ease                float64 `json:"ease"`
	Level               string  `json:"level"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	AvgCharsPerWord     float64 `json:"avg_chars_per_word"`
}

func AnalyzeReadability(script string) Readability {
	words := lowerWords(script)
	numWords := len(words)
	if numWords == 0 {
		numWords = 1
	}
	numSentences := len(sentences(script))
	if numSentences == 0 {
		numSentences = 1
	}
	avgWords := float64(numWords) / float64(numSentences)
	totalChars := 0
	for _, w := range words {
		totalChars += len(w)
	}
	avgChars := float64(totalChars) / float64(numWords)

	ease := clamp01(1.2 - avgWords/25.0 - avgChars/8.0)
	level := "hard"
	if ease > 0.66 {
		level = "easy"
	} else if ease > 0.33 {
		level = "medium"
	}
	return Readability{
		Ease:                round3(ease),
		Level:               level,
		AvgWordsPerSentence: round2(avgWords),
		AvgCharsPerWord:     round2(avgChars),
	}
}

type BrandSafety struct {
	Safe bool     `json:"safe"`
	Hits []string `json:"hits"`
}

func CheckBrandSafety(script string, banned []string) BrandSafety {
	text := strings.ToLower(script)
	seen := map[string]bool{}
	var hits []string
	check := func(word string) {
		if word != "" && !seen[word] && strings.Contains(text, word) {
			seen[word] = true
			hits = append(hits, word)
		}
	}
	for word := range profanity {
		check(word)
	}
	for _, word := range banned {
		check(strings.ToLower(word))
	}
	return BrandSafety{Safe: len(hits) == 0, Hits: hits}
}

// Guidelines checks script length, shouting and profanity against the target
// platform. A shorts script at a natural pace lands around 20-55 tokens.
type Guidelines struct {
	Platform      string   `json:"platform"`
	Compliant     bool     `json:"compliant"`
	LengthTokens  int      `json:"length_tokens"`
	WithinLength  bool     `json:"within_length"`
	AllCapsRatio  float64  `json:"all_caps_ratio"`
	MinimalCaps   bool     `json:"minimal_caps"`
	ProfanityHits []string `json:"profanity_hits"`
	NoProfanity   bool     `json:"no_profanity"`
}

func CheckPlatformGuidelines(script string, platform string) Guidelines {
	words := lowerWords(script)
	tokens := len(words)
	denom := tokens
	if denom == 0 {
		denom = 1
	}
	capsRatio := float64(len(allCapsRegex.FindAllString(script, -1))) / float64(denom)

	var profanityHits []string
	for _, w := range words {
		if profanity[w] {
			profanityHits = append(profanityHits, w)
		}
	}

	targetMin, targetMax := 15, 70
	if platform == "youtube_shorts" {
		targetMin, targetMax = 20, 55
	}

	withinLength := tokens >= targetMin && tokens <= targetMax
	minimalCaps := capsRatio < 0.05
	noProfanity := len(profanityHits) == 0

	return Guidelines{
		Platform:      platform,
		Compliant:     withinLength && minimalCaps && noProfanity,
		LengthTokens:  tokens,
		WithinLength:  withinLength,
		AllCapsRatio:  round3(capsRatio),
		MinimalCaps:   minimalCaps,
		ProfanityHits: profanityHits,
		NoProfanity:   noProfanity,
	}
}

type Vocabulary struct {
	Diversity float64 `json:"diversity"`
	Unique    int     `json:"unique"`
	Total     int     `json:"total"`
}

func AnalyzeVocabulary(script string) Vocabulary {
	unique := map[string]bool{}
	total := 0
	for _, w := range lowerWords(script) {
		if !isAlpha(w) {
			continue
		}
		total++
		unique[w] = true
	}
	denom := total
	if denom == 0 {
		denom = 1
	}
	return Vocabulary{
		Diversity: round3(float64(len(unique)) / float64(denom)),
		Unique:    len(unique),
		Total:     total,
	}
}

type Tone struct {
	Label      string   `json:"label"`
	Candidates []string `json:"candidates"`
}

func ClassifyTone(script string) Tone {
	text := strings.ToLower(script)
	checks := []struct {
		label   string
		phrases []string
	}{
		{"persuasive", []string{"you", "now", "today", "must", "need to"}},
		{"informative", []string{"how to", "steps", "tip", "learn", "guide", "why"}},
		{"entertaining", []string{"funny", "joke", "crazy", "wild", "insane", "wow"}},
		{"story", []string{"story", "once", "i was", "we were", "learned"}},
	}
	var active []string
	for _, check := range checks {
		for _, phrase := range check.phrases {
			if strings.Contains(text, phrase) {
				active = append(active, check.label)
				break
			}
		}
	}
	label := "neutral"
	if len(active) > 0 {
		label = active[0]
	}
	return Tone{Label: label, Candidates: active}
}

// Virality blends the individual signals into a 0-100 score.
type Virality struct {
	Score int `json:"score"`
}

func ScoreVirality(script string) Virality {
	tox := AnalyzeToxicity(script).Score
	sent := AnalyzeSentiment(script).Score
	hook := MeasureHookStrength(script).Score
	cta := 0.0
	if DetectCTA(script).Present {
		cta = 1.0
	}
	read := AnalyzeReadability(script).Ease
	vocab := AnalyzeVocabulary(script).Diversity

	base := 0.25*hook +
		0.2*(0.5+0.5*sent) +
		0.15*cta +
		0.2*read +
		0.15*vocab +
		0.05*(1.0-tox)
	return Virality{Score: int(clamp01(base)*100 + 0.5)}
}

// SanitizeHashtags normalizes, deduplicates and caps a hashtag list.
func SanitizeHashtags(tags []string, maxTags int) []string {
	var cleaned []string
	seen := map[string]bool{}
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" {
			continue
		}
		t = spaceRegex.ReplaceAllString(t, "")
		t = "#" + hashtagRegex.ReplaceAllString(strings.TrimLeft(t, "#"), "")
		if len(t) <= 1 {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, t)
		if len(cleaned) >= maxTags {
			break
		}
	}
	return cleaned
}

// SuggestHashtags builds a small hashtag set from the topic and sentiment.
func SuggestHashtags(topic string, sentimentLabel string) []string {
	base := []string{"#Shorts", "#viral", "#fyp"}
	if cleaned := spaceRegex.ReplaceAllString(topic, ""); cleaned != "" {
		base = append(base, "#"+cleaned)
	}
	switch sentimentLabel {
	case "positive":
		base = append(base, "#growth", "#success")
	case "negative":
		base = append(base, "#lessons", "#truth")
	default:
		base = append(base, "#learn", "#tips")
	}
	return SanitizeHashtags(base, 6)
}

// Report is the full analysis for one script.
type Report struct {
	Toxicity          Toxicity    `json:"toxicity"`
	Sentiment         Sentiment   `json:"sentiment"`
	CTA               CTA         `json:"cta"`
	Hook              Hook        `json:"hook"`
	Readability       Readability `json:"readability"`
	BrandSafety       BrandSafety `json:"brand_safety"`
	Guidelines        Guidelines  `json:"platform_guidelines"`
	Vocabulary        Vocabulary  `json:"vocabulary"`
	Tone              Tone        `json:"tone"`
	Virality          Virality    `json:"virality"`
	SuggestedHashtags []string    `json:"suggested_hashtags"`
}

// Analyze runs every verifier over the script.
func Analyze(script string, topic string) Report {
	script = normalize(script)
	sentiment := AnalyzeSentiment(script)
	return Report{
		Toxicity:          AnalyzeToxicity(script),
		Sentiment:         sentiment,
		CTA:               DetectCTA(script),
		Hook:              MeasureHookStrength(script),
		Readability:       AnalyzeReadability(script),
		BrandSafety:       CheckBrandSafety(script, nil),
		Guidelines:        CheckPlatformGuidelines(script, "youtube_shorts"),
		Vocabulary:        AnalyzeVocabulary(script),
		Tone:              ClassifyTone(script),
		Virality:          ScoreVirality(script),
		SuggestedHashtags: SuggestHashtags(topic, sentiment.Label),
	}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return float64(int(v*1000+sign(v)*0.5)) / 1000
}

func round2(v float64) float64 {
	return float64(int(v*100+sign(v)*0.5)) / 100
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
