package trends

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Reporter saves formatted trend results as timestamped JSON files.
type Reporter struct {
	OutputDir string
}

func NewReporter(outputDir string) *Reporter {
	return &Reporter{OutputDir: outputDir}
}

type reportMetadata struct {
	Source      string `json:"source"`
	RegionCode  string `json:"region_code,omitempty"`
	RetrievedAt string `json:"retrieved_at"`
	DataType    string `json:"data_type"`
}

type rankedTopic struct {
	Rank      int    `json:"rank"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

type rankedHashtag struct {
	Rank           int    `json:"rank"`
	Hashtag        string `json:"hashtag"`
	PlayCount      int64  `json:"play_count"`
	FormattedCount string `json:"formatted_count"`
}

type rankedSound struct {
	Rank           int    `json:"rank"`
	SoundName      string `json:"sound_name"`
	PlayCount      int64  `json:"play_count"`
	FormattedCount string `json:"formatted_count"`
}

// SaveYoutubeTopics writes a ranked topic report and returns its path.
func (r *Reporter) SaveYoutubeTopics(topics []string, region string) (string, error) {
	ranked := make([]rankedTopic, 0, len(topics))
	for i, topic := range topics {
		ranked = append(ranked, rankedTopic{
			Rank:      i + 1,
			Title:     topic,
			WordCount: wordCount(topic),
		})
	}
	payload := map[string]interface{}{
		"topics":      ranked,
		"total_count": len(ranked),
		"metadata": reportMetadata{
			Source:      "YouTube Trending API",
			RegionCode:  region,
			RetrievedAt: time.Now().Format(time.RFC3339),
			DataType:    "trending_topics",
		},
	}
	filename := fmt.Sprintf("youtube_trending_topics_%s_%s.json", region, timestamp())
	return r.save(payload, filename)
}

// SaveYoutubeVideos writes a trending video report and returns its path.
func (r *Reporter) SaveYoutubeVideos(videos []Video, region string) (string, error) {
	payload := map[string]interface{}{
		"videos":      videos,
		"total_count": len(videos),
		"metadata": reportMetadata{
			Source:      "YouTube Trending API",
			RegionCode:  region,
			RetrievedAt: time.Now().Format(time.RFC3339),
			DataType:    "trending_videos",
		},
	}
	filename := fmt.Sprintf("youtube_trending_videos_%s_%s.json", region, timestamp())
	return r.save(payload, filename)
}

// SaveTiktokTrends writes a ranked hashtag and sound report and returns its
// path.
func (r *Reporter) SaveTiktokTrends(trends *TiktokTrends) (string, error) {
	hashtags := make([]rankedHashtag, 0, len(trends.Hashtags))
	for i, h := range trends.Hashtags {
		hashtags = append(hashtags, rankedHashtag{
			Rank:           i + 1,
			Hashtag:        h.Hashtag,
			PlayCount:      h.Count,
			FormattedCount: FormatCount(h.Count),
		})
	}
	sounds := make([]rankedSound, 0, len(trends.Sounds))
	for i, s := range trends.Sounds {
		sounds = append(sounds, rankedSound{
			Rank:           i + 1,
			SoundName:      s.Name,
			PlayCount:      s.PlayCount,
			FormattedCount: FormatCount(s.PlayCount),
		})
	}
	payload := map[string]interface{}{
		"hashtags": map[string]interface{}{
			"trending":    hashtags,
			"total_count": len(hashtags),
		},
		"sounds": map[string]interface{}{
			"trending":    sounds,
			"total_count": len(sounds),
		},
		"metadata": reportMetadata{
			Source:      "TikTok Trending API (Apify)",
			RetrievedAt: time.Now().Format(time.RFC3339),
			DataType:    "trending_hashtags_and_sounds",
		},
	}
	filename := fmt.Sprintf("tiktok_trending_%s.json", timestamp())
	return r.save(payload, filename)
}

func (r *Reporter) save(payload interface{}, filename string) (string, error) {
	if err := os.MkdirAll(r.OutputDir, os.ModePerm); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(r.OutputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// FormatCount renders large numbers with K, M and B suffixes.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}
