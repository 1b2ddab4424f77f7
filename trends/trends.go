// Package trends retrieves trending topics from YouTube and TikTok. It backs
// the blank-topic mode of the interactive prompt: when the operator does not
// supply a topic, the highest-ranked trend becomes the topic.
package trends

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shortchaser/shortchaser/utils/restclient"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

const (
	apify_hashtags_url = "https://api.apify.com/v2/acts/dtrungtin~tiktok-trending-hashtags/runs/last/dataset/items?clean=1"
	apify_sounds_url   = "https://api.apify.com/v2/acts/dtrungtin~tiktok-trending-sounds/runs/last/dataset/items?clean=1"

	music_category_id = "10"
)

// Video is a trimmed-down trending YouTube video.
type Video struct {
	ID           string   `json:"video_id"`
	Title        string   `json:"title"`
	ChannelTitle string   `json:"channel"`
	CategoryID   string   `json:"category_id"`
	Tags         []string `json:"tags"`
}

// Hashtag is one trending TikTok hashtag.
type Hashtag struct {
	Hashtag string `json:"hashtag"`
	Count   int64  `json:"count"`
}

// Sound is one trending TikTok sound.
type Sound struct {
	Name      string `json:"sound_name"`
	PlayCount int64  `json:"play_count"`
}

// TiktokTrends holds both TikTok trend lists.
type TiktokTrends struct {
	Hashtags []Hashtag `json:"hashtags"`
	Sounds   []Sound   `json:"sounds"`
}

// FetchYoutubeTrendingVideos returns the mostPopular chart for a region.
// categoryID narrows the chart when non-empty. The API caps pages at 50.
func FetchYoutubeTrendingVideos(ctx context.Context, apiKey string, region string, maxResults int64, categoryID string) ([]Video, error) {
	if apiKey == "" {
		return nil, errors.New("youtube trending requires YOUTUBE_API_KEY")
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 50 {
		maxResults = 50
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	call := service.Videos.List([]string{"snippet"}).
		Chart("mostPopular").
		RegionCode(region).
		MaxResults(maxResults)
	if categoryID != "" {
		call = call.VideoCategoryId(categoryID)
	}
	response, err := call.Do()
	if err != nil {
		return nil, err
	}

	var videos []Video
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		videos = append(videos, Video{
			ID:           item.Id,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			CategoryID:   item.Snippet.CategoryId,
			Tags:         item.Snippet.Tags,
		})
	}
	return videos, nil
}

// FetchYoutubeTrendingTopics returns just the trending video titles.
func FetchYoutubeTrendingTopics(ctx context.Context, apiKey string, region string, maxResults int64) ([]string, error) {
	videos, err := FetchYoutubeTrendingVideos(ctx, apiKey, region, maxResults, "")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, video := range videos {
		if video.Title != "" {
			topics = append(topics, video.Title)
		}
	}
	return topics, nil
}

// FetchYoutubeTrendingMusic returns the trending music chart.
func FetchYoutubeTrendingMusic(ctx context.Context, apiKey string, region string, maxResults int64) ([]Video, error) {
	return FetchYoutubeTrendingVideos(ctx, apiKey, region, maxResults, music_category_id)
}

type apifyHashtagItem struct {
	Hashtag   string `json:"hashtag"`
	PlayCount int64  `json:"playCount"`
}

type apifySoundItem struct {
	SoundName string `json:"soundName"`
	PlayCount int64  `json:"playCount"`
}

// FetchTiktokTrending pulls the latest trending hashtag and sound datasets
// from Apify. A missing token lowers rate limits but is not an error, and a
// failed list leaves that list empty, matching the source's tolerance.
func FetchTiktokTrending(apiToken string) *TiktokTrends {
	headers := http.Header{}
	if apiToken != "" {
		headers.Set("Authorization", "Bearer "+apiToken)
	}

	trends := &TiktokTrends{}

	if res, err := restclient.Get(apify_hashtags_url, headers); err == nil {
		var items []apifyHashtagItem
		if res.StatusCode == http.StatusOK && json.NewDecoder(res.Body).Decode(&items) == nil {
			for _, item := range items {
				trends.Hashtags = append(trends.Hashtags, Hashtag{Hashtag: item.Hashtag, Count: item.PlayCount})
			}
		}
		res.Body.Close()
	}

	if res, err := restclient.Get(apify_sounds_url, headers); err == nil {
		var items []apifySoundItem
		if res.StatusCode == http.StatusOK && json.NewDecoder(res.Body).Decode(&items) == nil {
			for _, item := range items {
				trends.Sounds = append(trends.Sounds, Sound{Name: item.SoundName, PlayCount: item.PlayCount})
			}
		}
		res.Body.Close()
	}

	return trends
}

// Trend is a detected topic plus where it came from.
type Trend struct {
	Topic      string        `json:"topic"`
	Source     string        `json:"source"`
	TopHashtag *Hashtag      `json:"top_hashtag,omitempty"`
	TopSound   *Sound        `json:"top_sound,omitempty"`
	Topics     []string      `json:"topics,omitempty"`
	Tiktok     *TiktokTrends `json:"-"`
}

// Detect picks a topic from the requested trend source: the highest-count
// TikTok hashtag, or the first trending YouTube title.
func Detect(ctx context.Context, source string, youtubeAPIKey string, apifyToken string, region string, maxResults int64) (*Trend, error) {
	if source == "tiktok" {
		tiktok := FetchTiktokTrending(apifyToken)
		trend := &Trend{Source: "tiktok", Topic: "viral", Tiktok: tiktok}
		for i := range tiktok.Hashtags {
			if trend.TopHashtag == nil || tiktok.Hashtags[i].Count > trend.TopHashtag.Count {
				trend.TopHashtag = &tiktok.Hashtags[i]
			}
		}
		for i := range tiktok.Sounds {
			if trend.TopSound == nil || tiktok.Sounds[i].PlayCount > trend.TopSound.PlayCount {
				trend.TopSound = &tiktok.Sounds[i]
			}
		}
		if trend.TopHashtag != nil && trend.TopHashtag.Hashtag != "" {
			trend.Topic = trend.TopHashtag.Hashtag
		}
		return trend, nil
	}

	topics, err := FetchYoutubeTrendingTopics(ctx, youtubeAPIKey, region, maxResults)
	if err != nil {
		return nil, err
	}
	trend := &Trend{Source: "youtube", Topic: "trending", Topics: topics}
	if len(topics) > 0 {
		trend.Topic = topics[0]
	}
	return trend, nil
}
