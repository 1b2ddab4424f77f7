package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shortchaser/shortchaser/config"
	"github.com/shortchaser/shortchaser/pipeline"
	"github.com/shortchaser/shortchaser/providers/pexels"
	"github.com/shortchaser/shortchaser/scriptwriter"
	"github.com/shortchaser/shortchaser/trends"
	"github.com/shortchaser/shortchaser/utils/sendsns"
	"github.com/shortchaser/shortchaser/videobuilder"
	"github.com/shortchaser/shortchaser/videouploader"
	"golang.org/x/net/context"
)

const (
	default_settings_file = "settings.toml"
)

// composer adapts the ffmpeg composition to the pipeline, rendering a title
// card for the run topic when a font is configured.
type composer struct {
	settings *config.Settings
	topic    string
}

func (c *composer) Compose(clipPaths []string, script string, outputFilePath string) error {
	spec := videobuilder.Spec{
		Width:      c.settings.Video.Width,
		Height:     c.settings.Video.Height,
		MaxSeconds: c.settings.Footage.Max_seconds,
		Caption:    videobuilder.HookLine(script),
	}

	if fontFile := c.settings.Video.Title_font; fontFile != "" {
		if _, err := os.Stat(fontFile); err == nil {
			cardPath := filepath.Join(filepath.Dir(outputFilePath), "title_card.png")
			if err := videobuilder.RenderTitleCard(c.topic, fontFile, spec.Width, spec.Height, cardPath); err != nil {
				log.Printf("Skipping title card: %v\n", err)
			} else {
				spec.TitleCardPath = cardPath
			}
		}
	}

	_, err := videobuilder.Compose(clipPaths, spec, outputFilePath)
	return err
}

// uploader adapts the YouTube client to the pipeline, merging configured tags
// with the per-script suggestions.
type uploader struct {
	client   *videouploader.Uploader
	settings *config.Settings
}

func (u *uploader) Upload(videoFilePath string, title string, description string, tags []string) (string, error) {
	return u.client.Upload(videoFilePath, videouploader.Metadata{
		Title:       title,
		Description: description,
		Tags:        append(u.settings.Youtube.Tags, tags...),
		CategoryId:  u.settings.Youtube.Category_id,
		Privacy:     u.settings.Youtube.Privacy,
	})
}

func main() {

	// Check for settings file path
	var settingsFile string
	if len(os.Args) == 2 {
		settingsFile = os.Args[1]
	} else {
		settingsFile = default_settings_file
	}

	// Load configuration
	conf, err := config.Load(settingsFile)
	if err != nil {
		log.Fatalln(err)
		return
	}

	ctx := context.Background()

	// Ask the operator for a topic, fall back to trend detection
	fmt.Print("Enter topic for your YouTube Short (blank to use trends): ")
	reader := bufio.NewReader(os.Stdin)
	topic, _ := reader.ReadString('\n')
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic, err = detectTopic(ctx, conf)
		if err != nil {
			log.Fatalln(err)
			return
		}
		log.Printf("Using trending topic: %v\n", topic)
	}

	// Wire the pipeline stages
	youtubeClient := videouploader.New(conf.ClientSecretFile)
	runner := pipeline.NewRunner(
		scriptwriter.New(conf.OpenAIKey),
		pexels.NewClient(conf.PexelsKey),
		&composer{settings: &conf.Settings, topic: topic},
		&uploader{client: youtubeClient, settings: &conf.Settings},
		conf.Settings.Assets.Dir,
		conf.Settings.Footage.Clip_count,
	)
	runner.OutputDir = conf.Settings.Assets.Output_dir

	result := runner.Run(ctx, topic)
	if result.Err != nil {
		log.Fatalln(fmt.Errorf("run %v failed while %v: %w", result.RunID, result.FailedState, result.Err))
		return
	}

	// Send out alert
	youtubeLink := "https://youtu.be/" + result.VideoID
	if err := sendsns.SendSNS("YouTube Short Uploaded", youtubeLink, conf.UploadAlertArn); err != nil {
		log.Fatalln(err)
		return
	}
	log.Printf("Run %v complete: %v\n", result.RunID, youtubeLink)

	// Show where the channel stands after the upload
	if stats, err := youtubeClient.ChannelStats(); err == nil {
		log.Printf("Channel %v: %v subscribers, %v videos, %v views\n",
			stats.Title, stats.SubscriberCount, stats.VideoCount, stats.ViewCount)
	}
	if uploads, err := youtubeClient.RecentUploads(5); err == nil {
		for _, upload := range uploads {
			log.Printf("Recent upload: %v (%v)\n", upload.Title, upload.PublishedAt)
		}
	}
}

// detectTopic picks a topic from the configured trend source and writes the
// raw trend data as a report for the operator.
func detectTopic(ctx context.Context, conf *config.Config) (string, error) {
	t := conf.Settings.Trends
	trend, err := trends.Detect(ctx, t.Source, conf.YoutubeAPIKey, conf.ApifyToken, t.Region, int64(t.Max_results))
	if err != nil {
		return "", err
	}

	reporter := trends.NewReporter(t.Report_dir)
	switch {
	case trend.Tiktok != nil:
		if path, err := reporter.SaveTiktokTrends(trend.Tiktok); err == nil {
			log.Printf("Saved trend report: %v\n", path)
		}
	case len(trend.Topics) > 0:
		if path, err := reporter.SaveYoutubeTopics(trend.Topics, t.Region); err == nil {
			log.Printf("Saved trend report: %v\n", path)
		}
	}
	return trend.Topic, nil
}
