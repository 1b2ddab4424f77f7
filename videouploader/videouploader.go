package videouploader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

const (
	default_client_token_file = "client_token.json"
)

// AuthError reports a failed OAuth flow: unreadable client secret, missing
// cached token or a rejected token exchange.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("youtube auth: %s: %v", e.Reason, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UploadError reports an upload rejected by the platform.
type UploadError struct {
	File string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("youtube upload %s: %v", e.File, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Metadata is everything attached to an uploaded video.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryId  string
	Privacy     string
}

// ChannelStats are the key numbers for the authenticated channel.
type ChannelStats struct {
	Title           string
	ViewCount       uint64
	SubscriberCount uint64
	VideoCount      uint64
}

// UploadedVideo is one entry from the channel's uploads playlist.
type UploadedVideo struct {
	VideoId     string
	Title       string
	PublishedAt string
}

type Uploader struct {
	ClientSecretFile string
	TokenFile        string
}

// New returns an uploader reading its cached token from client_token.json
// next to the client secret file.
func New(clientSecretFile string) *Uploader {
	return &Uploader{
		ClientSecretFile: clientSecretFile,
		TokenFile:        filepath.Join(filepath.Dir(clientSecretFile), default_client_token_file),
	}
}

func getTokenFromFile(tokenFilePath string) (*oauth2.Token, error) {
	file, err := os.Open(tokenFilePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(file).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (u *Uploader) service(ctx context.Context) (*youtube.Service, error) {
	byteData, err := os.ReadFile(u.ClientSecretFile)
	if err != nil {
		return nil, &AuthError{Reason: "read client secret", Err: err}
	}
	config, err := google.ConfigFromJSON(byteData, youtube.YoutubeUploadScope, youtube.YoutubeReadonlyScope)
	if err != nil {
		return nil, &AuthError{Reason: "parse client secret", Err: err}
	}

	token, err := getTokenFromFile(u.TokenFile)
	if err != nil {
		return nil, &AuthError{Reason: "load cached token (run youtube-token-generator first)", Err: err}
	}

	service, err := youtube.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
	if err != nil {
		return nil, &AuthError{Reason: "initialize service", Err: err}
	}
	return service, nil
}

// Upload publishes the video file with the given metadata and returns the
// platform video ID.
func (u *Uploader) Upload(videoFilePath string, meta Metadata) (string, error) {
	ctx := context.Background()

	service, err := u.service(ctx)
	if err != nil {
		return "", err
	}

	upload := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryId,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: meta.Privacy},
	}
	call := service.Videos.Insert([]string{"snippet,status"}, upload)

	file, err := os.Open(videoFilePath)
	if err != nil {
		return "", &UploadError{File: videoFilePath, Err: err}
	}
	defer file.Close()

	response, err := call.Media(file).Do()
	if err != nil {
		return "", &UploadError{File: videoFilePath, Err: err}
	}
	log.Printf("Upload successful! Video ID: %v\n", response.Id)
	return response.Id, nil
}

// ChannelStats returns view, subscriber and video counts for the
// authenticated user's channel.
func (u *Uploader) ChannelStats() (*ChannelStats, error) {
	ctx := context.Background()

	service, err := u.service(ctx)
	if err != nil {
		return nil, err
	}

	response, err := service.Channels.List([]string{"snippet", "statistics"}).Mine(true).Do()
	if err != nil {
		return nil, err
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("no channel found for authenticated user")
	}

	channel := response.Items[0]
	stats := &ChannelStats{}
	if channel.Snippet != nil {
		stats.Title = channel.Snippet.Title
	}
	if channel.Statistics != nil {
		stats.ViewCount = channel.Statistics.ViewCount
		stats.SubscriberCount = channel.Statistics.SubscriberCount
		stats.VideoCount = channel.Statistics.VideoCount
	}
	return stats, nil
}

// RecentUploads lists the newest entries from the authenticated channel's
// uploads playlist.
func (u *Uploader) RecentUploads(maxResults int64) ([]UploadedVideo, error) {
	ctx := context.Background()

	service, err := u.service(ctx)
	if err != nil {
		return nil, err
	}

	channels, err := service.Channels.List([]string{"contentDetails"}).Mine(true).Do()
	if err != nil {
		return nil, err
	}
	if len(channels.Items) == 0 || channels.Items[0].ContentDetails == nil {
		return nil, fmt.Errorf("no uploads playlist for authenticated user")
	}
	playlistId := channels.Items[0].ContentDetails.RelatedPlaylists.Uploads

	if maxResults <= 0 {
		maxResults = 10
	}
	items, err := service.PlaylistItems.List([]string{"snippet"}).PlaylistId(playlistId).MaxResults(maxResults).Do()
	if err != nil {
		return nil, err
	}

	var uploads []UploadedVideo
	for _, item := range items.Items {
		if item.Snippet == nil {
			continue
		}
		video := UploadedVideo{
			Title:       item.Snippet.Title,
			PublishedAt: item.Snippet.PublishedAt,
		}
		if item.Snippet.ResourceId != nil {
			video.VideoId = item.Snippet.ResourceId.VideoId
		}
		uploads = append(uploads, video)
	}
	return uploads, nil
}
