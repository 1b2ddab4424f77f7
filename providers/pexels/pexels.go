package pexels

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/shortchaser/shortchaser/utils/restclient"
)

const (
	search_url = "https://api.pexels.com/videos/search"
)

// ServiceError reports a failed or empty search against the stock footage
// service.
type ServiceError struct {
	Query  string
	Reason string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("pexels search %q: %s", e.Query, e.Reason)
}

// DownloadError reports a selected clip that could not be retrieved.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Clip is one candidate stock video returned by a search.
type Clip struct {
	ID       int
	Duration int
	URL      string
}

type searchResponse struct {
	Videos []struct {
		ID         int `json:"id"`
		Duration   int `json:"duration"`
		VideoFiles []struct {
			Link    string `json:"link"`
			Quality string `json:"quality"`
			Width   int    `json:"width"`
			Height  int    `json:"height"`
		} `json:"video_files"`
	} `json:"videos"`
}

type Client struct {
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

// Search returns candidate clips for the query, most relevant first. The
// first downloadable file of each video is selected.
func (c *Client) Search(query string, perPage int) ([]Clip, error) {
	if perPage < 1 {
		perPage = 1
	}
	requestURL := fmt.Sprintf("%s?query=%s&per_page=%d", search_url, url.QueryEscape(query), perPage)

	res, err := restclient.Get(requestURL, http.Header{"Authorization": {c.apiKey}})
	if err != nil {
		return nil, &ServiceError{Query: query, Reason: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &ServiceError{Query: query, Reason: fmt.Sprintf("unexpected status %d", res.StatusCode)}
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, &ServiceError{Query: query, Reason: "invalid response: " + err.Error()}
	}
	if len(parsed.Videos) == 0 {
		return nil, &ServiceError{Query: query, Reason: "no stock video found"}
	}

	var clips []Clip
	for _, video := range parsed.Videos {
		if len(video.VideoFiles) == 0 {
			continue
		}
		clips = append(clips, Clip{
			ID:       video.ID,
			Duration: video.Duration,
			URL:      video.VideoFiles[0].Link,
		})
	}
	if len(clips) == 0 {
		return nil, &ServiceError{Query: query, Reason: "no downloadable files in results"}
	}
	return clips, nil
}

// Fetch searches for the query and downloads up to count clips into
// targetDir, returning the local file paths.
func (c *Client) Fetch(query string, count int, targetDir string) ([]string, error) {
	clips, err := c.Search(query, count)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		return nil, err
	}

	var paths []string
	for index, clip := range clips {
		if index >= count {
			break
		}
		localPath := filepath.Join(targetDir, fmt.Sprintf("clip_%03d.mp4", index))
		if err := download(clip.URL, localPath); err != nil {
			return nil, err
		}
		paths = append(paths, localPath)
	}
	return paths, nil
}

func download(clipURL string, localPath string) error {
	res, err := restclient.Get(clipURL, nil)
	if err != nil {
		return &DownloadError{URL: clipURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &DownloadError{URL: clipURL, Err: fmt.Errorf("unexpected status %d", res.StatusCode)}
	}

	out, err := os.Create(localPath)
	if err != nil {
		return &DownloadError{URL: clipURL, Err: err}
	}
	defer out.Close()

	written, err := io.Copy(out, res.Body)
	if err != nil {
		return &DownloadError{URL: clipURL, Err: err}
	}
	if written == 0 {
		return &DownloadError{URL: clipURL, Err: fmt.Errorf("empty clip body")}
	}
	return nil
}
