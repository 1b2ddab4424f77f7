package pexels

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/shortchaser/shortchaser/utils/mockclient"
	"github.com/shortchaser/shortchaser/utils/restclient"
	"github.com/stretchr/testify/assert"
)

func init() {
	restclient.Client = &mockclient.MockClient{}
}

const searchBody = `{
	"videos": [
		{
			"id": 857251,
			"duration": 15,
			"video_files": [
				{"link": "https://videos.example.com/857251-hd.mp4", "quality": "hd", "width": 1920, "height": 1080},
				{"link": "https://videos.example.com/857251-sd.mp4", "quality": "sd", "width": 640, "height": 360}
			]
		},
		{
			"id": 903417,
			"duration": 22,
			"video_files": [
				{"link": "https://videos.example.com/903417-hd.mp4", "quality": "hd", "width": 1920, "height": 1080}
			]
		}
	]
}`

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       ioutil.NopCloser(bytes.NewReader([]byte(body))),
		Header:     http.Header{},
	}
}

func TestSearch(t *testing.T) {
	var gotAuth string
	mockclient.GetDoFunc = func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		return httpResponse(200, searchBody), nil
	}

	client := NewClient("px-key")
	clips, err := client.Search("city skyline", 2)
	assert.Nil(t, err)
	assert.EqualValues(t, "px-key", gotAuth)
	assert.EqualValues(t, 2, len(clips))
	assert.EqualValues(t, 857251, clips[0].ID)
	assert.EqualValues(t, "https://videos.example.com/857251-hd.mp4", clips[0].URL)
	assert.EqualValues(t, 22, clips[1].Duration)
}

func TestSearchNoResults(t *testing.T) {
	mockclient.GetDoFunc = func(*http.Request) (*http.Response, error) {
		return httpResponse(200, `{"videos": []}`), nil
	}

	client := NewClient("px-key")
	_, err := client.Search("nothing matches this", 1)

	var serviceErr *ServiceError
	assert.True(t, errors.As(err, &serviceErr))
	assert.EqualValues(t, "nothing matches this", serviceErr.Query)
}

func TestSearchBadStatus(t *testing.T) {
	mockclient.GetDoFunc = func(*http.Request) (*http.Response, error) {
		return httpResponse(401, `{"error": "unauthorized"}`), nil
	}

	client := NewClient("bad-key")
	_, err := client.Search("city", 1)

	var serviceErr *ServiceError
	assert.True(t, errors.As(err, &serviceErr))
}

func TestFetch(t *testing.T) {
	clipData := []byte("fake mp4 payload")
	mockclient.GetDoFunc = func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "api.pexels.com" {
			return httpResponse(200, searchBody), nil
		}
		return &http.Response{
			StatusCode: 200,
			Body:       ioutil.NopCloser(bytes.NewReader(clipData)),
			Header:     http.Header{},
		}, nil
	}

	dir := t.TempDir()
	client := NewClient("px-key")
	paths, err := client.Fetch("city skyline", 2, dir)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, len(paths))
	assert.EqualValues(t, filepath.Join(dir, "clip_000.mp4"), paths[0])

	for _, p := range paths {
		info, statErr := os.Stat(p)
		assert.Nil(t, statErr)
		assert.EqualValues(t, len(clipData), info.Size())
	}
}

func TestFetchEmptyDownload(t *testing.T) {
	mockclient.GetDoFunc = func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "api.pexels.com" {
			return httpResponse(200, searchBody), nil
		}
		return httpResponse(200, ""), nil
	}

	client := NewClient("px-key")
	_, err := client.Fetch("city skyline", 1, t.TempDir())

	var downloadErr *DownloadError
	assert.True(t, errors.As(err, &downloadErr))
}

func TestDownloadUnwritablePath(t *testing.T) {
	mockclient.GetDoFunc = func(*http.Request) (*http.Response, error) {
		return httpResponse(200, "fake mp4 payload"), nil
	}

	localPath := filepath.Join(t.TempDir(), "missing-dir", "clip_000.mp4")
	err := download("https://videos.example.com/857251-hd.mp4", localPath)

	var downloadErr *DownloadError
	assert.True(t, errors.As(err, &downloadErr))
	assert.EqualValues(t, "https://videos.example.com/857251-hd.mp4", downloadErr.URL)
}

func TestFetchDownloadFailure(t *testing.T) {
	mockclient.GetDoFunc = func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "api.pexels.com" {
			return httpResponse(200, searchBody), nil
		}
		return nil, fmt.Errorf("connection reset")
	}

	client := NewClient("px-key")
	_, err := client.Fetch("city skyline", 1, t.TempDir())

	var downloadErr *DownloadError
	assert.True(t, errors.As(err, &downloadErr))
	assert.EqualValues(t, "https://videos.example.com/857251-hd.mp4", downloadErr.URL)
}
