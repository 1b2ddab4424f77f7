package mockclient

import (
	"net/http"
)

// MockClient satisfies restclient.HTTPClient in tests. Set GetDoFunc before
// making a request.
type MockClient struct{}

var (
	GetDoFunc func(req *http.Request) (*http.Response, error)
)

func (m *MockClient) Do(req *http.Request) (*http.Response, error) {
	return GetDoFunc(req)
}
