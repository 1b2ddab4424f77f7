package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	youtube "google.golang.org/api/youtube/v3"
)

// Runs the one-time console OAuth flow and caches the resulting token as
// client_token.json next to the client secret file, where the uploader
// expects it.
func main() {

	// Check arguments.
	if len(os.Args) != 2 {
		fmt.Println("youtube-token-generator [client secret file path]")
		os.Exit(0)
	}
	clientSecretFilePath := os.Args[1]

	// Load client config
	byteData, err := os.ReadFile(clientSecretFilePath)
	if err != nil {
		log.Fatal(err)
	}
	config, err := google.ConfigFromJSON(byteData, youtube.YoutubeUploadScope, youtube.YoutubeReadonlyScope)
	if err != nil {
		log.Fatal(err)
	}

	// Ask user to access link from browser to get auth code
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Browser URL: \n%v\n", authURL)

	// Wait for user to enter code
	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatal(err)
	}

	// Confirm code from user
	token, err := config.Exchange(oauth2.NoContext, code)
	if err != nil {
		log.Fatal(err)
	}

	// Save token file
	tokenCacheFilePath := filepath.Join(filepath.Dir(clientSecretFilePath), "client_token.json")
	fmt.Printf("Saving credential file to: %s\n", tokenCacheFilePath)
	file, err := os.OpenFile(tokenCacheFilePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(token); err != nil {
		log.Fatal(err)
	}
}
