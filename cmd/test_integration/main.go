package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("CHAPI_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	fmt.Println("Starting smoke test against", baseURL)

	// 1. Health
	fmt.Println("1. Checking health...")
	var health struct {
		Status   string `json:"status"`
		Articles int    `json:"articles"`
	}
	if !sendRequest(baseURL, "GET", "/api/health", nil, &health) || health.Status != "ok" {
		fmt.Println("FAILED: Health")
		os.Exit(1)
	}
	fmt.Printf("PASSED: Health (%d articles loaded)\n", health.Articles)

	// 2. Search
	fmt.Println("2. Searching articles...")
	var search struct {
		Results []json.RawMessage `json:"results"`
	}
	if !sendRequest(baseURL, "GET", "/api/articles/search?q="+url.QueryEscape("multa por exceso de velocidad"), nil, &search) {
		fmt.Println("FAILED: Search")
		os.Exit(1)
	}
	if health.Articles > 0 && len(search.Results) == 0 {
		fmt.Println("FAILED: Search returned no results from a non-empty corpus")
		os.Exit(1)
	}
	fmt.Printf("PASSED: Search (%d results)\n", len(search.Results))

	// 3. Chat
	fmt.Println("3. Asking the assistant...")
	var chat struct {
		Response string `json:"response"`
		Success  bool   `json:"success"`
	}
	payload := map[string]any{
		"message":             "¿Cuál es la multa por pasarse un semáforo en rojo?",
		"conversationHistory": []map[string]string{},
	}
	if !sendRequest(baseURL, "POST", "/api/chat", payload, &chat) || !chat.Success || chat.Response == "" {
		fmt.Println("FAILED: Chat")
		os.Exit(1)
	}
	fmt.Println("PASSED: Chat")
}

func sendRequest(baseURL, method, endpoint string, payload, out any) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}
