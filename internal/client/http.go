package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPClient makes REST calls to the Ripple chat backend.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g. "http://127.0.0.1:8080").
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a new message to the room. The server assigns identity and
// timestamps and echoes the message back over the WebSocket stream.
func (c *HTTPClient) Send(room, body string) (*Message, error) {
	var out Message
	path := "/api/rooms/" + url.PathEscape(room) + "/messages"
	if err := c.post(path, SendRequest{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches a page of messages older than the given message ID.
// An empty beforeID fetches the most recent page.
func (c *HTTPClient) History(room, beforeID string, limit int) (*HistoryPage, error) {
	var page HistoryPage
	path := "/api/rooms/" + url.PathEscape(room) + "/history?limit=" + strconv.Itoa(limit)
	if beforeID != "" {
		path += "&before=" + url.QueryEscape(beforeID)
	}
	if err := c.get(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Roster fetches the room's member list.
func (c *HTTPClient) Roster(room string) ([]Member, error) {
	var out []Member
	if err := c.get("/api/rooms/"+url.PathEscape(room)+"/members", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
