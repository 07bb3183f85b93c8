// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blogger is a minimal client for the Blogger v3 REST API: listing
// the caller's blogs and publishing a post. The OAuth access token is
// supplied per call and never kept.
package blogger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Blogger v3 endpoint.
const DefaultBaseURL = "https://www.googleapis.com/blogger/v3"

const (
	listFailedMessage    = "Failed to fetch blogs. Your session might have expired."
	publishFailedMessage = "Failed to publish post"
)

// ErrMissingToken is returned before any request when no access token is given.
var ErrMissingToken = errors.New("blogger: access token is required")

// APIError is a non-2xx answer from Blogger. Message is safe to show to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blogger: %s (status %d)", e.Message, e.StatusCode)
}

// Blog is one entry of the user's blog list.
type Blog struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Post is the content to publish.
type Post struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels"`
	IsDraft bool     `json:"is_draft"`
}

// PostResult identifies a created post.
type PostResult struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Client talks to the Blogger API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL, or DefaultBaseURL when empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListBlogs returns the blogs owned by the token's user.
func (c *Client) ListBlogs(ctx context.Context, token string) ([]Blog, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/self/blogs", nil)
	if err != nil {
		return nil, fmt.Errorf("blogger: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blogger: list blogs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: listFailedMessage}
	}

	var out struct {
		Items []Blog `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("blogger: decode blogs: %w", err)
	}
	if out.Items == nil {
		out.Items = []Blog{}
	}
	return out.Items, nil
}

type postRequest struct {
	Kind    string   `json:"kind"`
	Blog    blogRef  `json:"blog"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels"`
}

type blogRef struct {
	ID string `json:"id"`
}

// Publish creates a post on blogID. Drafts stay unpublished on Blogger.
func (c *Client) Publish(ctx context.Context, token, blogID string, post Post) (*PostResult, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if blogID == "" {
		return nil, fmt.Errorf("blogger: blog id is required")
	}

	labels := post.Labels
	if labels == nil {
		labels = []string{}
	}
	payload, err := json.Marshal(postRequest{
		Kind:    "blogger#post",
		Blog:    blogRef{ID: blogID},
		Title:   post.Title,
		Content: post.Content,
		Labels:  labels,
	})
	if err != nil {
		return nil, fmt.Errorf("blogger: marshal post: %w", err)
	}

	endpoint := c.baseURL + "/blogs/" + url.PathEscape(blogID) + "/posts?isDraft=" + strconv.FormatBool(post.IsDraft)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("blogger: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blogger: publish: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("blogger: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body, publishFailedMessage)}
	}

	var result PostResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("blogger: decode post: %w", err)
	}
	return &result, nil
}

// errorMessage pulls error.message out of a Google API error body.
func errorMessage(body []byte, fallback string) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil || strings.TrimSpace(e.Error.Message) == "" {
		return fallback
	}
	return e.Error.Message
}
