package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a thin JSON client for the crewd API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
}

type TaskView struct {
	TaskID string  `json:"task_id"`
	Status string  `json:"status"`
	Result *string `json:"result"`
}

type AgentView struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Goal string `json:"goal"`
}

type HealthView struct {
	Status          string `json:"status"`
	Store           string `json:"store"`
	AgentsAvailable int    `json:"agents_available"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) SubmitTask(ctx context.Context, description, taskType string) (*TaskView, error) {
	body, err := json.Marshal(map[string]string{
		"description": description,
		"type":        taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	var t TaskView
	if err := c.do(ctx, http.MethodPost, "/tasks", bytes.NewReader(body), &t); err != nil {
		return nil, fmt.Errorf("failed to submit task: %w", err)
	}
	return &t, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*TaskView, error) {
	var t TaskView
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &t); err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

func (c *Client) ListAgents(ctx context.Context) ([]AgentView, error) {
	var resp struct {
		Agents []AgentView `json:"agents"`
	}
	if err := c.do(ctx, http.MethodGet, "/agents", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return resp.Agents, nil
}

func (c *Client) Health(ctx context.Context) (*HealthView, error) {
	var h HealthView
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, fmt.Errorf("failed to check health: %w", err)
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
