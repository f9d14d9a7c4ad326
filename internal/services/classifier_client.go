package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
)

const (
	ClassifierOnline  = "online"
	ClassifierOffline = "offline"
)

// Classifier labels complaint text. The production implementation talks to
// the external analysis service over HTTP.
type Classifier interface {
	ClassifyOne(rawText string) (*dto.Classification, error)
	ClassifyBatch(filename string, data []byte) (*dto.BatchAnalysis, error)
	Status() string
	BaseURL() string
}

type ClassifierClient struct {
	baseURL string
	client  *http.Client
}

func NewClassifierClient(cfg *config.Config) *ClassifierClient {
	timeout := cfg.ClassifierTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ClassifierClient{
		baseURL: cfg.ClassifierURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *ClassifierClient) BaseURL() string {
	return c.baseURL
}

// ClassifyOne sends a single complaint to /analyze/single.
func (c *ClassifierClient) ClassifyOne(rawText string) (*dto.Classification, error) {
	reqBody, err := json.Marshal(dto.ClassifyRequest{RawText: rawText})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/analyze/single", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result dto.Classification
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClassifyBatch uploads a CSV file to /analyze/csv as multipart field "file".
func (c *ClassifierClient) ClassifyBatch(filename string, data []byte) (*dto.BatchAnalysis, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/analyze/csv", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result dto.BatchAnalysis
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status reports whether the classifier's /health endpoint answers 2xx.
func (c *ClassifierClient) Status() string {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return ClassifierOffline
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ClassifierOffline
	}
	return ClassifierOnline
}

func (c *ClassifierClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("classifier returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return nil
}
