package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/internal/session"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

const serviceName = "rating service"

// Client talks to the rating service over its JSON HTTP API
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        logrus.FieldLogger
}

// Config holds configuration for the rating service client
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// NewClient creates a new rating service client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		log:        cfg.Logger.WithField("component", "client"),
	}
}

type progressResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	NextIndex int `json:"next_index"`
}

type annotateRequest struct {
	AnnotatorID string `json:"annotator_id"`
	Filename    string `json:"filename"`
	Valence     int    `json:"valence"`
	Arousal     int    `json:"arousal"`
	Dominance   int    `json:"dominance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListClips returns the clip queue in service order
func (c *Client) ListClips(ctx context.Context) ([]string, error) {
	var clips []string
	if err := c.do(ctx, http.MethodGet, "/api/clips", nil, &clips); err != nil {
		return nil, err
	}
	if clips == nil {
		clips = []string{}
	}
	return clips, nil
}

// GetProgress returns the annotator's saved progress
func (c *Client) GetProgress(ctx context.Context, annotatorID string) (session.Progress, error) {
	var resp progressResponse
	endpoint := "/api/progress/" + url.PathEscape(annotatorID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return session.Progress{}, err
	}
	return session.Progress{
		Total:     resp.Total,
		Completed: resp.Completed,
		NextIndex: resp.NextIndex,
	}, nil
}

// SubmitRating persists one rating vector
func (c *Client) SubmitRating(ctx context.Context, s session.Submission) error {
	body := annotateRequest{
		AnnotatorID: s.AnnotatorID,
		Filename:    s.Filename,
		Valence:     s.Valence,
		Arousal:     s.Arousal,
		Dominance:   s.Dominance,
	}
	return c.do(ctx, http.MethodPost, "/api/annotate", body, nil)
}

// ClipURI resolves a clip filename to its audio resource
func (c *Client) ClipURI(filename string) string {
	return c.baseURL + "/audio/" + url.PathEscape(filename)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, result interface{}) error {
	fullURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encoding request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": fullURL}).Debug("calling rating service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.log.WithError(err).WithField("url", fullURL).Warn("rating service timed out")
			return apperrors.Wrap(err, apperrors.ErrCodeAPITimeout, "rating service timed out")
		}
		c.log.WithError(err).WithField("url", fullURL).Error("rating service unreachable")
		return apperrors.Wrap(err, apperrors.ErrCodeServiceDown, "rating service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := readErrorReason(resp.Body)
		c.log.WithFields(logrus.Fields{
			"url":    fullURL,
			"status": resp.StatusCode,
			"reason": reason,
		}).Warn("rating service returned error")
		return apperrors.ExternalServiceError(serviceName, reason, resp.StatusCode)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, fmt.Sprintf("decoding %s response", endpoint))
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}

// readErrorReason pulls the "error" field out of a failure body, or
// "unknown" when there is none
func readErrorReason(r io.Reader) string {
	var er errorResponse
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&er); err != nil || er.Error == "" {
		return "unknown"
	}
	return er.Error
}
