package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"digitpad-go/infrastructure/imaging"
	"digitpad-go/infrastructure/logging"
)

// RemoteConfig contains configuration for a TensorFlow Serving style model
// endpoint.
type RemoteConfig struct {
	BaseURL        string
	ModelName      string
	Timeout        time.Duration
	HealthInterval time.Duration
	HealthTimeout  time.Duration
	Logger         *slog.Logger
}

// DefaultRemoteConfig returns default remote classifier configuration.
func DefaultRemoteConfig() *RemoteConfig {
	return &RemoteConfig{
		BaseURL:        "http://localhost:8501",
		ModelName:      "mnist",
		Timeout:        10 * time.Second,
		HealthInterval: 5 * time.Second,
		HealthTimeout:  3 * time.Second,
	}
}

// RemoteConfigFrom derives a remote configuration from a classifier config.
// A model URL of the form http://host/v1/models/NAME selects NAME.
func RemoteConfigFrom(cfg *Config) *RemoteConfig {
	rc := DefaultRemoteConfig()
	rc.BaseURL, rc.ModelName = splitModelURL(cfg.Model)
	if rc.ModelName == "" {
		rc.ModelName = cfg.ModelName
	}
	if cfg.Timeout > 0 {
		rc.Timeout = cfg.Timeout
	}
	if cfg.HealthInterval > 0 {
		rc.HealthInterval = cfg.HealthInterval
	}
	if cfg.HealthTimeout > 0 {
		rc.HealthTimeout = cfg.HealthTimeout
	}
	rc.Logger = cfg.Logger
	return rc
}

func splitModelURL(raw string) (base, name string) {
	raw = strings.TrimRight(raw, "/")
	u, err := url.Parse(raw)
	if err != nil {
		return raw, ""
	}

	const marker = "/v1/models/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return raw, ""
	}

	name = strings.TrimSuffix(u.Path[idx+len(marker):], ":predict")
	u.Path = u.Path[:idx]
	return strings.TrimRight(u.String(), "/"), name
}

// RemoteClassifier calls a served model over HTTP.
type RemoteClassifier struct {
	config       *RemoteConfig
	httpClient   *http.Client
	logger       *slog.Logger
	healthy      atomic.Bool
	healthCtx    context.Context
	healthCancel context.CancelFunc
	healthWg     sync.WaitGroup
}

// NewRemoteClassifier creates a client and fails if the model is not
// serving.
func NewRemoteClassifier(config *RemoteConfig) (*RemoteClassifier, error) {
	c := newRemoteClassifier(config)
	if !c.IsHealthy() {
		c.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, c.modelURL())
	}
	return c, nil
}

func newRemoteClassifier(config *RemoteConfig) *RemoteClassifier {
	if config == nil {
		config = DefaultRemoteConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.HealthInterval <= 0 {
		config.HealthInterval = 5 * time.Second
	}
	if config.HealthTimeout <= 0 {
		config.HealthTimeout = 3 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &RemoteClassifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger:       logger.With("component", "classifier", "backend", KindRemote),
		healthCtx:    ctx,
		healthCancel: cancel,
	}

	// Perform initial health check
	c.performHealthCheck()

	// Start background health check loop
	c.healthWg.Add(1)
	go c.healthCheckLoop()

	return c
}

func (c *RemoteClassifier) modelURL() string {
	return fmt.Sprintf("%s/v1/models/%s", strings.TrimRight(c.config.BaseURL, "/"), c.config.ModelName)
}

type predictRequest struct {
	Instances [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error"`
}

// Predict posts the tensor as a single [28][28][1] instance.
func (c *RemoteClassifier) Predict(ctx context.Context, input *imaging.Tensor) ([]float64, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if !c.IsHealthy() {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(predictRequest{Instances: [][][][]float32{toInstance(input)}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL()+":predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	logging.From(ctx).Debug("Remote prediction answered",
		"status", resp.StatusCode, "elapsed", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var apiResp predictResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if apiResp.Error != "" {
		return nil, fmt.Errorf("model error: %s", apiResp.Error)
	}
	if len(apiResp.Predictions) != 1 || len(apiResp.Predictions[0]) != OutputClasses {
		return nil, fmt.Errorf("%w: unexpected prediction shape", ErrModelShape)
	}

	return apiResp.Predictions[0], nil
}

func toInstance(t *imaging.Tensor) [][][]float32 {
	h, w := t.Shape[1], t.Shape[2]
	rows := make([][][]float32, h)
	for y := 0; y < h; y++ {
		rows[y] = make([][]float32, w)
		for x := 0; x < w; x++ {
			rows[y][x] = []float32{t.At(x, y)}
		}
	}
	return rows
}

// IsHealthy returns true if the model endpoint reported an available version.
func (c *RemoteClassifier) IsHealthy() bool {
	return c.healthy.Load()
}

// Name returns the backend and model URL.
func (c *RemoteClassifier) Name() string {
	return "remote:" + c.modelURL()
}

// Close stops the health check loop.
func (c *RemoteClassifier) Close() error {
	if c.healthCancel != nil {
		c.healthCancel()
	}
	c.healthWg.Wait()
	return nil
}

func (c *RemoteClassifier) healthCheckLoop() {
	defer c.healthWg.Done()

	ticker := time.NewTicker(c.config.HealthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.healthCtx.Done():
			return
		case <-ticker.C:
			c.performHealthCheck()
		}
	}
}

type modelStatus struct {
	ModelVersionStatus []struct {
		Version string `json:"version"`
		State   string `json:"state"`
	} `json:"model_version_status"`
}

func (c *RemoteClassifier) performHealthCheck() {
	ctx, cancel := context.WithTimeout(c.healthCtx, c.config.HealthTimeout)
	defer cancel()

	healthy := c.checkModelStatus(ctx)
	if c.healthy.Swap(healthy) != healthy {
		c.logger.Info("Model endpoint health changed", "healthy", healthy, "url", c.modelURL())
	}
}

func (c *RemoteClassifier) checkModelStatus(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelURL(), nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var status modelStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil || len(status.ModelVersionStatus) == 0 {
		// Plain health endpoints without a status document count as up.
		return true
	}
	for _, v := range status.ModelVersionStatus {
		if v.State == "AVAILABLE" {
			return true
		}
	}
	return false
}

var _ Classifier = (*RemoteClassifier)(nil)
