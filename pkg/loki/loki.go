package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

//thanks to https://github.com/paul-milne/zap-loki

var ErrStopped = errors.New("loki pusher is stopped")

type Logger interface {
	Error(msg string, args ...any)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config describes the Loki push endpoint. Only Url is required.
type Config struct {
	Url string `validate:"required,url"`

	// TenantKey/TenantValue set a tenant header (e.g. X-Scope-OrgID) when both are given.
	TenantKey   string
	TenantValue string

	Username string
	Password string

	// A batch is pushed when it holds BatchMaxSize lines or BatchMaxWait has passed.
	BatchMaxSize int           `validate:"gte=1"`
	BatchMaxWait time.Duration `validate:"gte=1"`

	Labels map[string]string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type Pusher struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    HTTPClient
	quit      chan struct{}
	stopOnce  sync.Once
	entry     chan LogEntry
	waitGroup sync.WaitGroup
	batch     *batch
	logger    Logger
}

type LogEntry struct {
	Time    time.Time         `json:"-"`
	Level   string            `json:"level"`
	Message string            `json:"msg"`
	Caller  string            `json:"caller,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type lokiPushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

type streamValue []string

// batch groups pending lines into one stream per level, so every pushed line carries
// a "level" label next to the configured ones.
type batch struct {
	order  []string
	values map[string][]streamValue
	size   int
}

func newBatch() *batch {
	return &batch{values: map[string][]streamValue{}}
}

func (b *batch) add(level string, value streamValue) {
	if level == "" {
		level = "unknown"
	}
	if _, ok := b.values[level]; !ok {
		b.order = append(b.order, level)
	}
	b.values[level] = append(b.values[level], value)
	b.size++
}

func (b *batch) streams(labels map[string]string) []stream {
	streams := make([]stream, 0, len(b.order))
	for _, level := range b.order {
		streamLabels := make(map[string]string, len(labels)+1)
		for key, value := range labels {
			streamLabels[key] = value
		}
		streamLabels["level"] = level
		streams = append(streams, stream{Stream: streamLabels, Values: b.values[level]})
	}
	return streams
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {
	return NewWithClient(ctx, cfg, logger, &http.Client{Timeout: 10 * time.Second})
}

func NewWithClient(ctx context.Context, cfg Config, logger Logger, client HTTPClient) (*Pusher, error) {

	cfg.setDefaults()
	err := validator.New().Struct(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config: &cfg,
		ctx:    ctx,
		cancel: cancel,
		client: client,
		quit:   make(chan struct{}),
		entry:  make(chan LogEntry),
		batch:  newBatch(),
		logger: logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues a log line for the next batch. It returns ErrStopped once the pusher is stopped.
func (p *Pusher) Push(e LogEntry) error {
	select {
	case p.entry <- e:
		return nil
	case <-p.quit:
		return ErrStopped
	case <-p.ctx.Done():
		return ErrStopped
	}
}

// Stop flushes the pending batch and stops the pusher.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.waitGroup.Wait()
		p.cancel()
	})
}

func (p *Pusher) run() {
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	trySendBatch := func() {
		err := p.send()
		if err != nil {
			p.logger.Error("failed to send logs", "error", err)
		}
		p.batch = newBatch()
	}

	defer func() {
		if p.batch.size > 0 {
			trySendBatch()
		}

		p.waitGroup.Done()
	}()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.quit:
			return
		case entry := <-p.entry:
			if value := newLog(entry); value != nil {
				p.batch.add(entry.Level, value)
			}
			if p.batch.size >= p.config.BatchMaxSize {
				trySendBatch()
			}
		case <-ticker.C:
			if p.batch.size > 0 {
				trySendBatch()
			}
		}
	}
}

func newLog(entry LogEntry) streamValue {
	entryJson, err := json.Marshal(entry)
	if err != nil {
		return nil
	}
	at := entry.Time
	if at.IsZero() {
		at = time.Now()
	}
	timestamp := strconv.FormatInt(at.UnixNano(), 10)
	return []string{timestamp, string(entryJson)}
}

func (p *Pusher) encodeBatch() (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	err := json.NewEncoder(gz).Encode(lokiPushRequest{Streams: p.batch.streams(p.config.Labels)})
	if err != nil {
		return nil, err
	}
	return buf, gz.Close()
}

func (p *Pusher) newRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	if p.config.TenantKey != "" && p.config.TenantValue != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}
	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}
	return req, nil
}

func (p *Pusher) send() error {
	body, err := p.encodeBatch()
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	// the final flush runs after quit, so the request must not inherit p.ctx cancellation
	ctx, cancel := context.WithTimeout(context.WithoutCancel(p.ctx), 10*time.Second)
	defer cancel()

	req, err := p.newRequest(ctx, body)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		details, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected Loki response %s: %s", resp.Status, string(details))
	}
	return nil
}
