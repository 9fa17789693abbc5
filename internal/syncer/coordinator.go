// Package syncer mirrors the local entity store to a remote blob endpoint.
// Sync is best-effort and fire-and-forget: local state is already
// reconciled before it is pushed, and nothing locally depends on a push
// completing. Pulls replace the whole local bundle (last write wins).
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "proptrack/internal/errors"
	"proptrack/internal/models"
	"proptrack/internal/store"
)

// Config holds sync coordinator configuration.
type Config struct {
	Endpoint string // base URL of the blob proxy, e.g. https://sync.example.com
	Token    string // bearer token
	Debounce time.Duration
	Timeout  time.Duration
	Retry    RetryConfig
}

// Coordinator debounces pushes of the serialized entity bundle to the
// remote proxy and pulls remote state on demand.
type Coordinator struct {
	store  store.DataStore
	cfg    Config
	client *http.Client
	logger zerolog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	lastErr  error
	lastPush time.Time
}

// New creates a sync coordinator. A zero Debounce defaults to two seconds.
func New(s store.DataStore, cfg Config, logger zerolog.Logger) *Coordinator {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	return &Coordinator{
		store:  s,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Enabled reports whether a remote endpoint is configured.
func (c *Coordinator) Enabled() bool {
	return c.cfg.Endpoint != ""
}

// SchedulePush schedules a debounced background push. Repeated calls reset
// the timer: only the last scheduled push runs.
func (c *Coordinator) SchedulePush() {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.Debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
		defer cancel()
		if err := c.Push(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Background sync push failed")
		}
	})
}

// Flush cancels any pending debounced push and pushes immediately.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	return c.Push(ctx)
}

// FlushPending pushes now only if a debounced push is still waiting.
// Short-lived processes call this before exit so a scheduled push is not
// lost with the process.
func (c *Coordinator) FlushPending(ctx context.Context) error {
	c.mu.Lock()
	pending := c.timer != nil && c.timer.Stop()
	c.timer = nil
	c.mu.Unlock()

	if !pending {
		return nil
	}
	return c.Push(ctx)
}

// Push serializes the entity bundle and PUTs it to the proxy.
func (c *Coordinator) Push(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("sync endpoint not configured")
	}

	bundle, err := c.store.Bundle(ctx)
	if err != nil {
		return fmt.Errorf("snapshotting store: %w", err)
	}
	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}

	err = retry(ctx, c.cfg.Retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut,
			c.cfg.Endpoint+"/v1/blob", bytes.NewReader(payload))
		if err != nil {
			return permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		return checkStatus(resp)
	})

	c.mu.Lock()
	c.lastErr = err
	if err == nil {
		c.lastPush = time.Now()
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	if err := c.store.SetLastSync(ctx, time.Now()); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to record sync time")
	}
	c.logger.Debug().Int("bytes", len(payload)).Msg("Sync push complete")
	return nil
}

// Pull fetches the remote bundle and replaces the local store with it.
func (c *Coordinator) Pull(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("sync endpoint not configured")
	}

	var bundle models.Bundle
	err := retry(ctx, c.cfg.Retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.cfg.Endpoint+"/v1/blob", nil)
		if err != nil {
			return permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := checkStatus(resp); err != nil {
			return err
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &bundle); err != nil {
			return permanent(fmt.Errorf("decoding remote bundle: %w", err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := c.store.RestoreBundle(ctx, bundle); err != nil {
		return apperrors.Wrap(err, "restoring bundle")
	}
	if err := c.store.SetLastSync(ctx, time.Now()); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to record sync time")
	}
	c.logger.Info().
		Int("accounts", len(bundle.Accounts)).
		Int("trades", len(bundle.Trades)).
		Msg("Sync pull complete")
	return nil
}

// Status reports the coordinator's last push outcome.
func (c *Coordinator) Status() (lastPush time.Time, lastErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPush, c.lastErr
}

// Stop cancels any pending debounced push.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// checkStatus maps HTTP responses to errors; auth and client errors are
// permanent, server errors are retryable.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return permanent(apperrors.Wrapf(apperrors.ErrSyncRejected, "%s", resp.Status))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return permanent(fmt.Errorf("sync request invalid: %s", resp.Status))
	default:
		return fmt.Errorf("sync server error: %s", resp.Status)
	}
}
