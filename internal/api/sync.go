package api

import (
	"context"
	"net/http"

	"github.com/jask/bookkeep/internal/model"
)

// SyncStatus reads the backend's push queue and last sync outcome.
func (c *Client) SyncStatus(ctx context.Context) (model.SyncStatus, error) {
	var out model.SyncStatus
	env, err := c.Do(ctx, http.MethodGet, "sync/status", nil)
	if err != nil {
		return out, err
	}
	return out, env.Into(&out)
}

// SyncDiff reads per-sheet pending counts.
func (c *Client) SyncDiff(ctx context.Context) (model.SyncDiff, error) {
	var out model.SyncDiff
	env, err := c.Do(ctx, http.MethodGet, "sync/diff", nil)
	if err != nil {
		return out, err
	}
	return out, env.Into(&out)
}

// ForceSync starts a push of local changes to the spreadsheet.
func (c *Client) ForceSync(ctx context.Context) (string, error) {
	env, err := c.Do(ctx, http.MethodPost, "sync/force", nil)
	if err != nil {
		return "", err
	}
	return env.Message(), nil
}

// SaveSyncSettings stores the automatic sync interval in seconds.
func (c *Client) SaveSyncSettings(ctx context.Context, frequency int) (string, error) {
	body := model.SyncSettings{SyncFrequency: frequency}
	env, err := c.Do(ctx, http.MethodPost, "sync/settings", body)
	if err != nil {
		return "", err
	}
	return env.Message(), nil
}

// Pull replaces local records with the spreadsheet's contents.
func (c *Client) Pull(ctx context.Context) (string, error) {
	env, err := c.Do(ctx, http.MethodPost, "sync/pull", nil)
	if err != nil {
		return "", err
	}
	return env.Message(), nil
}
