package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/render"
)

// ErrInvalidFrequency rejects a sync interval that is not a positive number of seconds.
var ErrInvalidFrequency = errors.New("Please enter a valid frequency in seconds")

// Settings shows the spreadsheet sync state and triggers sync actions.
type Settings struct {
	Deps
}

// Load reads sync status then the per-sheet diff. A failure is returned as a
// panel describing the connection problem together with the error.
func (c *Settings) Load(ctx context.Context) (render.SyncPanel, error) {
	st, err := c.Client.SyncStatus(ctx)
	if err != nil {
		return render.SyncPanel{Failed: api.Message(err)}, err
	}
	diff, err := c.Client.SyncDiff(ctx)
	if err != nil {
		return render.SyncPanel{Failed: api.Message(err)}, err
	}

	last := ""
	if t, ok := st.LastSync.When(); ok {
		last = t.Local().Format("2006-01-02 15:04:05")
	} else if st.LastSync.Time != nil {
		last = *st.LastSync.Time
	}
	status := st.LastSync.Status
	if status == "" {
		status = "Never"
	}
	return render.SyncPanel{
		PendingPush: diff.PendingPush,
		LastStatus:  status,
		LastTime:    last,
		Resources:   diff.Resources(),
		Frequency:   strconv.Itoa(st.Settings.SyncFrequency),
	}, nil
}

// Push starts a background push of local changes.
func (c *Settings) Push(ctx context.Context) error {
	_, err := c.Client.ForceSync(ctx)
	return err
}

// SaveFrequency stores the automatic sync interval.
func (c *Settings) SaveFrequency(ctx context.Context, text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return ErrInvalidFrequency
	}
	_, err = c.Client.SaveSyncSettings(ctx, n)
	return err
}

// Pull replaces local records with the sheet's and reloads the lookup cache.
func (c *Settings) Pull(ctx context.Context) error {
	if _, err := c.Client.Pull(ctx); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}
