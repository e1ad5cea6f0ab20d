package model

import (
	"sort"
	"time"
)

// SyncStatus is the payload of GET sync/status.
type SyncStatus struct {
	PendingCount int          `json:"pending_count"`
	LastSync     LastSync     `json:"last_sync"`
	Settings     SyncSettings `json:"settings"`
}

// LastSync describes the most recent push. Time is whatever the backend wrote.
type LastSync struct {
	Time   *string `json:"time"`
	Status string  `json:"status"`
}

// SyncSettings are the backend's sync preferences.
type SyncSettings struct {
	SyncFrequency int `json:"sync_frequency"`
}

// SyncDiff is the payload of GET sync/diff.
type SyncDiff struct {
	PendingPush int                     `json:"pending_push"`
	PendingPull int                     `json:"pending_pull"`
	Details     map[string]ResourceDiff `json:"details"`
}

// ResourceDiff counts pending changes for one sheet.
type ResourceDiff struct {
	Push int `json:"push"`
	Pull int `json:"pull"`
}

// ResourceCount pairs a sheet name with its pending counts.
type ResourceCount struct {
	Name string
	ResourceDiff
}

var resourceOrder = map[string]int{"Vendors": 0, "Wallets": 1, "Expenses": 2, "Payments": 3, "Deposits": 4}

// Resources returns the diff details in a stable order.
func (d SyncDiff) Resources() []ResourceCount {
	out := make([]ResourceCount, 0, len(d.Details))
	for name, counts := range d.Details {
		out = append(out, ResourceCount{Name: name, ResourceDiff: counts})
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := resourceOrder[out[i].Name]
		oj, jok := resourceOrder[out[j].Name]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out
}

var syncTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// When parses the last sync time. ok is false when the backend has never synced.
func (l LastSync) When() (time.Time, bool) {
	if l.Time == nil || *l.Time == "" {
		return time.Time{}, false
	}
	for _, layout := range syncTimeLayouts {
		if t, err := time.Parse(layout, *l.Time); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
