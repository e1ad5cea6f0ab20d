// Package controller builds the view models for each screen and performs the
// mutations behind them.
package controller

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/model"
	"github.com/jask/bookkeep/internal/money"
	"github.com/jask/bookkeep/internal/render"
)

// Screen is a list screen with a detail panel and delete.
type Screen interface {
	List(ctx context.Context) (render.Table, error)
	Detail(ctx context.Context, id string) (render.Detail, error)
	Delete(ctx context.Context, id string) error
}

// Editor is a screen whose records are edited through a generic form.
type Editor interface {
	Screen
	Form(ctx context.Context, id string) (*render.Form, error)
}

// Deps are shared by every controller.
type Deps struct {
	Client *api.Client
	Cache  *lookup.Cache
	Symbol string
	Log    zerolog.Logger
	// DateFormat is a Go time layout for displayed dates. Empty shows the
	// backend's text unchanged.
	DateFormat string
}

// ErrInvalidAmount is returned by expense saves with a non-positive total.
var ErrInvalidAmount = errors.New("Please enter a valid amount")

func (d Deps) money(v decimal.Decimal) string {
	return money.Format(v, d.Symbol)
}

// date renders a wire date in the configured layout. Dates that do not parse
// are shown as sent.
func (d Deps) date(s string) string { return model.FormatDate(s, d.DateFormat) }

// refresh reloads the lookup cache after a vendor or wallet change. A failure
// is logged and otherwise ignored; the mutation itself already succeeded.
func (d Deps) refresh(ctx context.Context) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Refresh(ctx); err != nil {
		d.Log.Warn().Err(err).Msg("lookup refresh failed")
	}
}

func notFound(label string) error {
	return &api.Error{Message: label + " not found"}
}
