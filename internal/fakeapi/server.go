// Package fakeapi is an in-memory implementation of the bookkeeping backend's
// REST contract. It backs the client tests and `fakeapi` for local runs.
package fakeapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jask/bookkeep/internal/model"
)

// Options configures a Backend.
type Options struct {
	Logger zerolog.Logger
	// CheckDependencies refuses to delete vendors, wallets and expenses that
	// other records still reference.
	CheckDependencies bool
}

// Data is a full snapshot of the store.
type Data struct {
	Vendors  []model.Vendor
	Wallets  []model.Wallet
	Expenses []model.Expense
	Payments []model.Payment
	Deposits []model.Deposit
}

// Backend holds the records and serves them over HTTP.
type Backend struct {
	opts Options

	mu       sync.Mutex
	data     Data
	pending  map[string]int
	lastSync model.LastSync
	settings model.SyncSettings
	failures map[string]string
	now      func() time.Time
}

// New returns an empty backend.
func New(opts Options) *Backend {
	return &Backend{
		opts:     opts,
		pending:  map[string]int{},
		lastSync: model.LastSync{Status: "Never"},
		settings: model.SyncSettings{SyncFrequency: 300},
		failures: map[string]string{},
		now:      time.Now,
	}
}

// Seed replaces the store's contents.
func (b *Backend) Seed(d Data) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = Data{
		Vendors:  append([]model.Vendor(nil), d.Vendors...),
		Wallets:  append([]model.Wallet(nil), d.Wallets...),
		Expenses: append([]model.Expense(nil), d.Expenses...),
		Payments: append([]model.Payment(nil), d.Payments...),
		Deposits: append([]model.Deposit(nil), d.Deposits...),
	}
}

// Snapshot copies the store's contents.
func (b *Backend) Snapshot() Data {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Data{
		Vendors:  append([]model.Vendor(nil), b.data.Vendors...),
		Wallets:  append([]model.Wallet(nil), b.data.Wallets...),
		Expenses: append([]model.Expense(nil), b.data.Expenses...),
		Payments: append([]model.Payment(nil), b.data.Payments...),
		Deposits: append([]model.Deposit(nil), b.data.Deposits...),
	}
}

// Fail makes every request to route (e.g. "DELETE /v1/vendors/:id") answer
// with an application error carrying message. An empty message clears it.
func (b *Backend) Fail(route, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if message == "" {
		delete(b.failures, route)
		return
	}
	b.failures[route] = message
}

// Handler builds the gin engine serving /v1.
func (b *Backend) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), b.requestLogger(), b.injectFailures())

	v1 := r.Group("/v1")
	b.registerCollections(v1)
	b.registerLedger(v1)
	b.registerSync(v1)

	r.NoRoute(func(c *gin.Context) {
		respond(c, 404, "Not found", nil)
	})
	return r
}

func (b *Backend) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		b.opts.Logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetHeader("X-Request-ID")).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("fakeapi request")
	}
}

func (b *Backend) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.FullPath()
		b.mu.Lock()
		msg, ok := b.failures[route]
		b.mu.Unlock()
		if ok {
			respond(c, 500, msg, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// respond writes the envelope. Non-zero codes are sent with HTTP 400.
func respond(c *gin.Context, code int, message string, data gin.H) {
	body := gin.H{"code": code, "message": message}
	for k, v := range data {
		body[k] = v
	}
	status := http.StatusOK
	if code != 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, body)
}

func (b *Backend) markPending(resource string) {
	b.pending[resource]++
}

func (b *Backend) today() string {
	return b.now().Format(model.DateLayout)
}

func sheetName(path string) string {
	return strings.ToUpper(path[:1]) + path[1:]
}
