package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/form"
	"github.com/dvloznov/finance-entry/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrClosed is returned once the loop has been stopped.
var ErrClosed = errors.New("session is closed")

// LoadHandler is told whether each finished category load was applied.
type LoadHandler func(load form.Load, applied bool)

// ErrorHandler is told about events that were rejected.
type ErrorHandler func(ev Event, err error)

// Loop serialises every interaction with one form page. Events are applied
// one at a time on the loop goroutine; only category fetches run elsewhere,
// and their results re-enter the loop as events.
type Loop struct {
	id   string
	page *form.Page
	log  zerolog.Logger

	events    chan Event
	closeChan chan struct{}
	closeOnce sync.Once
	loopWG    sync.WaitGroup
	fetchWG   sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	started  bool
	fetchCtx context.Context
	cancel   context.CancelFunc
	onLoad   LoadHandler
	onError  ErrorHandler
}

// New creates a loop over page. bufferSize bounds how many events can be
// queued before Publish blocks.
func New(page *form.Page, log zerolog.Logger, bufferSize int) *Loop {
	id := uuid.New().String()
	return &Loop{
		id:        id,
		page:      page,
		log:       logger.WithFields(log, map[string]interface{}{"session_id": id}),
		events:    make(chan Event, bufferSize),
		closeChan: make(chan struct{}),
	}
}

// ID returns the session id.
func (l *Loop) ID() string {
	return l.id
}

// OnLoad registers a handler called on the loop after each category load.
func (l *Loop) OnLoad(fn LoadHandler) {
	l.mu.Lock()
	l.onLoad = fn
	l.mu.Unlock()
}

// OnError registers a handler called on the loop for rejected events.
func (l *Loop) OnError(fn ErrorHandler) {
	l.mu.Lock()
	l.onError = fn
	l.mu.Unlock()
}

// Publish enqueues ev.
func (l *Loop) Publish(ctx context.Context, ev Event) error {
	l.mu.RLock()
	closed := l.closed
	l.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	select {
	case l.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.closeChan:
		return ErrClosed
	}
}

// Init queues the initial page state: expense type, expense tab and Buy.
func (l *Loop) Init(ctx context.Context) error {
	for _, ev := range []Event{
		SetTypeEvent{Type: domain.TypeExpense},
		ShowTabEvent{Tab: form.TabExpense},
		ActionEvent{Action: domain.ActionBuy},
	} {
		if err := l.Publish(ctx, ev); err != nil {
			return fmt.Errorf("Init: %w", err)
		}
	}
	return nil
}

// Start runs the loop until ctx is done or Stop is called. Category fetches
// use a context derived from ctx. Cancelling ctx closes the loop the same way
// Stop does.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if l.started {
		return fmt.Errorf("session %s already started", l.id)
	}
	l.started = true
	l.fetchCtx, l.cancel = context.WithCancel(ctx)

	l.loopWG.Add(1)
	go l.run(ctx)

	l.log.Debug().Msg("Session started")
	return nil
}

func (l *Loop) run(ctx context.Context) {
	defer l.loopWG.Done()

	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			return
		case <-l.closeChan:
			return
		case ev := <-l.events:
			if ctx.Err() != nil {
				l.shutdown()
				return
			}
			l.dispatch(ev)
		}
	}
}

// shutdown marks the loop closed, releases everything blocked on it and
// cancels in-flight fetches.
func (l *Loop) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	l.closeOnce.Do(func() { close(l.closeChan) })
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *Loop) dispatch(ev Event) {
	err := ev.apply(l)
	if err == nil {
		return
	}

	l.log.Warn().Err(err).Str("event", fmt.Sprintf("%T", ev)).Msg("Event rejected")
	l.mu.RLock()
	fn := l.onError
	l.mu.RUnlock()
	if fn != nil {
		fn(ev, err)
	}
}

// startFetch runs on the loop goroutine.
func (l *Loop) startFetch(load form.Load) {
	l.mu.RLock()
	ctx := l.fetchCtx
	l.mu.RUnlock()

	l.fetchWG.Add(1)
	go func() {
		defer l.fetchWG.Done()

		tree, err := l.page.Transaction.Fetch(ctx, load)
		select {
		case l.events <- loadCompleted{load: load, tree: tree, err: err}:
		case <-l.closeChan:
		}
	}()
}

// Snapshot returns a copy of the page once every event queued before it has
// been applied.
func (l *Loop) Snapshot(ctx context.Context) (form.PageView, error) {
	reply := make(chan form.PageView, 1)
	if err := l.Publish(ctx, snapshotRequest{reply: reply}); err != nil {
		return form.PageView{}, err
	}

	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return form.PageView{}, ctx.Err()
	case <-l.closeChan:
		return form.PageView{}, ErrClosed
	}
}

// Stop stops the loop, cancels in-flight fetches and waits for them to
// return. Queued events that were not yet applied are dropped. A loop whose
// start context was cancelled has already shut itself down; Stop then only
// waits.
func (l *Loop) Stop(ctx context.Context) error {
	l.shutdown()

	done := make(chan struct{})
	go func() {
		l.loopWG.Wait()
		l.fetchWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		l.log.Debug().Msg("Session stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop without a deadline.
func (l *Loop) Close() error {
	return l.Stop(context.Background())
}
