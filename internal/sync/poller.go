package sync

import (
	"context"
	"log"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/notify"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 30 * time.Second

// pollTimeout is the maximum time allowed for a single poll.
const pollTimeout = 10 * time.Second

// ReminderSource is the slice of the domain operations the poller needs.
type ReminderSource interface {
	DueReminders(ctx context.Context, at time.Time) ([]model.Reminder, error)
	AcknowledgeReminder(ctx context.Context, id int64, status any) (*model.Reminder, error)
}

// DueRemindersMsg is a tea.Msg sent after every completed poll.
type DueRemindersMsg struct {
	// At is the instant the poll evaluated "due" against.
	At time.Time

	// Reminders is the full current due set.
	Reminders []model.Reminder

	// Fresh holds notifications for reminders seen for the first time.
	Fresh []model.Notification

	Err error
}

// PollState describes the outcome of the latest poll.
type PollState struct {
	LastPoll time.Time
	Error    error
	Running  bool
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the poll interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithSink sets where fresh notifications are delivered.
func WithSink(s notify.Sink) Option {
	return func(p *Poller) { p.sink = s }
}

// WithClock overrides the clock used for "now".
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// Poller periodically queries due reminders. Each reminder is delivered to
// the sink at most once per Poller; due reminders are never acknowledged
// automatically.
type Poller struct {
	src      ReminderSource
	sink     notify.Sink
	interval time.Duration
	now      func() time.Time

	resultCh  chan DueRemindersMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu         gosync.Mutex
	running    bool
	generation uint64
	due        []model.Reminder
	seen       map[int64]bool
	state      PollState
}

// New creates a Poller over src.
func New(src ReminderSource, opts ...Option) *Poller {
	p := &Poller{
		src:       src,
		interval:  DefaultInterval,
		now:       time.Now,
		resultCh:  make(chan DueRemindersMsg, 16),
		triggerCh: make(chan struct{}, 1),
		seen:      make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start launches the polling goroutine. It polls immediately, then on every
// tick until Stop. Calling Start on a running poller does nothing.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.state.Running = true
	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	p.mu.Unlock()

	log.Printf("[poller] started (interval %s)", p.interval)
	go p.loop(stopCh)
}

// Stop halts the polling goroutine. An in-flight poll finishes, but its
// result is discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
	p.state.Running = false
	p.generation++
	log.Println("[poller] stopped")
}

// Refresh requests an immediate poll from the running loop.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A poll is already pending.
	}
	return nil
}

func (p *Poller) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.poll()
		case <-p.triggerCh:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	if msg, ok := p.Tick(ctx); ok {
		p.sendResult(msg)
	}
}

// Tick runs one poll. It reports false when a later poll (or Stop) has
// superseded this one; the result is then discarded and nothing is
// delivered.
func (p *Poller) Tick(ctx context.Context) (DueRemindersMsg, bool) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	at := p.now().UTC()
	items, err := p.src.DueReminders(ctx, at)

	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return DueRemindersMsg{}, false
	}

	p.state.LastPoll = at
	p.state.Error = err
	if err != nil {
		// Keep the previous due set; the next tick retries.
		due := append([]model.Reminder(nil), p.due...)
		p.mu.Unlock()
		log.Printf("[poller] polling due reminders: %v", err)
		return DueRemindersMsg{At: at, Reminders: due, Err: err}, true
	}

	// The source may hand back rows that are not due at this instant;
	// they are neither kept nor delivered.
	var fresh []model.Notification
	due := make([]model.Reminder, 0, len(items))
	for _, r := range items {
		if !r.IsDue(at) {
			continue
		}
		due = append(due, r)
		if p.seen[r.ID] {
			continue
		}
		p.seen[r.ID] = true
		fresh = append(fresh, notify.FromReminder(r, at))
	}
	p.due = due
	due = append([]model.Reminder(nil), due...)
	p.mu.Unlock()

	if p.sink != nil {
		for _, n := range fresh {
			if err := p.sink.Notify(ctx, n); err != nil {
				log.Printf("[poller] delivering reminder %d: %v", n.ReminderID, err)
			}
		}
	}
	if len(fresh) > 0 {
		log.Printf("[poller] %d reminder(s) newly due", len(fresh))
	}

	return DueRemindersMsg{At: at, Reminders: due, Fresh: fresh}, true
}

// Dismiss acknowledges a reminder as fired and removes it from the current
// due set. A poll in flight at that moment is discarded.
func (p *Poller) Dismiss(ctx context.Context, id int64) error {
	if _, err := p.src.AcknowledgeReminder(ctx, id, string(model.ReminderFired)); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	kept := p.due[:0]
	for _, r := range p.due {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	p.due = kept
	return nil
}

// Due returns a snapshot of the current due set.
func (p *Poller) Due() []model.Reminder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Reminder(nil), p.due...)
}

// State returns the outcome of the latest poll.
func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// sendResult sends a DueRemindersMsg on the result channel without blocking.
func (p *Poller) sendResult(msg DueRemindersMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

// WaitForDue returns a tea.Cmd that waits for the next poll result. Call it
// again after handling each DueRemindersMsg to keep listening.
func (p *Poller) WaitForDue() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
