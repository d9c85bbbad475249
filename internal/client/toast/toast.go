// Package toast is the console's notification queue. Producers enqueue
// messages; a single consumer (Queue.Run) owns the visible list and every
// timer that changes it.
package toast

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultTitle is used when a producer passes no title.
func (k Kind) DefaultTitle() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	case KindWarning:
		return "Warning"
	default:
		return "Info"
	}
}

type Toast struct {
	ID      int
	Kind    Kind
	Message string
	Title   string
	Visible bool
}

// Renderer is told when a toast becomes visible and when it is hidden.
// Calls come from the consumer goroutine only.
type Renderer interface {
	Show(t Toast)
	Hide(t Toast)
}

const (
	DefaultDuration = 3 * time.Second
	DefaultFadeIn   = 10 * time.Millisecond
	DefaultFadeOut  = 300 * time.Millisecond
	queueSize       = 64
)

type eventKind int

const (
	eventShow eventKind = iota
	eventDismiss
	eventRemove
)

type event struct {
	id   int
	kind eventKind
}

type request struct {
	kind    Kind
	message string
	title   string
}

type Option func(*Queue)

// WithDuration sets how long a toast stays visible. Zero keeps it until
// Dismiss is called.
func WithDuration(d time.Duration) Option {
	return func(q *Queue) { q.duration = d }
}

// WithFades overrides the fade-in and fade-out delays.
func WithFades(in, out time.Duration) Option {
	return func(q *Queue) {
		q.fadeIn = in
		q.fadeOut = out
	}
}

type Queue struct {
	renderer Renderer
	duration time.Duration
	fadeIn   time.Duration
	fadeOut  time.Duration

	requests chan request
	events   chan event
	done     chan struct{}
	once     sync.Once

	mu     sync.RWMutex
	toasts []Toast

	// owned by Run
	nextID    int
	dismissed map[int]bool
}

func NewQueue(r Renderer, opts ...Option) *Queue {
	q := &Queue{
		renderer:  r,
		duration:  DefaultDuration,
		fadeIn:    DefaultFadeIn,
		fadeOut:   DefaultFadeOut,
		requests:  make(chan request, queueSize),
		events:    make(chan event),
		done:      make(chan struct{}),
		dismissed: make(map[int]bool),
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Notify enqueues a message. It returns immediately while the queue has
// room and is a no-op once Run has stopped.
func (q *Queue) Notify(kind Kind, message string, title string) {
	if title == "" {
		title = kind.DefaultTitle()
	}
	select {
	case q.requests <- request{kind: kind, message: message, title: title}:
	case <-q.done:
	}
}

func (q *Queue) Success(message string, title ...string) {
	q.Notify(KindSuccess, message, first(title))
}

func (q *Queue) Error(message string, title ...string) {
	q.Notify(KindError, message, first(title))
}

func (q *Queue) Warning(message string, title ...string) {
	q.Notify(KindWarning, message, first(title))
}

func (q *Queue) Info(message string, title ...string) {
	q.Notify(KindInfo, message, first(title))
}

// Dismiss hides the toast early; it is removed after the fade-out delay.
func (q *Queue) Dismiss(id int) {
	q.send(event{id: id, kind: eventDismiss})
}

// Snapshot returns a copy of the current list in insertion order.
func (q *Queue) Snapshot() []Toast {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Run consumes the queue until ctx is done. It must be called once.
func (q *Queue) Run(ctx context.Context) error {
	defer q.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case r := <-q.requests:
			t := Toast{ID: q.nextID, Kind: r.kind, Message: r.message, Title: r.title}
			q.nextID++
			q.mutate(func(list []Toast) []Toast { return append(list, t) })

			q.after(q.fadeIn, event{id: t.ID, kind: eventShow})
			if q.duration > 0 {
				q.after(q.duration, event{id: t.ID, kind: eventDismiss})
			}

		case e := <-q.events:
			q.handle(e)
		}
	}
}

func (q *Queue) handle(e event) {
	switch e.kind {
	case eventShow:
		if q.dismissed[e.id] {
			return
		}
		if t, ok := q.setVisible(e.id, true); ok && q.renderer != nil {
			q.renderer.Show(t)
		}

	case eventDismiss:
		if q.dismissed[e.id] {
			return
		}
		t, ok := q.setVisible(e.id, false)
		if !ok {
			return
		}
		q.dismissed[e.id] = true
		if q.renderer != nil {
			q.renderer.Hide(t)
		}
		q.after(q.fadeOut, event{id: e.id, kind: eventRemove})

	case eventRemove:
		delete(q.dismissed, e.id)
		q.mutate(func(list []Toast) []Toast {
			out := list[:0]
			for _, t := range list {
				if t.ID != e.id {
					out = append(out, t)
				}
			}
			return out
		})
	}
}

func (q *Queue) setVisible(id int, visible bool) (Toast, bool) {
	var (
		found Toast
		ok    bool
	)
	q.mutate(func(list []Toast) []Toast {
		for i := range list {
			if list[i].ID == id {
				list[i].Visible = visible
				found, ok = list[i], true
				break
			}
		}
		return list
	})
	return found, ok
}

func (q *Queue) mutate(fn func([]Toast) []Toast) {
	q.mu.Lock()
	q.toasts = fn(q.toasts)
	q.mu.Unlock()
}

// after delivers e to the consumer once d has elapsed. Timers that fire
// after Run has stopped are dropped by send.
func (q *Queue) after(d time.Duration, e event) {
	time.AfterFunc(d, func() { q.send(e) })
}

func (q *Queue) send(e event) {
	select {
	case q.events <- e:
	case <-q.done:
	}
}

func (q *Queue) stop() {
	q.once.Do(func() { close(q.done) })
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
