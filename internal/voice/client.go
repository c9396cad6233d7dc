package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotConfigured = errors.New("voice service is not configured")
	ErrDialFailed    = errors.New("failed to start voice call")
	ErrCallFailed    = errors.New("voice call failed")
	ErrCallNotActive = errors.New("voice call is not active")
)

// Conn is one live connection to the voice provider.
type Conn interface {
	// ReadEvent blocks until the next provider event. io.EOF means the provider closed the call.
	ReadEvent() (Event, error)
	SetMuted(muted bool) error
	Hangup() error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, cfg AssistantConfig) (Conn, error)
}

type Option func(*Client)

// WithTickInterval changes the period of the call duration counter.
func WithTickInterval(d time.Duration) Option {
	return func(c *Client) {
		c.tick = d
	}
}

type Client struct {
	dialer Dialer
	tick   time.Duration
}

func NewClient(dialer Dialer, opts ...Option) *Client {
	c := &Client{
		dialer: dialer,
		tick:   time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start dials the provider and returns the call in the connecting state. The call moves
// to active when the provider reports call-start.
func (c *Client) Start(ctx context.Context, cfg AssistantConfig) (*Call, error) {
	log := config.WithContext(ctx)
	if c.dialer == nil {
		return nil, ErrNotConfigured
	}

	call := &Call{
		log:       log,
		tick:      c.tick,
		fragments: make(chan string, 16),
		done:      make(chan struct{}),
		abandon:   make(chan struct{}),
	}
	call.moveTo(StateConnecting)

	conn, err := c.dialer.Dial(ctx, cfg)
	if err != nil {
		call.finish(err)
		log.WithError(err).Error("Failed to start voice call")
		if errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDialFailed, err)
	}
	call.conn = conn

	go call.run()
	return call, nil
}

type Result struct {
	Transcript string   `json:"transcript"`
	Seconds    int      `json:"seconds"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type Call struct {
	conn Conn
	log  *logrus.Entry
	tick time.Duration

	mu          sync.Mutex
	state       State
	speaking    bool
	muted       bool
	seconds     int
	transcript  []string
	confidences []float64
	err         error

	fragments   chan string
	done        chan struct{}
	abandon     chan struct{}
	finishOnce  sync.Once
	abandonOnce sync.Once
}

func (c *Call) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Call) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speaking
}

func (c *Call) Seconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seconds
}

// Transcript returns the candidate's text aggregated so far.
func (c *Call) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(strings.Join(c.transcript, " "))
}

// Transcripts delivers each candidate fragment in arrival order and is closed when the
// call ends. Callers must drain it or use Wait.
func (c *Call) Transcripts() <-chan string {
	return c.fragments
}

func (c *Call) Done() <-chan struct{} {
	return c.done
}

func (c *Call) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Call) ToggleMute() (bool, error) {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return false, ErrCallNotActive
	}
	next := !c.muted
	c.mu.Unlock()

	if err := c.conn.SetMuted(next); err != nil {
		return !next, err
	}

	c.mu.Lock()
	c.muted = next
	c.mu.Unlock()
	return next, nil
}

// Stop asks the provider to hang up and waits for the call to end. If ctx expires first
// the connection is closed.
func (c *Call) Stop(ctx context.Context) error {
	if c.State() == StateEnded {
		return nil
	}

	c.abandonOnce.Do(func() { close(c.abandon) })

	if err := c.conn.Hangup(); err != nil {
		c.log.WithError(err).Warn("Failed to send hangup, closing voice connection")
		c.finish(nil)
		return nil
	}

	select {
	case <-c.done:
	case <-ctx.Done():
		c.finish(nil)
	}
	return nil
}

// Wait drains transcript fragments until the call ends and returns the aggregated result.
// Cancelling ctx ends the call.
func (c *Call) Wait(ctx context.Context) (Result, error) {
	for {
		select {
		case _, ok := <-c.fragments:
			if ok {
				continue
			}
			<-c.done
			return c.result(), c.Err()
		case <-ctx.Done():
			c.abandonOnce.Do(func() { close(c.abandon) })
			c.finish(ctx.Err())
			return c.result(), ctx.Err()
		}
	}
}

func (c *Call) result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := Result{
		Transcript: strings.TrimSpace(strings.Join(c.transcript, " ")),
		Seconds:    c.seconds,
	}
	if len(c.confidences) > 0 {
		var sum float64
		for _, v := range c.confidences {
			sum += v
		}
		avg := sum / float64(len(c.confidences))
		res.Confidence = &avg
	}
	return res
}

func (c *Call) moveTo(next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.canMoveTo(next) {
		return false
	}
	c.state = next
	return true
}

func (c *Call) run() {
	defer close(c.fragments)

	for {
		ev, err := c.conn.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.finish(nil)
			} else {
				c.finish(fmt.Errorf("%w: %v", ErrCallFailed, err))
			}
			return
		}
		if ended := c.handle(ev); ended {
			return
		}
	}
}

func (c *Call) handle(ev Event) bool {
	switch ev.Type {
	case EventCallStart:
		if c.moveTo(StateActive) {
			c.mu.Lock()
			c.seconds = 0
			c.mu.Unlock()
			go c.countDuration()
			c.log.Info("Voice call started")
		}
	case EventCallEnd:
		c.log.Info("Voice call ended")
		c.finish(nil)
		return true
	case EventSpeechStart:
		c.setSpeaking(true)
	case EventSpeechEnd:
		c.setSpeaking(false)
	case EventMessage:
		if ev.Message.IsUserTranscript() {
			c.appendTranscript(ev.Message)
		}
	case EventError:
		if ev.isMeetingEnded() {
			c.finish(nil)
			return true
		}
		c.log.WithField("voice_error", ev.Error).Error("Voice provider error")
		c.finish(fmt.Errorf("%w: %s", ErrCallFailed, ev.Error))
		return true
	default:
		c.log.WithField("event_type", ev.Type).Debug("Ignoring voice event")
	}
	return false
}

func (c *Call) setSpeaking(v bool) {
	c.mu.Lock()
	c.speaking = v
	c.mu.Unlock()
}

func (c *Call) appendTranscript(m *Message) {
	text := strings.TrimSpace(m.Transcript)
	if text == "" {
		return
	}

	c.mu.Lock()
	c.transcript = append(c.transcript, text)
	if m.Confidence != nil {
		c.confidences = append(c.confidences, *m.Confidence)
	}
	c.mu.Unlock()

	select {
	case c.fragments <- text:
	case <-c.abandon:
	}
}

func (c *Call) countDuration() {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if c.state == StateActive {
				c.seconds++
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

// finish moves the call to ended exactly once. fragments is closed by run, its only sender.
func (c *Call) finish(err error) {
	c.finishOnce.Do(func() {
		c.mu.Lock()
		c.state = StateEnded
		c.speaking = false
		if err != nil && c.err == nil {
			c.err = err
		}
		c.mu.Unlock()

		if c.conn != nil {
			_ = c.conn.Close()
		}
		close(c.done)
	})
}
