package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gravitas-games/boardpredict/internal/network"
	"github.com/gravitas-games/boardpredict/internal/reconcile"
	"github.com/gravitas-games/boardpredict/pkg/models"
)

// Transport is the server link a Session drives. Conn implements it.
type Transport interface {
	Incoming() <-chan network.ServerMessage
	Submit(a models.Action)
	Ping()
}

// Command runs against the controller on the session goroutine.
type Command func(c *reconcile.Controller)

// Session owns the controller for one connected player. Run is the only
// goroutine that touches it; UI input arrives through Do.
type Session struct {
	player    *models.Player
	transport Transport
	ctrl      *reconcile.Controller
	log       *slog.Logger
	autoPlay  bool

	pingInterval time.Duration
	commands     chan Command
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the session's logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// WithAutoPlay makes the session answer every turn by itself: the first
// legal cell, its first orientation, the first previewed spot and, after a
// fallback, the first server choice.
func WithAutoPlay(on bool) SessionOption {
	return func(s *Session) { s.autoPlay = on }
}

// WithPingInterval makes the session ping the server every d. Zero disables it.
func WithPingInterval(d time.Duration) SessionOption {
	return func(s *Session) { s.pingInterval = d }
}

// NewSession creates a session for player over t.
func NewSession(player *models.Player, t Transport, opts ...SessionOption) *Session {
	s := &Session{
		player:    player,
		transport: t,
		log:       slog.Default(),
		commands:  make(chan Command, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("player", player.ID)
	s.ctrl = reconcile.New(t,
		reconcile.WithLogger(s.log),
		reconcile.WithListener(sessionListener{log: s.log}),
	)
	return s
}

// Do queues cmd for the session goroutine. It blocks until queued or ctx ends.
func (s *Session) Do(ctx context.Context, cmd Command) error {
	select {
	case s.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes server messages and commands until ctx ends or the
// transport closes its incoming channel.
func (s *Session) Run(ctx context.Context) error {
	incoming := s.transport.Incoming()

	var ping <-chan time.Time
	if s.pingInterval > 0 {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ping:
			s.transport.Ping()
		case msg, ok := <-incoming:
			if !ok {
				return ErrClosed
			}
			s.handleMessage(&msg)
		case cmd := <-s.commands:
			cmd(s.ctrl)
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (s *Session) handleMessage(msg *network.ServerMessage) {
	switch msg.Type {
	case network.MsgTypeState:
		s.handleState(msg.Payload)

	case network.MsgTypeRejected:
		s.handleRejected(msg.Payload)

	case network.MsgTypeError:
		var e network.ErrorPayload
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			s.log.Warn("failed to parse error payload", "error", err)
			return
		}
		s.log.Warn("server error", "code", e.Code, "message", e.Message)

	case network.MsgTypePong:
		s.log.Debug("pong")

	default:
		s.log.Debug("unknown message type", "type", msg.Type)
	}
}

func (s *Session) handleState(payload json.RawMessage) {
	var state network.StatePayload
	if err := json.Unmarshal(payload, &state); err != nil {
		s.log.Warn("failed to parse state payload", "error", err)
		return
	}

	snap, err := DecodeSnapshot(&state, s.player.ID)
	if err != nil {
		// keep the last good snapshot; the server will send another
		s.log.Warn("failed to decode state", "turn", state.Turn, "error", err)
		return
	}

	s.ctrl.Update(snap)
	if conflicts := s.ctrl.Conflicts(); len(conflicts) > 0 {
		s.log.Info("contested cells to resolve", "spots", conflicts)
	}
	if s.autoPlay && snap.Active {
		s.play()
	}
}

func (s *Session) handleRejected(payload json.RawMessage) {
	var r network.RejectedPayload
	if err := json.Unmarshal(payload, &r); err != nil {
		s.log.Warn("failed to parse rejection", "error", err)
	}
	s.log.Info("action rejected", "id", r.ActionID, "reason", r.Reason)
	s.ctrl.Resync()
}

// play takes the first legal answer to whatever the controller is waiting on.
func (s *Session) play() {
	switch s.ctrl.State() {
	case reconcile.Idle:
		cells := s.ctrl.ValidPlacements()
		if len(cells) == 0 || !s.ctrl.Click(cells[0]) {
			return
		}
		var spot models.Spot
		if preview := s.ctrl.Preview(); len(preview) > 0 {
			spot = preview[0]
		}
		if err := s.ctrl.Confirm(spot); err != nil {
			s.log.Warn("auto-play confirm failed", "error", err)
		}
	case reconcile.ServerChoice:
		choices := s.ctrl.ServerChoices()
		if len(choices) == 0 {
			return
		}
		if err := s.ctrl.Choose(choices[0]); err != nil {
			s.log.Warn("auto-play choice failed", "error", err)
		}
	}
}

type sessionListener struct {
	log *slog.Logger
}

func (l sessionListener) StateChanged(from, to reconcile.State) {
	l.log.Debug("controller state", "from", from, "to", to)
}

func (l sessionListener) ServerChoices(choices []models.Action) {
	l.log.Info("choose a secondary action", "choices", len(choices))
}
