package phh

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Recorder is a game.Subscriber that turns a table's events into hand
// histories. Completed hands are kept in memory and, when a file is
// configured, the whole session is rewritten after every hand.
type Recorder struct {
	table     string
	holeCards bool
	path      string
	logger    *log.Logger

	mu    sync.Mutex
	hands []*HandHistory
	cur   *handState
}

type handState struct {
	hist     *HandHistory
	index    map[int]int // seat id to player index
	board    int
	roundBet int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithTable sets the table name written into each hand.
func WithTable(id string) RecorderOption {
	return func(r *Recorder) { r.table = id }
}

// WithHoleCards controls whether dealt hole cards are written. Hidden
// cards are recorded as "????" and only appear again if shown down.
func WithHoleCards(include bool) RecorderOption {
	return func(r *Recorder) { r.holeCards = include }
}

// WithFile saves the session to path after each completed hand.
func WithFile(path string) RecorderOption {
	return func(r *Recorder) { r.path = path }
}

// WithLogger sets the logger used to report save failures.
func WithLogger(logger *log.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = logger }
}

// NewRecorder returns an empty recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{holeCards: true}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	r.logger = r.logger.WithPrefix("phh")
	return r
}

// OnEvent implements game.Subscriber.
func (r *Recorder) OnEvent(e game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev := e.(type) {
	case game.HandStartEvent:
		r.start(ev)
	case game.BlindsPostedEvent:
		r.blinds(ev)
	case game.PlayerActionEvent:
		r.action(ev)
	case game.StreetChangeEvent:
		r.street(ev)
	case game.ShowdownEvent:
		r.showdown(ev)
	case game.HandEndEvent:
		if r.finish(ev) && r.path != "" {
			if err := r.save(r.path); err != nil {
				r.logger.Error("saving hand history", "path", r.path, "error", err)
			}
		}
	}
}

func (r *Recorder) start(ev game.HandStartEvent) {
	n := len(ev.Players)
	if n == 0 {
		r.cur = nil
		return
	}

	// PHH orders players from the small blind; heads-up that is the button.
	first := 0
	for i, p := range ev.Players {
		if p.Seat == ev.Button {
			first = i
			if n > 2 {
				first = (i + 1) % n
			}
			break
		}
	}

	hist := &HandHistory{
		Variant:           Variant,
		Table:             r.table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            ev.BigBlind,
		StartingStacks:    make([]int, n),
		Players:           make([]string, n),
		HandID:            ev.HandID,
	}
	hist.setTime(ev.Timestamp())

	st := &handState{hist: hist, index: make(map[int]int, n)}
	for pos := range n {
		p := ev.Players[(first+pos)%n]
		st.index[p.Seat] = pos
		hist.Seats[pos] = p.Seat + 1
		hist.StartingStacks[pos] = p.Stack
		hist.Players[pos] = p.Name

		hole := "????"
		if r.holeCards && len(p.Hole) == 2 {
			hole = Cards(p.Hole)
		}
		hist.Actions = append(hist.Actions, fmt.Sprintf("d dh p%d %s", pos+1, hole))
	}
	r.cur = st
}

func (r *Recorder) blinds(ev game.BlindsPostedEvent) {
	if r.cur == nil {
		return
	}
	if i, ok := r.cur.index[ev.SmallBlindSeat]; ok {
		r.cur.hist.BlindsOrStraddles[i] = ev.SmallBlindAmount
	}
	if i, ok := r.cur.index[ev.BigBlindSeat]; ok {
		r.cur.hist.BlindsOrStraddles[i] = ev.BigBlindAmount
	}
	r.cur.roundBet = max(ev.SmallBlindAmount, ev.BigBlindAmount)
}

func (r *Recorder) action(ev game.PlayerActionEvent) {
	if r.cur == nil {
		return
	}
	i, ok := r.cur.index[ev.Seat]
	if !ok {
		return
	}
	raised := ev.Amount > r.cur.roundBet
	if raised {
		r.cur.roundBet = ev.Amount
	}
	r.cur.hist.Actions = append(r.cur.hist.Actions, FormatAction(i, ev.Action, ev.Amount, raised))
}

func (r *Recorder) street(ev game.StreetChangeEvent) {
	if r.cur == nil || len(ev.Community) <= r.cur.board {
		return
	}
	dealt := ev.Community[r.cur.board:]
	r.cur.board = len(ev.Community)
	r.cur.roundBet = 0
	r.cur.hist.Actions = append(r.cur.hist.Actions, "d db "+Cards(dealt))
}

func (r *Recorder) showdown(ev game.ShowdownEvent) {
	if r.cur == nil {
		return
	}
	for _, shown := range ev.Hands {
		i, ok := r.cur.index[shown.Seat]
		if !ok || len(shown.Hole) != 2 {
			continue
		}
		r.cur.hist.Actions = append(r.cur.hist.Actions, fmt.Sprintf("p%d sm %s", i+1, Cards(shown.Hole)))
	}
}

func (r *Recorder) finish(ev game.HandEndEvent) bool {
	if r.cur == nil {
		return false
	}
	hist := r.cur.hist
	hist.FinishingStacks = append([]int(nil), hist.StartingStacks...)
	hist.Winnings = make([]int, len(hist.StartingStacks))
	for _, res := range ev.Results {
		i, ok := r.cur.index[res.Seat]
		if !ok {
			continue
		}
		hist.FinishingStacks[i] += res.Net
		hist.Winnings[i] = res.Won
	}
	r.hands = append(r.hands, hist)
	r.cur = nil
	return true
}

// Hands returns the completed hands recorded so far.
func (r *Recorder) Hands() []*HandHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*HandHistory(nil), r.hands...)
}

// Save writes the session to path, replacing any previous contents.
func (r *Recorder) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(path)
}

func (r *Recorder) save(path string) error {
	var buf bytes.Buffer
	if err := EncodeSession(&buf, r.hands); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes(), 0o644)
}

// writeFileAtomic writes through a temporary file in the same directory
// and renames it into place, so readers see the old file or the new one.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
