package game

import (
	"sync"
	"time"

	"github.com/lox/holdem-engine/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeBlindsPosted EventType = "blinds_posted"
	EventTypePlayerAction EventType = "player_action"
	EventTypeStreetChange EventType = "street_change"
	EventTypeShowdown     EventType = "showdown"
	EventTypePotAwarded   EventType = "pot_awarded"
	EventTypeHandEnd      EventType = "hand_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens during a hand.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct{ at time.Time }

func (s stamp) Timestamp() time.Time { return s.at }

// PlayerStart is a seat's state when the hand began. Stack is measured
// before blinds were posted.
type PlayerStart struct {
	Seat  int
	Name  string
	Stack int
	Hole  []deck.Card
}

// HandStartEvent is published once hole cards are dealt.
type HandStartEvent struct {
	stamp
	HandID     string
	Button     int
	Seats      []int
	SmallBlind int
	BigBlind   int
	Players    []PlayerStart
}

func (HandStartEvent) EventType() EventType { return EventTypeHandStart }

// BlindsPostedEvent records the forced bets.
type BlindsPostedEvent struct {
	stamp
	SmallBlindSeat   int
	SmallBlindAmount int
	BigBlindSeat     int
	BigBlindAmount   int
}

func (BlindsPostedEvent) EventType() EventType { return EventTypeBlindsPosted }

// PlayerActionEvent is published after an action has been applied. Action is
// what was recorded, which may differ from the request (a short call becomes
// AllIn). Amount is the seat's round total after the action.
type PlayerActionEvent struct {
	stamp
	Seat     int
	Name     string
	Action   Action
	Amount   int
	Round    Round
	PotAfter int
}

func (PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// StreetChangeEvent is published when new community cards are dealt.
type StreetChangeEvent struct {
	stamp
	Round     Round
	Community []deck.Card
	Pot       int
}

func (StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }

// ShowdownEvent lists the hands revealed at showdown.
type ShowdownEvent struct {
	stamp
	Hands []ShownHand
}

func (ShowdownEvent) EventType() EventType { return EventTypeShowdown }

// ShownHand is one seat's revealed hand.
type ShownHand struct {
	Seat        int
	Hole        []deck.Card
	Description string
}

// PotAwardedEvent is published for every settled pot tier.
type PotAwardedEvent struct {
	stamp
	Award Award
}

func (PotAwardedEvent) EventType() EventType { return EventTypePotAwarded }

// HandEndEvent is published when the hand is complete.
type HandEndEvent struct {
	stamp
	HandID      string
	Uncontested bool
	Board       []deck.Card
	Results     []Result
	Pot         int
}

func (HandEndEvent) EventType() EventType { return EventTypeHandEnd }

// Subscriber receives events from an EventBus.
type Subscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(e Event) { f(e) }

// EventBus fans events out to subscribers in subscription order.
type EventBus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe adds a subscriber to receive events
func (b *EventBus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// Publish sends an event to all subscribers
func (b *EventBus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()
	for _, s := range subs {
		s.OnEvent(e)
	}
}
