// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"sync"

	"github.com/wneessen/owm-weather/internal/result"
	"github.com/wneessen/owm-weather/internal/weather"
)

// Screen holds the state of a single view. A nil state means the screen is idle.
type Screen[T any] struct {
	mu         sync.Mutex
	generation uint64
	label      string
	state      result.Result[T]
	onUpdate   func(label string, res result.Result[T])
}

type (
	ListScreen   = Screen[[]weather.Weather]
	DetailScreen = Screen[weather.Weather]
)

// NewScreen returns an idle screen. onUpdate is called for every accepted state change
// while the screen lock is held, so it must not call back into the screen.
func NewScreen[T any](onUpdate func(label string, res result.Result[T])) *Screen[T] {
	return &Screen[T]{onUpdate: onUpdate}
}

// State returns the current state or nil if no query was bound yet.
func (s *Screen[T]) State() result.Result[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Label returns the label of the current generation.
func (s *Screen[T]) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// Generation returns the number of sequences bound so far.
func (s *Screen[T]) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Bind starts a new generation and consumes ch in the background. Values of a
// superseded generation are drained but dropped. The returned channel is closed once
// ch is closed.
func (s *Screen[T]) Bind(ch <-chan result.Result[T]) <-chan struct{} {
	return s.BindLabel("", ch)
}

// BindLabel works like Bind and attaches label to the new generation, so that updates
// can be rendered together with the query they belong to.
func (s *Screen[T]) BindLabel(label string, ch <-chan result.Result[T]) <-chan struct{} {
	s.mu.Lock()
	s.generation++
	s.label = label
	gen := s.generation
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range ch {
			s.apply(gen, res)
		}
	}()
	return done
}

func (s *Screen[T]) apply(gen uint64, res result.Result[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.state = res
	if s.onUpdate != nil {
		s.onUpdate(s.label, res)
	}
}
