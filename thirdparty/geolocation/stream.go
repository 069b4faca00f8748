package geolocation

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/muhammadheryan/food-delivery/model"
)

// line is one record of the JSON-lines feed: a position, or {"error": <code>}.
type line struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     int      `json:"error"`
}

// StreamSource reads a JSON-lines GPS feed (a gps daemon pipe, a replay file) and fans it out
// to watchers and one-shot requests.
type StreamSource struct {
	r       io.Reader
	timeout time.Duration

	start    sync.Once
	mu       sync.Mutex
	nextID   int
	watchers map[int]chan Event
	waiters  []chan Event
	eof      bool
}

// NewStreamSource reads from r. timeout bounds how long a one-shot request waits for a fix.
func NewStreamSource(r io.Reader, timeout time.Duration) *StreamSource {
	return &StreamSource{
		r:        r,
		timeout:  timeout,
		watchers: make(map[int]chan Event),
	}
}

func (s *StreamSource) Watch(ctx context.Context) (<-chan Event, func(), error) {
	s.start.Do(func() { go s.read() })

	ch := make(chan Event, 16)
	s.mu.Lock()
	if s.eof {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}, nil
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			if w, ok := s.watchers[id]; ok {
				delete(s.watchers, id)
				close(w)
			}
			s.mu.Unlock()
		})
	}
	return ch, release, nil
}

func (s *StreamSource) CurrentPosition(ctx context.Context) (model.Position, error) {
	s.start.Do(func() { go s.read() })

	ch := make(chan Event, 1)
	s.mu.Lock()
	if s.eof {
		s.mu.Unlock()
		return model.Position{}, &Error{Code: PositionUnavailable}
	}
	s.waiters = append(s.waiters, ch)
	s.mu.Unlock()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case ev := <-ch:
		if ev.Err != nil {
			return model.Position{}, ev.Err
		}
		return ev.Position, nil
	case <-timer.C:
		s.dropWaiter(ch)
		return model.Position{}, &Error{Code: Timeout}
	case <-ctx.Done():
		s.dropWaiter(ch)
		return model.Position{}, ctx.Err()
	}
}

func (s *StreamSource) dropWaiter(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.waiters {
		if w == ch {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}

func (s *StreamSource) read() {
	scanner := bufio.NewScanner(s.r)
	for scanner.Scan() {
		var l line
		if err := json.Unmarshal(scanner.Bytes(), &l); err != nil {
			continue
		}
		var ev Event
		switch {
		case l.Error != 0:
			ev.Err = &Error{Code: l.Error}
		case l.Latitude != nil && l.Longitude != nil:
			ev.Position = model.Position{Latitude: *l.Latitude, Longitude: *l.Longitude}
		default:
			continue
		}
		s.dispatch(ev)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.eof = true
	for id, w := range s.watchers {
		delete(s.watchers, id)
		close(w)
	}
	for _, w := range s.waiters {
		w <- Event{Err: &Error{Code: PositionUnavailable}}
	}
	s.waiters = nil
}

func (s *StreamSource) dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.watchers {
		select {
		case w <- ev:
		default:
			// slow watcher, it will get the next fix
		}
	}
	if ev.Err == nil {
		for _, w := range s.waiters {
			w <- ev
		}
		s.waiters = nil
	}
}
