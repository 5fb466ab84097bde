package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"patient-record-manager/internal/domain/entity"
	"patient-record-manager/internal/domain/repository"
	"patient-record-manager/pkg/sqlstmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrLiveQueryStopped  = errors.New("live query service is stopped")
	ErrEmptyLiveQuery    = errors.New("live query must not be empty")
	ErrLiveQueryReadOnly = errors.New("live query must be a read-only statement")
)

// Snapshot is one result of re-running a subscribed query.
type Snapshot struct {
	Result *entity.QueryResult
	Err    error
	At     time.Time
}

// Subscription delivers snapshots of a query until it is closed.
// A slow reader only ever sees the most recent snapshot.
type Subscription struct {
	ID    uuid.UUID
	Query string

	tables map[string]struct{}
	out    chan Snapshot
	dirty  chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Updates returns the snapshot channel. It is closed once the subscription ends.
func (s *Subscription) Updates() <-chan Snapshot {
	return s.out
}

// Close detaches the subscription. Safe to call multiple times.
func (s *Subscription) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Subscription) matches(tables []string) bool {
	if len(tables) == 0 || len(s.tables) == 0 {
		return true
	}
	for _, t := range tables {
		if _, ok := s.tables[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

func (s *Subscription) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// deliver replaces any unread snapshot with snap.
func (s *Subscription) deliver(snap Snapshot) {
	for {
		select {
		case s.out <- snap:
			return
		default:
		}
		select {
		case <-s.out:
		default:
		}
	}
}

// LiveQueryService re-runs subscribed queries whenever a write touches
// one of the tables they read from.
type LiveQueryService struct {
	queryRepo repository.QueryRepository
	log       *logrus.Logger
	now       func() time.Time

	subs   sync.Map // map[uuid.UUID]*Subscription
	unlink func()

	// Graceful shutdown. mu orders wg.Add in Subscribe before wg.Wait in Stop.
	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewLiveQueryService starts listening on feed. Call Stop() during graceful shutdown.
func NewLiveQueryService(queryRepo repository.QueryRepository, feed *ChangeFeed, log *logrus.Logger) *LiveQueryService {
	svc := &LiveQueryService{
		queryRepo: queryRepo,
		log:       log,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
	svc.unlink = feed.Listen(svc.onChange)
	return svc
}

// Subscribe registers query and delivers an initial snapshot.
// The subscription ends on Close, ctx cancellation or Stop.
func (s *LiveQueryService) Subscribe(ctx context.Context, query string) (*Subscription, error) {
	if s.stopped.Load() {
		return nil, ErrLiveQueryStopped
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyLiveQuery
	}
	if sqlstmt.IsWrite(query) {
		return nil, ErrLiveQueryReadOnly
	}

	tables := s.dependentTables(ctx, query)
	sub := &Subscription{
		ID:     uuid.New(),
		Query:  query,
		tables: make(map[string]struct{}, len(tables)),
		out:    make(chan Snapshot, 1),
		dirty:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}
	sub.dirty <- struct{}{}

	s.mu.Lock()
	if s.stopped.Load() {
		s.mu.Unlock()
		return nil, ErrLiveQueryStopped
	}
	s.subs.Store(sub.ID, sub)
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(ctx, sub)

	s.log.WithFields(logrus.Fields{"subscription_id": sub.ID.String(), "tables": tables}).Debug("Live query subscribed")
	return sub, nil
}

// dependentTables merges the tables named in the query with the base tables
// the engine resolves for it. Nil means the subscription refreshes on every
// write.
func (s *LiveQueryService) dependentTables(ctx context.Context, query string) []string {
	resolved, err := s.queryRepo.DependentTables(ctx, query)
	if err != nil {
		s.log.Debugf("Live query tables unresolved, refreshing on every write: %v", err)
		return nil
	}
	if len(resolved) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var tables []string
	for _, t := range append(sqlstmt.Tables(query), resolved...) {
		t = strings.ToLower(t)
		if !seen[t] {
			seen[t] = true
			tables = append(tables, t)
		}
	}
	return tables
}

// Stop ends every subscription. Safe to call multiple times.
func (s *LiveQueryService) Stop() {
	s.mu.Lock()
	first := s.stopped.CompareAndSwap(false, true)
	s.mu.Unlock()
	if !first {
		return
	}

	s.unlink()
	close(s.stopChan)
	s.wg.Wait()
	s.log.Info("LiveQueryService stopped")
}

// Active returns the number of open subscriptions.
func (s *LiveQueryService) Active() int {
	n := 0
	s.subs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *LiveQueryService) onChange(tables []string) {
	if s.stopped.Load() {
		return
	}
	s.subs.Range(func(_, v any) bool {
		sub := v.(*Subscription)
		if sub.matches(tables) {
			sub.markDirty()
		}
		return true
	})
}

func (s *LiveQueryService) run(ctx context.Context, sub *Subscription) {
	defer s.wg.Done()
	defer close(sub.out)
	defer s.subs.Delete(sub.ID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-sub.done:
			return
		case <-sub.dirty:
			result, err := s.queryRepo.Execute(ctx, sub.Query)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Warnf("Failed to re-run live query %s: %+v", sub.ID, err)
			}
			sub.deliver(Snapshot{Result: result, Err: err, At: s.now()})
		}
	}
}
