package usecase

import (
	"strings"
	"sync"
)

// leagueLocks serialises roster writes per league inside one process. The
// repositories still reject a player landing on two managers, which covers
// writers in other processes.
type leagueLocks struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func newLeagueLocks() *leagueLocks {
	return &leagueLocks{byKey: make(map[string]*sync.Mutex)}
}

// lock blocks until leagueID is free and returns its unlock func.
func (l *leagueLocks) lock(leagueID string) func() {
	leagueID = strings.TrimSpace(leagueID)

	l.mu.Lock()
	m, ok := l.byKey[leagueID]
	if !ok {
		m = &sync.Mutex{}
		l.byKey[leagueID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
