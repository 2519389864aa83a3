// Package oauth2 implements delegated sign-in with a third-party
// identity provider.
//
// Two variants exist because the execution targets differ: hosts with
// redirect support send the user to the provider and learn the outcome
// later through the callback handler (a Pending outcome), while hosts
// without it perform the code exchange synchronously (a Completed
// outcome). Callers must handle both; SignIn never guarantees a
// materialized session.
package oauth2

import (
	"sync"

	"github.com/aulakit/aulakit"
)

// Outcome is the tagged result of starting a delegated sign-in.
// Exactly one of Completed or Pending is meaningful.
type Outcome struct {
	// Completed is the materialized session, synchronous path only.
	Completed *aulakit.Session

	// Pending means the flow continues out-of-band; subscribe to the
	// flow's Notifier to learn the real outcome. AuthURL is where the
	// user agent must be sent.
	Pending bool
	AuthURL string
}

// Flow starts a delegated sign-in.
type Flow interface {
	SignIn() (*Outcome, error)
}

// Notifier delivers sessions materialized out-of-band to subscribers,
// replacing the provider SDK's auth-state-change listener.
type Notifier struct {
	mu   sync.Mutex
	subs []func(*aulakit.Session)
}

// Subscribe registers a callback invoked once per completed pending
// flow. Callbacks run on the callback handler's goroutine.
func (n *Notifier) Subscribe(fn func(*aulakit.Session)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *Notifier) notify(sess *aulakit.Session) {
	n.mu.Lock()
	subs := make([]func(*aulakit.Session), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}
