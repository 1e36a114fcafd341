package service

import "sync"

// interviewLock serializes answer submissions per interview so two
// concurrent submissions cannot both observe the same question index.
type interviewLock struct {
	mu sync.Map
}

func newInterviewLock() *interviewLock {
	return &interviewLock{}
}

func (l *interviewLock) Lock(interviewID int64) func() {
	value, _ := l.mu.LoadOrStore(interviewID, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}
