package state

import "sync"

// Service identifies an optional side channel whose availability is
// tracked process-wide. The analysis core itself never consults this;
// only the best-effort collaborators do.
type Service int

const (
	Redis Service = iota
	Vision
)

type State struct {
	sync.RWMutex

	redis  bool
	vision bool
}

func NewState() *State {
	return &State{
		redis:  true,
		vision: true,
	}
}

func (s *State) Get(svc Service) bool {
	s.RLock()
	defer s.RUnlock()
	{
		switch svc {
		case Redis:
			return s.redis

		case Vision:
			return s.vision
		}
	}
	return false
}

func (s *State) Set(svc Service, state bool) {
	s.Lock()
	defer s.Unlock()
	{
		switch svc {
		case Redis:
			s.redis = state

		case Vision:
			s.vision = state
		}
	}
}
