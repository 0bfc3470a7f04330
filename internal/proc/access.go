package proc

// ChildPID returns the pid of a running child, or 0.
func (s *Supervisor) ChildPID(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.childs[name]; ok && ch.Cmd != nil && ch.Cmd.Process != nil {
		return ch.Cmd.Process.Pid
	}
	return 0
}

// Running reports how many children are tracked.
func (s *Supervisor) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.childs)
}
