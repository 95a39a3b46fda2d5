package cp

// luby returns the n-th term (1-indexed) of the Luby sequence
// 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,..., the standard restart schedule: the
// sequence of run lengths is self-similar, doubling only after every
// prior block repeats.
func luby(n int64) int64 {
	for k := int64(1); k < 64; k++ {
		size := int64(1)<<k - 1
		if n == size {
			return int64(1) << (k - 1)
		}
		if n < size {
			return luby(n - int64(1)<<(k-1) + 1)
		}
	}
	return 1
}

// LubyRestart triggers a restart every scale*luby(n) failures (n
// incrementing on each restart).
type LubyRestart struct {
	BaseMonitor
	solver *Solver
	scale  int64

	failureOffset int64
	n             int64
	target        int64
}

// NewLubyRestart returns a restart monitor over s using the Luby
// sequence scaled by scale.
func NewLubyRestart(s *Solver, scale int64) *LubyRestart {
	if scale <= 0 {
		scale = 1
	}
	return &LubyRestart{solver: s, scale: scale, n: 1}
}

func (r *LubyRestart) EnterSearch(s *Solver) {
	r.failureOffset = s.Failures()
	r.n = 1
	r.target = r.scale * luby(r.n)
}

func (r *LubyRestart) RestartSearch(s *Solver) {
	r.failureOffset = s.Failures()
	r.n++
	r.target = r.scale * luby(r.n)
}

func (r *LubyRestart) BeginNextDecision(s *Solver, db DecisionBuilder) DecisionModification {
	if s.Failures()-r.failureOffset >= r.target {
		s.RestartCurrentSearch()
	}
	return NoChange
}

func (r *LubyRestart) String() string { return "LubyRestart" }

// ConstantRestart triggers a restart every frequency failures.
type ConstantRestart struct {
	BaseMonitor
	solver    *Solver
	frequency int64

	failureOffset int64
}

// NewConstantRestart returns a restart monitor over s firing every
// frequency failures.
func NewConstantRestart(s *Solver, frequency int64) *ConstantRestart {
	return &ConstantRestart{solver: s, frequency: frequency}
}

func (r *ConstantRestart) EnterSearch(s *Solver)   { r.failureOffset = s.Failures() }
func (r *ConstantRestart) RestartSearch(s *Solver) { r.failureOffset = s.Failures() }

func (r *ConstantRestart) BeginNextDecision(s *Solver, db DecisionBuilder) DecisionModification {
	if r.frequency > 0 && s.Failures()-r.failureOffset >= r.frequency {
		s.RestartCurrentSearch()
	}
	return NoChange
}

func (r *ConstantRestart) String() string { return "ConstantRestart" }
