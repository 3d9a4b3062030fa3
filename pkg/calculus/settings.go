package calculus

import "runtime"

// Settings controls the adaptive integration loop. A nil *Settings means
// DefaultSettings.
type Settings struct {
	// SubdivFactor sets the starting subdivision count to SubdivFactor/tol.
	SubdivFactor float64
	// MaxRounds bounds the number of doubling rounds.
	MaxRounds int
	// MaxSubdivisions bounds the subdivision count of a single round.
	MaxSubdivisions int
	// Workers splits each round across this many goroutines. Values below
	// two sum serially.
	Workers int
}

// DefaultSettings returns the serial defaults.
func DefaultSettings() Settings {
	return Settings{
		SubdivFactor:    1,
		MaxRounds:       24,
		MaxSubdivisions: 1 << 26,
		Workers:         1,
	}
}

// ParallelSettings is DefaultSettings with one worker per CPU.
func ParallelSettings() Settings {
	s := DefaultSettings()
	s.Workers = runtime.NumCPU()
	return s
}

func (s *Settings) orDefault() Settings {
	d := DefaultSettings()
	if s == nil {
		return d
	}
	out := *s
	if out.SubdivFactor <= 0 {
		out.SubdivFactor = d.SubdivFactor
	}
	if out.MaxRounds <= 0 {
		out.MaxRounds = d.MaxRounds
	}
	if out.MaxSubdivisions <= 0 {
		out.MaxSubdivisions = d.MaxSubdivisions
	}
	if out.Workers <= 0 {
		out.Workers = 1
	}
	return out
}
