package position

// Sample is one scroll observation
type Sample struct {
	Distance float64
	Range    float64
}

// Sampler coalesces high-frequency scroll samples so the cursor is
// recomputed at most once per animation frame. Only the latest sample
// survives; older ones are dropped.
type Sampler struct {
	pending   Sample
	hasSample bool
	scheduled bool
}

// Offer records a sample. It reports true when the caller must schedule
// a frame; a frame already scheduled will pick up this sample.
func (s *Sampler) Offer(sample Sample) bool {
	s.pending = sample
	s.hasSample = true
	if s.scheduled {
		return false
	}
	s.scheduled = true
	return true
}

// Take hands out the latest sample for the current frame
func (s *Sampler) Take() (Sample, bool) {
	s.scheduled = false
	if !s.hasSample {
		return Sample{}, false
	}
	s.hasSample = false
	return s.pending, true
}

// Reset drops any pending sample
func (s *Sampler) Reset() {
	*s = Sampler{}
}
