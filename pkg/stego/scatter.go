package stego

// The body region is traversed in an order derived from the message salt,
// so payload bits are dispersed across the carrier instead of filling it
// front to back. The traversal is a full-period linear congruential
// generator over a power-of-two modulus, with out-of-range states skipped
// (cycle walking). Full period guarantees every body index appears exactly
// once, so no payload bit is ever overwritten on encode or re-read on
// decode. The same salt always yields the same sequence, which is what lets
// the decoder retrace the encoder's steps.

// mulberry32 is the small-state PRNG used solely to pick the LCG
// parameters. It must match the reference construction exactly: 32-bit
// wrap-around multiplications, logical shifts, output scaled to [0,1).
type mulberry32 struct {
	state uint32
}

func (r *mulberry32) next() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	t := z ^ z>>15
	t *= z | 1
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / (1 << 32)
}

// scatterSequence enumerates distinct body-local channel indices in
// {0..bodyChannels-1}. It holds O(1) state regardless of carrier size.
type scatterSequence struct {
	a, c, mask uint64
	x          uint64
	remaining  uint64 // step budget before the divergence guard trips
}

// newScatterSequence derives LCG parameters from the 32-bit seed and arms
// the divergence guard at 100 steps per payload bit. The parameters satisfy
// the Hull-Dobell conditions for modulus 2^k: a = 1 (mod 4), c odd.
func newScatterSequence(seed uint32, bodyChannels, payloadBits int) *scatterSequence {
	m := uint64(2)
	for m < uint64(bodyChannels) {
		m <<= 1
	}

	r := mulberry32{state: seed}
	a := 4*uint64(r.next()*(float64(m)/4)) + 1
	c := 2*uint64(r.next()*(float64(m)/2)) + 1

	return &scatterSequence{
		a:         a,
		c:         c,
		mask:      m - 1,
		x:         uint64(seed) & (m - 1),
		remaining: 100 * uint64(payloadBits),
	}
}

// next emits the next in-range index. ok is false once the step budget is
// exhausted, which under correct parameters can only mean a bug.
func (s *scatterSequence) next(bodyChannels int) (int, bool) {
	for s.remaining > 0 {
		s.remaining--
		s.x = (s.a*s.x + s.c) & s.mask
		if s.x < uint64(bodyChannels) {
			return int(s.x), true
		}
	}
	return 0, false
}
