package state

import (
	"math/rand/v2"
	"strings"
)

// Random is the source of every cosmetic random value: commit ids and the
// "upstream has changes" coin flip of pull. Tests inject a deterministic one.
type Random interface {
	// Hash returns a short base36 string.
	Hash() string
	// Chance reports true with probability p.
	Chance(p float64) bool
	// Intn returns a value in [0, n).
	Intn(n int) int
}

const (
	hashAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	hashLength   = 7
)

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded from the runtime.
func NewRandom() Random {
	return &pcgRandom{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandom returns a reproducible Random.
func NewSeededRandom(seed uint64) Random {
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) Hash() string {
	var sb strings.Builder
	sb.Grow(hashLength)
	for i := 0; i < hashLength; i++ {
		sb.WriteByte(hashAlphabet[p.r.IntN(len(hashAlphabet))])
	}
	return sb.String()
}

func (p *pcgRandom) Chance(prob float64) bool {
	return p.r.Float64() < prob
}

func (p *pcgRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.IntN(n)
}
