package dice

import (
	"crypto/rand"
	"math/big"
)

type cryptoSource struct{}

// NewCryptoSource returns the production Source, backed by crypto/rand so
// encounter outcomes cannot be predicted from process state.
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Intn returns a uniform random int in [0, n).
//
// Precondition: n > 0; violating it panics.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn requires n > 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: reading crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
