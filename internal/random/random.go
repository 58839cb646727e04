package random

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// codeAlphabet deliberately omits 0, O, 1, I and L so codes survive being
// read aloud or typed from a phone screen.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 4
)

// Generator produces the random values the service depends on: room join
// codes, bearer tokens and uniform draws for winner selection.
type Generator interface {
	RoomCode() (string, error)
	Token() (string, error)
	Intn(n int) int
}

// CryptoGenerator is the production Generator, backed by crypto/rand.
type CryptoGenerator struct{}

func NewCryptoGenerator() *CryptoGenerator {
	return &CryptoGenerator{}
}

func (g *CryptoGenerator) RoomCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate room code: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code), nil
}

func (g *CryptoGenerator) Token() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token.String(), nil
}

func (g *CryptoGenerator) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the process can't do anything useful
		panic(fmt.Sprintf("read random: %v", err))
	}

	return int(v.Int64())
}
