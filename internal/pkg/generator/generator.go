package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CorrelationID identifies a single inbound request across log lines.
func (g *Generator) CorrelationID() string {
	return uuid.NewString()
}

// IdempotencyKey is attached to gateway confirm calls so a retried
// submission cannot double-charge the same payment session.
func (g *Generator) IdempotencyKey() string {
	return uuid.NewString()
}

func (g *Generator) ReceiptNumber() (string, error) {
	randomBytes := make([]byte, 8)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("RCP-%s", hex.EncodeToString(randomBytes)), nil
}
