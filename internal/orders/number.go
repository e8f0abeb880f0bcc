package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const orderNumberDigits = 8

var orderNumberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(orderNumberDigits), nil)

// newOrderNumber draws a random 8-digit order number. Collisions are handled
// by the unique constraint on orders, not here.
func newOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, orderNumberSpace)
	if err != nil {
		return "", fmt.Errorf("generating order number: %w", err)
	}
	return fmt.Sprintf("%0*d", orderNumberDigits, n), nil
}
