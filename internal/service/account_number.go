package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/withgossing/bank-app/internal/domain"
)

var accountNumberSpace = big.NewInt(100_000_000)

func productPrefix(t domain.ProductType) int {
	switch t {
	case domain.ProductTypeFixedDeposit:
		return 120
	case domain.ProductTypeRegularDeposit:
		return 130
	default:
		return 110
	}
}

// newAccountNumber returns a display number like 110-483920-17. The leading
// group encodes the product type.
func newAccountNumber(t domain.ProductType) (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", fmt.Errorf("newAccountNumber: %w", err)
	}
	v := n.Int64()
	return fmt.Sprintf("%03d-%06d-%02d", productPrefix(t), v/100, v%100), nil
}
