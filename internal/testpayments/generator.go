package testpayments

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	amountKindDivisor  = 8
)

// Constants for amount generation ranges (major units).
const (
	modestMin    = 0.01
	modestRange  = 0.49
	midMin       = 0.50
	midRange     = 1.50
	seriousMin   = 2.00
	seriousRange = 3.00
	summitMin    = 5.00
	summitRange  = 5.00
	floorMin     = 0.005
	floorRange   = 0.005
)

// Amount kind cases.
const (
	caseModest = 0
	caseMid    = 1
	caseFloor  = 2
	caseSummit = 3
)

var firstNames = []string{
	"Arthur", "Beatrice", "Cedric", "Delia", "Edmund", "Fiona",
	"Gareth", "Harriet", "Ivo", "Josephine", "Kit", "Lavinia",
}

var lastNames = []string{
	"Ashworth", "Blackwood", "Carmichael", "Davenport", "Ellsworth",
	"Fairfax", "Grantham", "Holloway", "Inglewood", "Jessop",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generatePayments creates the requested number of payment flows with
// varied amounts: most land in the anonymous bulk, some contend for the
// named top, the occasional one goes for the summit.
func generatePayments(count int) []Payment {
	payments := make([]Payment, count)
	for i := range payments {
		payments[i] = Payment{
			Name:   generateName(i),
			Amount: fmt.Sprintf("%.3f", generateVariedAmount()),
		}
	}
	return payments
}

// generateName builds a distinct participant name.
func generateName(index int) string {
	f, _ := rand.Int(rand.Reader, big.NewInt(int64(len(firstNames))))
	l, _ := rand.Int(rand.Reader, big.NewInt(int64(len(lastNames))))
	return fmt.Sprintf("%s %s %d", firstNames[f.Int64()], lastNames[l.Int64()], index)
}

// generateVariedAmount creates an amount with a varied distribution.
func generateVariedAmount() float64 {
	kind, _ := rand.Int(rand.Reader, big.NewInt(amountKindDivisor))
	switch kind.Int64() {
	case caseModest:
		// Modest claims (0.01 - 0.50) - most common
		return modestMin + getRandomFloat()*modestRange
	case caseMid:
		// Mid-pyramid claims (0.50 - 2.00)
		return midMin + getRandomFloat()*midRange
	case caseFloor:
		// Floor-level claims (0.005 - 0.01) - rare
		return floorMin + getRandomFloat()*floorRange
	case caseSummit:
		// Summit contenders (5.00 - 10.00) - rare
		return summitMin + getRandomFloat()*summitRange
	default:
		// Serious claims (2.00 - 5.00)
		return seriousMin + getRandomFloat()*seriousRange
	}
}
