package vaultsdk

import (
	"fmt"
	"strings"
)

// Curve and signing algorithm names used by the plugin.
const (
	CurveSecp256k1  = "secp256k1"
	CurveBabyjubjub = "babyjubjub"

	SigningAlgorithmECDSA = "ecdsa"
	SigningAlgorithmEdDSA = "eddsa"
)

// Algorithm is the crypto algorithm of a key.
type Algorithm int

const (
	// Secp256k1 is ECDSA over secp256k1, as used by Ethereum.
	Secp256k1 Algorithm = iota + 1
	// Babyjubjub is EdDSA over the BabyJubJub curve, as used by zk-SNARK circuits.
	Babyjubjub
)

var algorithms = map[Algorithm]struct {
	curve            string
	signingAlgorithm string
}{
	Secp256k1:  {curve: CurveSecp256k1, signingAlgorithm: SigningAlgorithmECDSA},
	Babyjubjub: {curve: CurveBabyjubjub, signingAlgorithm: SigningAlgorithmEdDSA},
}

// IsValid checks if the algorithm is one of the supported values.
func (a Algorithm) IsValid() bool {
	_, ok := algorithms[a]
	return ok
}

// Curve returns the curve name sent to the backend.
func (a Algorithm) Curve() string {
	return algorithms[a].curve
}

// SigningAlgorithm returns the signing algorithm name sent to the backend.
func (a Algorithm) SigningAlgorithm() string {
	return algorithms[a].signingAlgorithm
}

// String returns the curve name.
func (a Algorithm) String() string {
	if !a.IsValid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return a.Curve()
}

// ParseAlgorithm maps a curve name to an Algorithm.
func ParseAlgorithm(curve string) (Algorithm, error) {
	for a, def := range algorithms {
		if strings.EqualFold(def.curve, curve) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, curve)
}

func lookupAlgorithm(curve, signingAlgorithm string) (Algorithm, bool) {
	for a, def := range algorithms {
		if def.curve == curve && def.signingAlgorithm == signingAlgorithm {
			return a, true
		}
	}
	return 0, false
}
