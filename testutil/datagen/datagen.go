package datagen

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/lsthub/types"
)

// AddRandomSeedsToFuzzer seeds f with num random int64 values.
func AddRandomSeedsToFuzzer(f *testing.F, num uint) {
	// Seed based on the current time
	r := rand.New(rand.NewSource(time.Now().Unix()))
	for i := uint(0); i < num; i++ {
		f.Add(r.Int63())
	}
}

// RandomInt returns a value in [0, rng).
func RandomInt(r *rand.Rand, rng int) uint64 {
	return uint64(r.Intn(rng))
}

// RandomIntOtherThan returns a value in [0, rng) different from x.
func RandomIntOtherThan(r *rand.Rand, x int, rng int) uint64 {
	v := RandomInt(r, rng)
	for v == uint64(x) {
		v = RandomInt(r, rng)
	}
	return v
}

// RandomUint returns an amount in [1, max], or zero if max is zero.
func RandomUint(r *rand.Rand, max uint64) sdkmath.Uint {
	if max == 0 {
		return sdkmath.ZeroUint()
	}
	return sdkmath.NewUint(uint64(r.Int63n(int64(max)) + 1))
}

// GenRandomAddress returns a short unique-looking address with prefix.
func GenRandomAddress(r *rand.Rand, prefix string) string {
	return fmt.Sprintf("%s1%012x", prefix, r.Int63())
}

// GenRandomValidators returns n distinct validator addresses.
func GenRandomValidators(r *rand.Rand, n int) []string {
	seen := make(map[string]struct{}, n)
	validators := make([]string, 0, n)
	for len(validators) < n {
		v := GenRandomAddress(r, "valoper")
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		validators = append(validators, v)
	}
	return validators
}

// GenRandomDelegations assigns each validator an amount in [0, max].
func GenRandomDelegations(r *rand.Rand, validators []string, max uint64) []types.Delegation {
	delegations := make([]types.Delegation, 0, len(validators))
	for _, v := range validators {
		delegations = append(delegations, types.NewDelegation(v, sdkmath.NewUint(uint64(r.Int63n(int64(max)+1)))))
	}
	return delegations
}
