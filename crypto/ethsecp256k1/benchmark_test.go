package ethsecp256k1

import (
	"fmt"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func BenchmarkGenerateKey(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = GenerateKey()
	}
}

func BenchmarkRecoverAddress(b *testing.B) {
	privKey := GenerateKey()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		digest := ethcrypto.Keccak256([]byte(fmt.Sprintf("%10d", i)))
		sig, err := privKey.Sign(digest)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := RecoverAddress(digest, sig); err != nil {
			b.Fatal(err)
		}
	}
}
