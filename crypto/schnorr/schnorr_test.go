package schnorr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

func digestOf(msg string) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(msg))
	return hasher.Sum(nil)
}

func TestSignVerify(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	digest := digestOf("transfer")
	commitment, s, err := priv.Sign(digest)
	require.NoError(t, err)
	require.Len(t, commitment, CommitmentSize)
	require.Len(t, s, ScalarSize)

	require.NoError(t, Verify(priv.PubKey(), digest, commitment, s))
}

func TestSign_Deterministic(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	digest := digestOf("deterministic")
	c1, s1, err := priv.Sign(digest)
	require.NoError(t, err)
	c2, s2, err := priv.Sign(digest)
	require.NoError(t, err)

	require.Equal(t, c1, c2)
	require.Equal(t, s1, s2)
}

func TestVerify_Rejects(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)
	other, err := GenerateKey()
	require.NoError(t, err)

	digest := digestOf("message")
	commitment, s, err := priv.Sign(digest)
	require.NoError(t, err)

	// wrong digest
	require.Error(t, Verify(priv.PubKey(), digestOf("other message"), commitment, s))

	// wrong key
	require.Error(t, Verify(other.PubKey(), digest, commitment, s))

	// tampered scalar
	tampered := append([]byte{}, s...)
	tampered[31] ^= 0x01
	require.Error(t, Verify(priv.PubKey(), digest, commitment, tampered))

	// tampered commitment
	badCommitment := append([]byte{}, commitment...)
	badCommitment[0] ^= 0x01
	require.Error(t, Verify(priv.PubKey(), digest, badCommitment, s))

	// zero scalar gives sp == 0
	require.ErrorIs(t, Verify(priv.PubKey(), digest, commitment, make([]byte, ScalarSize)), ErrZeroScalar)

	// unreduced scalars are not accepted
	overflowing := make([]byte, ScalarSize)
	for i := range overflowing {
		overflowing[i] = 0xff
	}
	require.ErrorIs(t, Verify(priv.PubKey(), digest, commitment, overflowing), ErrInvalidSignature)

	groupOrder := secp256k1.S256().N.FillBytes(make([]byte, ScalarSize))
	require.ErrorIs(t, Verify(priv.PubKey(), digest, commitment, groupOrder), ErrInvalidSignature)

	// malformed lengths
	require.ErrorIs(t, Verify(priv.PubKey(), digest[:31], commitment, s), ErrInvalidDigest)
	require.ErrorIs(t, Verify(priv.PubKey(), digest, commitment[:19], s), ErrInvalidSignature)
}

func TestDecodeKey(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	key := priv.PubKey()
	px, parity, err := DecodeKey(key)
	require.NoError(t, err)

	compressed := priv.key.PubKey().SerializeCompressed()
	pxBytes := px.Bytes()
	require.Equal(t, compressed[1:], pxBytes[:])
	require.Equal(t, compressed[0]&1, parity)

	// zero px
	_, _, err = DecodeKey(make([]byte, KeySize))
	require.ErrorIs(t, err, ErrInvalidKey)

	// px above N/2
	high := make([]byte, KeySize)
	for i := range high {
		high[i] = 0xff
	}
	_, _, err = DecodeKey(high)
	require.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = DecodeKey(key[:31])
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestEncodeKey_RejectsHighX(t *testing.T) {
	// search for a key whose x coordinate is above N/2
	for i := 0; i < 256; i++ {
		priv, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)

		compressed := priv.PubKey().SerializeCompressed()
		var x secp256k1.ModNScalar
		overflow := x.SetByteSlice(compressed[1:])
		if !overflow && !x.IsOverHalfOrder() {
			continue
		}

		_, err = EncodeKey(priv.PubKey())
		require.ErrorIs(t, err, ErrInvalidKey)

		_, err = PrivKeyFromBytes(priv.Serialize())
		require.ErrorIs(t, err, ErrInvalidKey)
		return
	}

	t.Fatal("no key with a high x coordinate found")
}

func TestPrivKeyFromBytes(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	restored, err := PrivKeyFromBytes(priv.Bytes())
	require.NoError(t, err)
	require.Equal(t, priv.PubKey(), restored.PubKey())

	_, err = PrivKeyFromBytes(make([]byte, 32))
	require.ErrorIs(t, err, ErrInvalidKey)
}

// recoverCommitment recomputes a signature check with big integers and a
// plain ecrecover: e = keccak(px || parity || digest || r),
// sp = Q - (s*px mod Q), ep = e*px mod Q, recover(sp, v=parity, r=px, s=ep).
func recoverCommitment(t *testing.T, key, digest, commitment, s []byte) ([]byte, bool) {
	t.Helper()

	q, ok := new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	require.True(t, ok)

	k := new(big.Int).SetBytes(key)
	parity := byte(k.Bit(0))
	px := new(big.Int).Rsh(k, 1)
	pxBytes := px.FillBytes(make([]byte, 32))

	e := new(big.Int).SetBytes(ethcrypto.Keccak256(pxBytes, []byte{parity}, digest, commitment))

	sp := new(big.Int).Mul(new(big.Int).SetBytes(s), px)
	sp.Sub(q, sp.Mod(sp, q))
	ep := new(big.Int).Mul(e, px)
	ep.Mod(ep, q)

	if sp.Sign() == 0 || sp.Cmp(q) == 0 || ep.Sign() == 0 {
		return nil, false
	}

	sig := make([]byte, 65)
	copy(sig[:32], pxBytes)
	ep.FillBytes(sig[32:64])
	sig[64] = parity

	pub, err := ethcrypto.Ecrecover(sp.FillBytes(make([]byte, 32)), sig)
	require.NoError(t, err)

	return ethcrypto.Keccak256(pub[1:])[12:], true
}

func TestVerify_MatchesEcrecover(t *testing.T) {
	for i := 0; i < 16; i++ {
		priv, err := GenerateKey()
		require.NoError(t, err)

		digest := digestOf(string(rune('a' + i)))
		commitment, s, err := priv.Sign(digest)
		require.NoError(t, err)

		recovered, ok := recoverCommitment(t, priv.PubKey(), digest, commitment, s)
		require.True(t, ok)
		require.Equal(t, commitment, recovered)
		require.NoError(t, Verify(priv.PubKey(), digest, commitment, s))

		// a scalar off by one recovers another point on both paths
		bumped := new(big.Int).Add(new(big.Int).SetBytes(s), big.NewInt(1))
		bumped.Mod(bumped, secp256k1.S256().N)
		tampered := bumped.FillBytes(make([]byte, ScalarSize))

		recovered, ok = recoverCommitment(t, priv.PubKey(), digest, commitment, tampered)
		require.True(t, ok)
		require.NotEqual(t, commitment, recovered)
		require.ErrorIs(t, Verify(priv.PubKey(), digest, commitment, tampered), ErrCommitmentMismatch)
	}

	// s = 0 makes s*px vanish, both paths refuse it
	priv, err := GenerateKey()
	require.NoError(t, err)

	digest := digestOf("zero")
	commitment, _, err := priv.Sign(digest)
	require.NoError(t, err)

	zero := make([]byte, ScalarSize)
	_, ok := recoverCommitment(t, priv.PubKey(), digest, commitment, zero)
	require.False(t, ok)
	require.ErrorIs(t, Verify(priv.PubKey(), digest, commitment, zero), ErrZeroScalar)
}
