// Package schnorr implements guardian Schnorr signatures that verify with a
// single secp256k1 public key recovery.
//
// A guardian key is the 32 byte value px<<1 | parity where px is the x
// coordinate of the signer's public point P and parity the oddness of its y
// coordinate. A signature is a 20 byte address commitment r to the nonce
// point R and a scalar s. Recovering with hash = -(s*px), r = px and
// s' = e*px yields s*G + e*P, which equals R for an honest signer.
package schnorr

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	// KeySize is the size of an encoded guardian key.
	KeySize = 32
	// CommitmentSize is the size of the nonce address commitment.
	CommitmentSize = 20
	// ScalarSize is the size of the signature scalar.
	ScalarSize = 32
	// DigestSize is the size of the signed message digest.
	DigestSize = 32

	compactSigMagicOffset = 27
)

var (
	ErrInvalidKey         = errors.New("schnorr: invalid key")
	ErrInvalidDigest      = errors.New("schnorr: invalid digest")
	ErrInvalidSignature   = errors.New("schnorr: invalid signature length")
	ErrZeroScalar         = errors.New("schnorr: degenerate signature")
	ErrRecoveryFailed     = errors.New("schnorr: public key recovery failed")
	ErrCommitmentMismatch = errors.New("schnorr: commitment mismatch")
)

// DecodeKey splits an encoded key into px and parity. px must satisfy
// 0 < px <= N/2.
func DecodeKey(key []byte) (px secp256k1.ModNScalar, parity uint8, err error) {
	if len(key) != KeySize {
		return px, 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	var shifted [KeySize]byte
	for i := KeySize - 1; i > 0; i-- {
		shifted[i] = key[i]>>1 | key[i-1]<<7
	}
	shifted[0] = key[0] >> 1
	parity = key[KeySize-1] & 1

	if overflow := px.SetByteSlice(shifted[:]); overflow {
		return px, 0, fmt.Errorf("%w: px exceeds the group order", ErrInvalidKey)
	}

	if px.IsZero() || px.IsOverHalfOrder() {
		return px, 0, fmt.Errorf("%w: px out of range", ErrInvalidKey)
	}

	return px, parity, nil
}

// EncodeKey returns px<<1 | parity for a public key.
func EncodeKey(pub *secp256k1.PublicKey) ([]byte, error) {
	compressed := pub.SerializeCompressed()
	px := compressed[1:]
	parity := compressed[0] & 1

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(px); overflow || scalar.IsOverHalfOrder() {
		return nil, fmt.Errorf("%w: px out of range", ErrInvalidKey)
	}

	key := make([]byte, KeySize)
	for i := 0; i < KeySize-1; i++ {
		key[i] = px[i]<<1 | px[i+1]>>7
	}
	key[KeySize-1] = px[KeySize-1]<<1 | parity

	return key, nil
}

// challenge returns keccak256(px || parity || digest || commitment).
func challenge(px *secp256k1.ModNScalar, parity uint8, digest []byte, commitment []byte) []byte {
	pxBytes := px.Bytes()

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(pxBytes[:])
	hasher.Write([]byte{parity})
	hasher.Write(digest)
	hasher.Write(commitment)
	return hasher.Sum(nil)
}

// Verify checks the signature (commitment, s) over digest for key.
func Verify(key, digest, commitment, s []byte) error {
	if len(digest) != DigestSize {
		return ErrInvalidDigest
	}

	if len(commitment) != CommitmentSize || len(s) != ScalarSize {
		return ErrInvalidSignature
	}

	px, parity, err := DecodeKey(key)
	if err != nil {
		return err
	}

	var sScalar, eScalar secp256k1.ModNScalar
	if overflow := sScalar.SetByteSlice(s); overflow {
		return fmt.Errorf("%w: s exceeds the group order", ErrInvalidSignature)
	}
	eScalar.SetByteSlice(challenge(&px, parity, digest, commitment))

	// sp = -(s * px) mod N, ep = e * px mod N
	sp := new(secp256k1.ModNScalar).Mul2(&sScalar, &px).Negate()
	ep := new(secp256k1.ModNScalar).Mul2(&eScalar, &px)
	if sp.IsZero() || ep.IsZero() {
		return ErrZeroScalar
	}

	var sig [65]byte
	sig[0] = compactSigMagicOffset + parity
	px.PutBytesUnchecked(sig[1:33])
	ep.PutBytesUnchecked(sig[33:65])
	hash := sp.Bytes()

	recovered, _, err := ecdsa.RecoverCompact(sig[:], hash[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
	}

	if !bytes.Equal(address(recovered), commitment) {
		return ErrCommitmentMismatch
	}

	return nil
}

// address returns the last 20 bytes of keccak256 of the uncompressed point.
func address(pub *secp256k1.PublicKey) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(pub.SerializeUncompressed()[1:])
	return hasher.Sum(nil)[12:]
}
