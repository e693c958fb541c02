package schnorr

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// maxKeyAttempts bounds the search for a key whose px is in range; roughly
// half of all keys qualify.
const maxKeyAttempts = 128

// PrivKey is a guardian Schnorr signing key.
type PrivKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey returns a random key whose public x coordinate is at most N/2.
func GenerateKey() (*PrivKey, error) {
	for i := 0; i < maxKeyAttempts; i++ {
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}

		if _, err := EncodeKey(priv.PubKey()); err == nil {
			return &PrivKey{key: priv}, nil
		}
	}

	return nil, fmt.Errorf("%w: no usable key after %d attempts", ErrInvalidKey, maxKeyAttempts)
}

// PrivKeyFromBytes wraps a 32 byte scalar. The public x coordinate must be
// at most N/2.
func PrivKeyFromBytes(bz []byte) (*PrivKey, error) {
	if len(bz) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidKey, len(bz))
	}

	priv := secp256k1.PrivKeyFromBytes(bz)
	if priv.Key.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidKey)
	}

	if _, err := EncodeKey(priv.PubKey()); err != nil {
		return nil, err
	}

	return &PrivKey{key: priv}, nil
}

// Bytes returns the private scalar.
func (k *PrivKey) Bytes() []byte {
	return k.key.Serialize()
}

// PubKey returns the encoded guardian key px<<1 | parity.
func (k *PrivKey) PubKey() []byte {
	key, err := EncodeKey(k.key.PubKey())
	if err != nil {
		// checked when the key was created
		panic(err)
	}

	return key
}

// Sign produces (commitment, s) over digest. The nonce is derived from the
// private key and digest so signing is deterministic.
func (k *PrivKey) Sign(digest []byte) (commitment []byte, s []byte, err error) {
	if len(digest) != DigestSize {
		return nil, nil, ErrInvalidDigest
	}

	px, parity, err := DecodeKey(k.PubKey())
	if err != nil {
		return nil, nil, err
	}

	privBytes := k.key.Serialize()
	for counter := uint32(0); ; counter++ {
		var ctr [4]byte
		binary.BigEndian.PutUint32(ctr[:], counter)

		hasher := sha3.NewLegacyKeccak256()
		hasher.Write(privBytes)
		hasher.Write(digest)
		hasher.Write(ctr[:])

		var nonce secp256k1.ModNScalar
		if overflow := nonce.SetByteSlice(hasher.Sum(nil)); overflow || nonce.IsZero() {
			continue
		}

		commitment = address(secp256k1.NewPrivateKey(&nonce).PubKey())

		var e secp256k1.ModNScalar
		e.SetByteSlice(challenge(&px, parity, digest, commitment))

		// s = nonce - e * x
		ex := new(secp256k1.ModNScalar).Mul2(&e, &k.key.Key).Negate()
		sScalar := new(secp256k1.ModNScalar).Add2(&nonce, ex)

		// the verifier rejects degenerate products, pick another nonce
		if new(secp256k1.ModNScalar).Mul2(sScalar, &px).IsZero() {
			continue
		}

		sBytes := sScalar.Bytes()
		return commitment, sBytes[:], nil
	}
}
