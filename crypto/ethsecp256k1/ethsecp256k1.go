package ethsecp256k1

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	io "io"
	"math/big"

	"github.com/cometbft/cometbft/crypto"
	"golang.org/x/crypto/sha3"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	// PrivKeySize defines the size of the PrivKey bytes
	PrivKeySize = 32
	// PubKeySize defines the size of the PubKey bytes
	PubKeySize = 33
	// UncompressedPubKeySize defines the size of the uncompressed PubKey bytes
	UncompressedPubKeySize = 65
	// SignatureSize defines the size of the ECDSA signature with the recovery ID
	SignatureSize = 65
	// AddressSize is the size of a guardian address
	AddressSize = common.AddressLength
	// DigestSize is the size of the hash a guardian signs
	DigestSize = 32
	// KeyType is the string constant for the Secp256k1 algorithm
	KeyType = "eth_secp256k1"
)

// compactSigMagicOffset is the recovery code offset of decred compact signatures.
const compactSigMagicOffset = 27

// ----------------------------------------------------------------------------
// secp256k1 Private Key

// PrivKey is a guardian ECDSA signing key.
type PrivKey struct {
	Key []byte
}

// GenerateKey generates a new random private key.
func GenerateKey() *PrivKey {
	return &PrivKey{Key: genPrivKey(crypto.CReader())}
}

// PrivKeyFromBytes wraps a 32 byte scalar.
func PrivKeyFromBytes(bz []byte) (*PrivKey, error) {
	if len(bz) != PrivKeySize {
		return nil, fmt.Errorf("invalid privkey size, expected %d got %d", PrivKeySize, len(bz))
	}

	return &PrivKey{Key: append([]byte{}, bz...)}, nil
}

// genPrivKey generates a new secp256k1 private key using the provided reader.
func genPrivKey(rand io.Reader) []byte {
	var privKeyBytes [PrivKeySize]byte
	d := new(big.Int)
	for {
		privKeyBytes = [PrivKeySize]byte{}
		_, err := io.ReadFull(rand, privKeyBytes[:])
		if err != nil {
			panic(err)
		}

		d.SetBytes(privKeyBytes[:])
		// break if we found a valid point (i.e. > 0 and < N == curverOrder)
		isValidFieldElement := 0 < d.Sign() && d.Cmp(secp256k1.S256().N) < 0
		if isValidFieldElement {
			break
		}
	}

	return privKeyBytes[:]
}

// Bytes returns the byte representation of the ECDSA Private Key.
func (privKey PrivKey) Bytes() []byte {
	bz := make([]byte, len(privKey.Key))
	copy(bz, privKey.Key)

	return bz
}

// PubKey returns the ECDSA private key's public key.
func (privKey PrivKey) PubKey() *PubKey {
	pubkeyObject := secp256k1.PrivKeyFromBytes(privKey.Key).PubKey()
	pk := pubkeyObject.SerializeCompressed()

	return &PubKey{Key: pk}
}

// Address returns the guardian address of the key.
func (privKey PrivKey) Address() common.Address {
	return privKey.PubKey().Address()
}

// Equals returns true if two ECDSA private keys are equal and false otherwise.
func (privKey PrivKey) Equals(other *PrivKey) bool {
	return subtle.ConstantTimeCompare(privKey.Bytes(), other.Bytes()) == 1
}

// Type returns eth_secp256k1
func (privKey PrivKey) Type() string {
	return KeyType
}

// Sign creates a recoverable ECDSA signature over an already hashed 32 byte
// digest. The produced signature is R || S || V where V is the recovery id
// in {0, 1}.
func (privKey PrivKey) Sign(digest []byte) ([]byte, error) {
	if len(digest) != DigestSize {
		return nil, fmt.Errorf("invalid digest size, expected %d got %d", DigestSize, len(digest))
	}

	priv := secp256k1.PrivKeyFromBytes(privKey.Key)

	sig := ecdsa.SignCompact(priv, digest, false)
	recid := sig[0] - compactSigMagicOffset

	// move the recovery code from the front to the back
	return append(sig[1:], recid), nil
}

// ----------------------------------------------------------------------------
// secp256k1 Public Key

// PubKey is a compressed secp256k1 public key.
type PubKey struct {
	Key []byte
}

// NewPubKeyFromBytes creates a new PubKey object from a compressed or
// uncompressed byte slice.
func NewPubKeyFromBytes(key []byte) (*PubKey, error) {
	if len(key) == UncompressedPubKeySize {
		// compress the key
		pub, err := secp256k1.ParsePubKey(key)
		if err != nil {
			return nil, err
		}
		key = pub.SerializeCompressed()
	} else if len(key) != PubKeySize {
		return nil, fmt.Errorf("invalid pubkey size, expected %d, got %d", PubKeySize, len(key))
	}

	return &PubKey{Key: key}, nil
}

// Address returns the last 20 bytes of keccak256 over the uncompressed
// public key without its 0x04 prefix.
func (pubKey PubKey) Address() common.Address {
	if len(pubKey.Key) != PubKeySize {
		panic("length of pubKey is incorrect")
	}

	pub, err := secp256k1.ParsePubKey(pubKey.Key)
	if err != nil {
		panic(err)
	}

	pubBytes := pub.SerializeUncompressed()
	return common.BytesToAddress(keccak256(pubBytes[1:])[12:])
}

// Bytes returns the raw bytes of the ECDSA public key.
func (pubKey PubKey) Bytes() []byte {
	bz := make([]byte, len(pubKey.Key))
	copy(bz, pubKey.Key)

	return bz
}

// String implements the fmt.Stringer interface.
func (pubKey PubKey) String() string {
	return fmt.Sprintf("EthPubKeySecp256k1{%X}", pubKey.Key)
}

// Equals returns true if their bytes are deeply equal.
func (pubKey PubKey) Equals(other *PubKey) bool {
	return bytes.Equal(pubKey.Bytes(), other.Bytes())
}

// RecoverAddress recovers the signer address of an R || S || V signature
// over digest.
func RecoverAddress(digest, sig []byte) (common.Address, error) {
	if len(digest) != DigestSize {
		return common.Address{}, fmt.Errorf("invalid digest size, expected %d got %d", DigestSize, len(digest))
	}

	if len(sig) != SignatureSize {
		return common.Address{}, fmt.Errorf("invalid signature size, expected %d got %d", SignatureSize, len(sig))
	}

	if sig[64] > 1 {
		return common.Address{}, errors.New("invalid recovery id")
	}

	pub, err := ethcrypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(*pub), nil
}

func keccak256(bytes []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(bytes)
	return hasher.Sum(nil)
}
