package testutil

// DONTCOVER

import (
	"fmt"

	"github.com/initia-labs/attestation/crypto/guardian"
	"github.com/initia-labs/attestation/x/vaa/types"
)

// Guardians holds the private keys of a test guardian set.
type Guardians struct {
	Scheme  types.SignatureScheme
	signers []*guardian.Signer
}

func newGuardians(scheme types.SignatureScheme, n int) *Guardians {
	g := &Guardians{Scheme: scheme}
	for i := 0; i < n; i++ {
		signer, err := guardian.GenerateSigner(scheme)
		if err != nil {
			panic(err)
		}
		g.signers = append(g.signers, signer)
	}

	return g
}

// NewECDSAGuardians generates n ECDSA guardians.
func NewECDSAGuardians(n int) *Guardians {
	return newGuardians(types.SchemeECDSA, n)
}

// NewSchnorrGuardians generates n Schnorr guardians.
func NewSchnorrGuardians(n int) *Guardians {
	return newGuardians(types.SchemeSchnorr, n)
}

// Len returns the number of guardians.
func (g *Guardians) Len() int {
	return len(g.signers)
}

// Signer returns the signer of guardian i.
func (g *Guardians) Signer(i int) *guardian.Signer {
	return g.signers[i]
}

// Keys returns the public guardian keys in order.
func (g *Guardians) Keys() []types.HexBytes {
	keys := make([]types.HexBytes, g.Len())
	for i := range keys {
		keys[i] = g.Key(i)
	}

	return keys
}

// Key returns the public key of guardian i.
func (g *Guardians) Key(i int) types.HexBytes {
	return g.signers[i].Key()
}

// GuardianSet returns the public guardian set with the given index.
func (g *Guardians) GuardianSet(index uint32) types.GuardianSet {
	return types.GuardianSet{
		Index:  index,
		Keys:   g.Keys(),
		Scheme: g.Scheme,
	}
}

// SignDigest signs digest with guardian i.
func (g *Guardians) SignDigest(i int, digest []byte) *types.Signature {
	sig, err := g.signers[i].SignDigest(uint8(i), digest)
	if err != nil {
		panic(err)
	}

	return sig
}

// Sign adds the signatures of the given guardians to v. Without indices
// every guardian signs.
func (g *Guardians) Sign(v *types.VAA, indices ...int) *types.VAA {
	if len(indices) == 0 {
		for i := 0; i < g.Len(); i++ {
			indices = append(indices, i)
		}
	}

	digest := v.SigningDigest()
	for _, i := range indices {
		v.AddSignature(g.SignDigest(i, digest.Bytes()))
	}

	return v
}

// SignMessage signs keccak256(prefix || data) with guardian i.
func (g *Guardians) SignMessage(i int, prefix, data []byte) *types.Signature {
	sig, err := g.signers[i].SignMessage(uint8(i), prefix, data)
	if err != nil {
		panic(err)
	}

	return sig
}

// MustMarshal encodes v, panicking on error.
func MustMarshal(v *types.VAA) []byte {
	bz, err := v.Marshal()
	if err != nil {
		panic(fmt.Sprintf("marshal vaa: %v", err))
	}

	return bz
}

// NewVAA returns an unsigned envelope with the given emitter and payload.
func NewVAA(gsIndex uint32, chain types.ChainID, emitter types.Address, sequence uint64, payload []byte) *types.VAA {
	return &types.VAA{
		Version:          types.SupportedVAAVersion,
		GuardianSetIndex: gsIndex,
		Timestamp:        1_600_000_000,
		Nonce:            uint32(sequence),
		EmitterChain:     chain,
		EmitterAddress:   emitter,
		Sequence:         sequence,
		ConsistencyLevel: 32,
		Payload:          payload,
	}
}
