package types_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/initia-labs/attestation/x/vaa/types"
)

func sampleVAA() *types.VAA {
	v := &types.VAA{
		Version:          types.SupportedVAAVersion,
		GuardianSetIndex: 3,
		Timestamp:        1_656_000_000,
		Nonce:            42,
		EmitterChain:     types.ChainIDEthereum,
		EmitterAddress:   types.Address{12: 0xde, 13: 0xad, 31: 0xef},
		Sequence:         1024,
		ConsistencyLevel: 15,
		Payload:          []byte("hello world"),
	}

	for _, index := range []uint8{0, 2, 5} {
		sig := &types.Signature{Index: index, V: 1}
		sig.R[0] = index + 1
		sig.S[31] = index + 2
		v.Signatures = append(v.Signatures, sig)
	}

	return v
}

func TestVAA_MarshalLayout(t *testing.T) {
	v := sampleVAA()
	bz, err := v.Marshal()
	require.NoError(t, err)
	require.Len(t, bz, types.MinVAALength+3*types.SignatureLength+len(v.Payload))

	require.Equal(t, byte(1), bz[0])
	require.Equal(t, []byte{0, 0, 0, 3}, bz[1:5])
	require.Equal(t, byte(3), bz[5])

	// second signature
	sig := bz[types.HeaderLength+types.SignatureLength:]
	require.Equal(t, byte(2), sig[0])
	require.Equal(t, byte(3), sig[1])
	require.Equal(t, byte(4), sig[64])
	require.Equal(t, byte(1), sig[65])

	body := bz[types.HeaderLength+3*types.SignatureLength:]
	require.Equal(t, v.MarshalBody(), body)
	require.Equal(t, []byte{0x00, 0x02}, body[8:10])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x04, 0x00}, body[42:50])
	require.Equal(t, byte(15), body[50])
	require.Equal(t, v.Payload, body[types.BodyLength:])
}

func TestVAA_RoundTrip(t *testing.T) {
	v := sampleVAA()
	bz, err := v.Marshal()
	require.NoError(t, err)

	parsed, err := types.Unmarshal(bz)
	require.NoError(t, err)
	require.Equal(t, v, parsed)

	// empty payload
	v.Payload = []byte{}
	v.Signatures = nil
	bz, err = v.Marshal()
	require.NoError(t, err)
	require.Len(t, bz, types.MinVAALength)

	parsed, err = types.Unmarshal(bz)
	require.NoError(t, err)
	require.Empty(t, parsed.Signatures)
	require.Equal(t, []byte{}, parsed.Payload)
}

func TestUnmarshal_Malformed(t *testing.T) {
	bz, err := sampleVAA().Marshal()
	require.NoError(t, err)

	_, err = types.Unmarshal(nil)
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)

	_, err = types.Unmarshal(bz[:types.MinVAALength-1])
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)

	// signatures declared but body truncated
	_, err = types.Unmarshal(bz[:types.HeaderLength+3*types.SignatureLength+types.BodyLength-1])
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)

	// more signatures declared than present
	tampered := bytes.Clone(bz)
	tampered[5] = 200
	_, err = types.Unmarshal(tampered)
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)

	tampered = bytes.Clone(bz)
	tampered[0] = 2
	_, err = types.Unmarshal(tampered)
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)
}

func TestVAA_Digest(t *testing.T) {
	v := sampleVAA()
	body := v.MarshalBody()

	expected := crypto.Keccak256(crypto.Keccak256(body))
	require.Equal(t, expected, v.SigningDigest().Bytes())
	require.Equal(t, hex.EncodeToString(expected), v.HexDigest())

	// signatures are not part of the digest
	v.Signatures = nil
	v.GuardianSetIndex = 9
	require.Equal(t, expected, v.SigningDigest().Bytes())
}

func TestVAA_MessageID(t *testing.T) {
	v := sampleVAA()
	require.Equal(t, "2/"+v.EmitterAddress.String()+"/1024", v.MessageID())
}

func TestVAA_AddSignature(t *testing.T) {
	v := &types.VAA{}
	v.AddSignature(&types.Signature{Index: 4})
	v.AddSignature(&types.Signature{Index: 1})
	v.AddSignature(&types.Signature{Index: 7})
	v.AddSignature(&types.Signature{Index: 4, V: 1})

	require.Len(t, v.Signatures, 3)
	require.Equal(t, uint8(1), v.Signatures[0].Index)
	require.Equal(t, uint8(4), v.Signatures[1].Index)
	require.Equal(t, uint8(1), v.Signatures[1].V)
	require.Equal(t, uint8(7), v.Signatures[2].Index)
}

func TestSignatureFromBytes(t *testing.T) {
	bz := make([]byte, 65)
	bz[0], bz[32], bz[64] = 1, 2, 1

	sig, err := types.SignatureFromBytes(3, bz)
	require.NoError(t, err)
	require.Equal(t, uint8(3), sig.Index)
	require.Equal(t, bz, sig.Bytes())

	_, err = types.SignatureFromBytes(0, bz[:64])
	require.ErrorIs(t, err, types.ErrInvalidSignature)
}

func TestSignature_JSON(t *testing.T) {
	bz := make([]byte, 65)
	bz[0], bz[31], bz[32], bz[64] = 0xab, 0x01, 0xcd, 1

	sig, err := types.SignatureFromBytes(2, bz)
	require.NoError(t, err)

	out, err := json.Marshal(sig)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"index": 2,
		"r": "ab00000000000000000000000000000000000000000000000000000000000001",
		"s": "cd00000000000000000000000000000000000000000000000000000000000000",
		"v": 1
	}`, string(out))

	var decoded types.Signature
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, *sig, decoded)

	// a 0x prefix is accepted
	require.NoError(t, json.Unmarshal([]byte(`{"index":2,"r":"0xab00000000000000000000000000000000000000000000000000000000000001","s":"cd00000000000000000000000000000000000000000000000000000000000000","v":1}`), &decoded))
	require.Equal(t, *sig, decoded)

	err = json.Unmarshal([]byte(`{"index":0,"r":"abcd","s":"cd","v":0}`), &decoded)
	require.ErrorIs(t, err, types.ErrInvalidSignature)
}

func TestNewSchnorrSignature(t *testing.T) {
	commitment := bytes.Repeat([]byte{0xaa}, 20)
	s := bytes.Repeat([]byte{0xbb}, 32)

	sig := types.NewSchnorrSignature(2, commitment, s)
	require.Equal(t, make([]byte, 12), sig.R[:12])
	require.Equal(t, commitment, sig.R[12:])
	require.Equal(t, s, sig.S[:])
	require.Zero(t, sig.V)
}

func TestMessageSigningDigest(t *testing.T) {
	prefix := []byte("acct_sub_obsfig_000000000000000000|")
	data := []byte("data")

	digest, err := types.MessageSigningDigest(prefix, data)
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256(append(bytes.Clone(prefix), data...)), digest.Bytes())

	_, err = types.MessageSigningDigest(prefix[:31], data)
	require.ErrorIs(t, err, types.ErrInvalidSignature)
}

func genVAA() gopter.Gen {
	return gopter.CombineGens(
		gen.UInt32(),
		gen.UInt32(),
		gen.UInt32(),
		gen.UInt16(),
		gen.SliceOfN(32, gen.UInt8()),
		gen.UInt64(),
		gen.UInt8(),
		gen.SliceOf(gen.UInt8()),
		gen.SliceOf(gen.UInt8()),
	).Map(func(values []interface{}) *types.VAA {
		v := &types.VAA{
			Version:          types.SupportedVAAVersion,
			GuardianSetIndex: values[0].(uint32),
			Timestamp:        values[1].(uint32),
			Nonce:            values[2].(uint32),
			EmitterChain:     types.ChainID(values[3].(uint16)),
			Sequence:         values[5].(uint64),
			ConsistencyLevel: values[6].(uint8),
			Payload:          values[7].([]uint8),
		}
		copy(v.EmitterAddress[:], values[4].([]uint8))
		if v.Payload == nil {
			v.Payload = []byte{}
		}

		for _, index := range values[8].([]uint8) {
			sig := &types.Signature{Index: index, V: index % 2}
			sig.R[31] = index
			sig.S[0] = ^index
			v.AddSignature(sig)
		}

		return v
	})
}

func TestVAA_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("unmarshal inverts marshal", prop.ForAll(
		func(v *types.VAA) bool {
			bz, err := v.Marshal()
			if err != nil {
				return false
			}

			parsed, err := types.Unmarshal(bz)
			if err != nil {
				return false
			}

			again, err := parsed.Marshal()
			return err == nil && bytes.Equal(bz, again) && parsed.SigningDigest() == v.SigningDigest()
		},
		genVAA(),
	))

	properties.Property("flipping any body byte changes the digest", prop.ForAll(
		func(v *types.VAA, position int, mask uint8) bool {
			body := v.MarshalBody()
			tampered := bytes.Clone(body)
			tampered[position%len(tampered)] ^= mask | 0x01

			return types.Digest(body) == types.Digest(bytes.Clone(body)) &&
				types.Digest(body) != types.Digest(tampered)
		},
		genVAA(),
		gen.IntRange(0, 1<<16),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
