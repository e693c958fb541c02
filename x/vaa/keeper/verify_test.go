package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/initia-labs/attestation/x/vaa/testutil"
	"github.com/initia-labs/attestation/x/vaa/types"
)

var testEmitter = types.Address{31: 0x42}

func Test_VerifyVAA_ExactQuorum(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7, 13, 19} {
		ctx, k, guardians := createTestInputWithGuardians(t, n)
		quorum := types.CalculateQuorum(n)

		indices := make([]int, quorum)
		for i := range indices {
			indices[i] = n - quorum + i
		}

		v := guardians.Sign(testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload")), indices...)
		require.NoError(t, k.VerifyVAA(ctx, v), "n=%d", n)

		// one signature short fails before any cryptography
		v.Signatures = v.Signatures[1:]
		require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrInsufficientSignatures, "n=%d", n)
	}
}

func Test_VerifyVAA_InsufficientSignaturesBeforeCrypto(t *testing.T) {
	ctx, k, _ := createTestInputWithGuardians(t, 7)

	// garbage signatures with a bad ordering still report the count first
	v := testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload"))
	v.Signatures = []*types.Signature{{Index: 3}, {Index: 1}}
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrInsufficientSignatures)
}

func Test_VerifyVAA_NonMonotonicIndex(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 4)

	v := guardians.Sign(testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload")), 0, 1, 2)
	require.NoError(t, k.VerifyVAA(ctx, v))

	// swap two valid signatures
	v.Signatures[0], v.Signatures[1] = v.Signatures[1], v.Signatures[0]
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrNonMonotonicIndex)

	// duplicate a valid signature
	v.Signatures[0], v.Signatures[1] = v.Signatures[1], v.Signatures[0]
	v.Signatures[1] = v.Signatures[0]
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrNonMonotonicIndex)
}

func Test_VerifyVAA_IndexOutOfRange(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 3)

	v := guardians.Sign(testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload")))
	last := *v.Signatures[2]
	last.Index = 3
	v.Signatures = append(v.Signatures, &last)

	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrIndexOutOfRange)
}

func Test_VerifyVAA_SignatureMismatch(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 4)

	v := guardians.Sign(testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload")), 0, 1, 2)

	// a signature from guardian 3 presented as guardian 2
	other := guardians.SignDigest(3, v.SigningDigest().Bytes())
	other.Index = 2
	v.Signatures[2] = other
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrSignatureMismatch)

	// signatures over a different body
	v = guardians.Sign(testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload")))
	v.Payload = []byte("tampered")
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrSignatureMismatch)
}

func Test_VerifyVAA_UnknownGuardianSet(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	v := guardians.Sign(testutil.NewVAA(5, types.ChainIDEthereum, testEmitter, 1, []byte("payload")))
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrUnknownGuardianSet)
}

func Test_VerifyVAA_ExpiredGuardianSet(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 4)

	next := testutil.NewECDSAGuardians(4)
	require.NoError(t, k.RotateGuardianSet(ctx, next.GuardianSet(1)))

	v := guardians.Sign(testutil.NewVAA(0, types.ChainIDEthereum, testEmitter, 1, []byte("payload")))

	// still inside the grace window
	require.NoError(t, k.VerifyVAA(ctx, v))
	ctx = ctx.WithBlockTime(genesisTime.Add(time.Duration(types.DefaultGuardianSetGracePeriod-1) * time.Second))
	require.NoError(t, k.VerifyVAA(ctx, v))

	// expiration is exclusive
	ctx = ctx.WithBlockTime(genesisTime.Add(time.Duration(types.DefaultGuardianSetGracePeriod) * time.Second))
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrGuardianSetExpired)

	// the new set keeps working
	v = next.Sign(testutil.NewVAA(1, types.ChainIDEthereum, testEmitter, 1, []byte("payload")))
	require.NoError(t, k.VerifyVAA(ctx, v))
}

func Test_VerifyVAA_Schnorr(t *testing.T) {
	ctx, k := _createTestInput(t, dbm.NewMemDB())

	guardians := testutil.NewSchnorrGuardians(4)
	require.NoError(t, k.AppendGuardianSet(ctx, guardians.GuardianSet(0)))

	v := guardians.Sign(testutil.NewVAA(0, types.ChainIDSolana, testEmitter, 9, []byte("schnorr payload")), 0, 2, 3)
	require.NoError(t, k.VerifyVAA(ctx, v))

	// non zero recovery id is rejected
	v.Signatures[0].V = 1
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrSignatureMismatch)
	v.Signatures[0].V = 0

	// commitment must be right aligned
	v.Signatures[1].R[0] = 1
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrSignatureMismatch)
	v.Signatures[1].R[0] = 0

	// wrong scalar
	v.Signatures[2].S[31] ^= 0x01
	require.ErrorIs(t, k.VerifyVAA(ctx, v), types.ErrSignatureMismatch)
}

func Test_VerifyMessageSignature(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 3)

	prefix := []byte("acct_sub_obsfig_000000000000000000|")
	data := []byte(`[{"sequence":1}]`)

	sig := guardians.SignMessage(1, prefix, data)
	require.NoError(t, k.VerifyMessageSignature(ctx, prefix, data, 0, sig))

	// wrong index
	sig.Index = 2
	require.ErrorIs(t, k.VerifyMessageSignature(ctx, prefix, data, 0, sig), types.ErrSignatureMismatch)

	sig.Index = 3
	require.ErrorIs(t, k.VerifyMessageSignature(ctx, prefix, data, 0, sig), types.ErrIndexOutOfRange)

	// short prefix
	sig = guardians.SignMessage(1, prefix, data)
	require.ErrorIs(t, k.VerifyMessageSignature(ctx, prefix[:10], data, 0, sig), types.ErrInvalidSignature)

	// unknown set
	require.ErrorIs(t, k.VerifyMessageSignature(ctx, prefix, data, 1, sig), types.ErrUnknownGuardianSet)
}

func Test_CalculateQuorum(t *testing.T) {
	ctx, k, _ := createTestInputWithGuardians(t, 19)

	quorum, err := k.CalculateQuorum(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 13, quorum)

	_, err = k.CalculateQuorum(ctx, 1)
	require.ErrorIs(t, err, types.ErrUnknownGuardianSet)
}
