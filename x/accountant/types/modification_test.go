package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

func TestModifyBalance_Parse(t *testing.T) {
	m := types.Modification{
		Sequence:     7,
		ChainID:      vaatypes.ChainIDInitia,
		TokenChain:   vaatypes.ChainIDEthereum,
		TokenAddress: vaatypes.Address{31: 0xee},
		Kind:         types.ModificationKindSub,
		Amount:       math.NewUint(12345),
		Reason:       "slashed bridge",
	}

	bz := m.Serialize()
	require.Len(t, bz, types.ModifyBalancePayloadLength)
	require.Equal(t, byte(' '), bz[len(bz)-1])

	parsed, err := types.ParseModifyBalance(bz)
	require.NoError(t, err)
	require.Equal(t, m, parsed)
	require.Equal(t, types.NewAccountKey(vaatypes.ChainIDInitia, vaatypes.ChainIDEthereum, vaatypes.Address{31: 0xee}), parsed.AccountKey())
}

func TestModifyBalance_Invalid(t *testing.T) {
	m := types.Modification{Kind: types.ModificationKindAdd, Amount: math.OneUint()}
	bz := m.Serialize()

	_, err := types.ParseModifyBalance(bz[:len(bz)-1])
	require.ErrorIs(t, err, types.ErrInvalidPayload)

	bz[44] = 3
	_, err = types.ParseModifyBalance(bz)
	require.ErrorIs(t, err, types.ErrInvalidPayload)
}

func TestModificationKind_JSON(t *testing.T) {
	bz, err := json.Marshal(types.ModificationKindAdd)
	require.NoError(t, err)
	require.Equal(t, `"add"`, string(bz))

	var kind types.ModificationKind
	require.NoError(t, json.Unmarshal([]byte(`"sub"`), &kind))
	require.Equal(t, types.ModificationKindSub, kind)

	require.Error(t, json.Unmarshal([]byte(`"mul"`), &kind))
}

func TestRegisterChain_Parse(t *testing.T) {
	r := types.RegisterChain{Chain: vaatypes.ChainIDSui, EmitterAddress: vaatypes.Address{0: 0x01, 31: 0x02}}

	bz := r.Serialize()
	require.Len(t, bz, types.RegisterChainPayloadLength)

	parsed, err := types.ParseRegisterChain(bz)
	require.NoError(t, err)
	require.Equal(t, r, parsed)

	_, err = types.ParseRegisterChain(bz[:10])
	require.ErrorIs(t, err, types.ErrInvalidPayload)
}
