package types

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// GovernanceChain and GovernanceEmitter are the fixed identity governance
// envelopes must be emitted from.
var (
	GovernanceChain   = ChainIDSolana
	GovernanceEmitter = Address{31: 0x04}
)

// GovernanceModule is a module name left padded to 32 bytes.
type GovernanceModule [32]byte

// NewGovernanceModule left pads name with zeros.
func NewGovernanceModule(name string) GovernanceModule {
	var m GovernanceModule
	copy(m[32-len(name):], name)
	return m
}

// String returns the module name without padding.
func (m GovernanceModule) String() string {
	return strings.TrimLeft(string(m[:]), "\x00")
}

// GovernanceAction identifies an action inside a governance module.
type GovernanceAction uint8

var (
	CoreModule             = NewGovernanceModule("Core")
	TokenBridgeModule      = NewGovernanceModule("TokenBridge")
	GlobalAccountantModule = NewGovernanceModule("GlobalAccountant")
)

const (
	ActionGuardianSetUpgrade GovernanceAction = 2

	ActionRegisterChain GovernanceAction = 1

	ActionModifyBalance GovernanceAction = 1
)

// GovernancePacketHeaderLength is module(32) + action(1) + chain(2).
const GovernancePacketHeaderLength = 35

// GovernancePacket is the payload of a governance envelope.
type GovernancePacket struct {
	Module  GovernanceModule
	Action  GovernanceAction
	Chain   ChainID
	Payload []byte
}

// ParseGovernancePacket decodes a governance payload.
func ParseGovernancePacket(bz []byte) (*GovernancePacket, error) {
	if len(bz) < GovernancePacketHeaderLength {
		return nil, errorsmod.Wrapf(ErrInvalidGovernancePacket, "length %d is shorter than %d", len(bz), GovernancePacketHeaderLength)
	}

	p := &GovernancePacket{
		Action:  GovernanceAction(bz[32]),
		Chain:   ChainID(binary.BigEndian.Uint16(bz[33:35])),
		Payload: append([]byte{}, bz[GovernancePacketHeaderLength:]...),
	}
	copy(p.Module[:], bz[:32])

	return p, nil
}

// Serialize encodes the packet.
func (p GovernancePacket) Serialize() []byte {
	bz := make([]byte, GovernancePacketHeaderLength, GovernancePacketHeaderLength+len(p.Payload))
	copy(bz[:32], p.Module[:])
	bz[32] = uint8(p.Action)
	binary.BigEndian.PutUint16(bz[33:35], uint16(p.Chain))
	return append(bz, p.Payload...)
}

// IsGovernanceEmitter reports whether v was emitted by the governance identity.
func IsGovernanceEmitter(v *VAA) bool {
	return v.EmitterChain == GovernanceChain && v.EmitterAddress == GovernanceEmitter
}

// NewGovernanceVAA builds an unsigned governance envelope carrying packet.
func NewGovernanceVAA(guardianSetIndex uint32, nonce uint32, sequence uint64, timestamp uint32, packet GovernancePacket) *VAA {
	return &VAA{
		Version:          SupportedVAAVersion,
		GuardianSetIndex: guardianSetIndex,
		Timestamp:        timestamp,
		Nonce:            nonce,
		EmitterChain:     GovernanceChain,
		EmitterAddress:   GovernanceEmitter,
		Sequence:         sequence,
		ConsistencyLevel: 32,
		Payload:          packet.Serialize(),
	}
}

// GovernanceHandler executes one governance action. The envelope has been
// verified and consumed before the handler runs.
type GovernanceHandler func(ctx context.Context, v *VAA, packet *GovernancePacket) error

type governanceRoute struct {
	module GovernanceModule
	action GovernanceAction
}

// GovernanceRouter maps (module, action) pairs to handlers. Each consuming
// domain owns its router and registers only the actions it understands.
type GovernanceRouter struct {
	routes  map[governanceRoute]GovernanceHandler
	modules map[GovernanceModule]struct{}
}

// NewGovernanceRouter returns an empty router.
func NewGovernanceRouter() *GovernanceRouter {
	return &GovernanceRouter{
		routes:  make(map[governanceRoute]GovernanceHandler),
		modules: make(map[GovernanceModule]struct{}),
	}
}

// AddRoute registers handler for (module, action). It panics on a
// duplicate registration.
func (r *GovernanceRouter) AddRoute(module GovernanceModule, action GovernanceAction, handler GovernanceHandler) *GovernanceRouter {
	route := governanceRoute{module, action}
	if _, ok := r.routes[route]; ok {
		panic(fmt.Sprintf("governance route %s/%d already registered", module, action))
	}

	r.routes[route] = handler
	r.modules[module] = struct{}{}
	return r
}

// HasRoute reports whether (module, action) has a handler.
func (r *GovernanceRouter) HasRoute(module GovernanceModule, action GovernanceAction) bool {
	_, ok := r.routes[governanceRoute{module, action}]
	return ok
}

// Route decodes the governance packet of v and resolves its handler. The
// packet must target localChain or every chain.
func (r *GovernanceRouter) Route(v *VAA, localChain ChainID) (GovernanceHandler, *GovernancePacket, error) {
	if !IsGovernanceEmitter(v) {
		return nil, nil, errorsmod.Wrapf(ErrInvalidGovernanceEmitter, "%d/%s", v.EmitterChain, v.EmitterAddress)
	}

	packet, err := ParseGovernancePacket(v.Payload)
	if err != nil {
		return nil, nil, err
	}

	if packet.Chain != ChainIDUnset && packet.Chain != localChain {
		return nil, nil, errorsmod.Wrapf(ErrWrongTargetChain, "target %d, local %d", packet.Chain, localChain)
	}

	if _, ok := r.modules[packet.Module]; !ok {
		return nil, nil, errorsmod.Wrapf(ErrUnknownGovernanceModule, "%q", packet.Module.String())
	}

	handler, ok := r.routes[governanceRoute{packet.Module, packet.Action}]
	if !ok {
		return nil, nil, errorsmod.Wrapf(ErrUnknownGovernanceAction, "%s action %d", packet.Module.String(), packet.Action)
	}

	return handler, packet, nil
}

// Dispatch routes v and runs the resolved handler.
func (r *GovernanceRouter) Dispatch(ctx context.Context, v *VAA, localChain ChainID) error {
	handler, packet, err := r.Route(v, localChain)
	if err != nil {
		return err
	}

	return handler(ctx, v, packet)
}

// GuardianSetUpgrade is the Core action installing the next guardian set.
type GuardianSetUpgrade struct {
	NewIndex uint32
	Keys     [][]byte
}

// ParseGuardianSetUpgrade decodes new_index:u32, n:u8, keys[n] with each
// key keyLength bytes wide.
func ParseGuardianSetUpgrade(bz []byte, keyLength int) (*GuardianSetUpgrade, error) {
	if len(bz) < 5 {
		return nil, errorsmod.Wrapf(ErrInvalidGovernancePacket, "guardian set upgrade too short: %d", len(bz))
	}

	u := &GuardianSetUpgrade{NewIndex: binary.BigEndian.Uint32(bz[0:4])}
	n := int(bz[4])
	if len(bz) != 5+n*keyLength {
		return nil, errorsmod.Wrapf(ErrInvalidGovernancePacket, "guardian set upgrade with %d keys has length %d", n, len(bz))
	}

	u.Keys = make([][]byte, n)
	for i := 0; i < n; i++ {
		offset := 5 + i*keyLength
		u.Keys[i] = append([]byte{}, bz[offset:offset+keyLength]...)
	}

	return u, nil
}

// Serialize encodes the upgrade payload.
func (u GuardianSetUpgrade) Serialize() []byte {
	bz := make([]byte, 5)
	binary.BigEndian.PutUint32(bz[0:4], u.NewIndex)
	bz[4] = uint8(len(u.Keys))
	for _, key := range u.Keys {
		bz = append(bz, key...)
	}

	return bz
}
