// Package domain contains the Pact command model shared by the kadena context.
package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Cap is a Pact capability with its arguments.
type Cap struct {
	Name string `json:"name"`
	Args []any  `json:"args"`
}

// Capability describes a capability request presented to the signing wallet.
type Capability struct {
	Role        string `json:"role"`
	Description string `json:"description"`
	Cap         Cap    `json:"cap"`
}

// NewCapability builds a capability request.
func NewCapability(role, description, name string, args ...any) Capability {
	if args == nil {
		args = []any{}
	}
	return Capability{
		Role:        role,
		Description: description,
		Cap: Cap{
			Name: name,
			Args: args,
		},
	}
}

// Meta is the public metadata of a Pact command.
type Meta struct {
	ChainID      string  `json:"chainId"`
	GasLimit     int64   `json:"gasLimit"`
	GasPrice     float64 `json:"gasPrice"`
	Sender       string  `json:"sender"`
	TTL          int64   `json:"ttl"`
	CreationTime int64   `json:"creationTime"`
}

// ExecPayload carries the Pact code and environment data of an exec command.
type ExecPayload struct {
	Data map[string]any `json:"data"`
	Code string         `json:"code"`
}

// Payload wraps the exec payload.
type Payload struct {
	Exec ExecPayload `json:"exec"`
}

// Command is an unsigned Pact command ready for encoding.
type Command struct {
	NetworkID string   `json:"networkId"`
	Payload   Payload  `json:"payload"`
	Signers   []Signer `json:"signers"`
	Meta      Meta     `json:"meta"`
	Nonce     string   `json:"nonce"`
}

// Signer identifies a signing key and the capabilities it grants.
type Signer struct {
	PubKey string `json:"pubKey"`
	Scheme string `json:"scheme,omitempty"`
	Caps   []Cap  `json:"clist,omitempty"`
}

// Envelope is the signed wire form submitted to a Pact endpoint. Cmd is
// the exact JSON encoding whose blake2b digest Hash carries, so it must
// not be re-encoded after signing.
type Envelope struct {
	Hash string      `json:"hash"`
	Sigs []Signature `json:"sigs"`
	Cmd  string      `json:"cmd"`
}

// Signature holds a single detached signature.
type Signature struct {
	Sig string `json:"sig"`
}

// CommandSpec holds everything needed to build an unsigned command.
type CommandSpec struct {
	Code      string
	Data      map[string]any
	Sender    string
	NetworkID string
	ChainID   string
	GasLimit  int64
	GasPrice  float64
	TTL       int64
}

// CreationTime returns the transaction creation time for commands built
// now. It is backdated slightly so small clock skew against the node
// does not reject the command.
func CreationTime(now time.Time) int64 {
	return now.Unix() - 10
}

// NewNonce returns a fresh command nonce.
func NewNonce() string {
	return uuid.NewString()
}

// BuildCommand assembles an unsigned command from spec.
func BuildCommand(spec CommandSpec, now time.Time) Command {
	data := spec.Data
	if data == nil {
		data = map[string]any{}
	}

	return Command{
		NetworkID: spec.NetworkID,
		Payload: Payload{
			Exec: ExecPayload{
				Data: data,
				Code: spec.Code,
			},
		},
		Signers: []Signer{},
		Meta: Meta{
			ChainID:      spec.ChainID,
			GasLimit:     spec.GasLimit,
			GasPrice:     spec.GasPrice,
			Sender:       spec.Sender,
			TTL:          spec.TTL,
			CreationTime: CreationTime(now),
		},
		Nonce: NewNonce(),
	}
}

// HashCommand returns the base64url digest of an encoded command string.
func HashCommand(cmd string) string {
	sum := blake2b.Sum256([]byte(cmd))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Seal encodes cmd and wraps it in an unsigned envelope whose hash
// covers the exact encoding.
func Seal(cmd Command) (Envelope, error) {
	encoded, err := json.Marshal(cmd)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Hash: HashCommand(string(encoded)),
		Sigs: []Signature{},
		Cmd:  string(encoded),
	}, nil
}

// SigningRequest is the payload handed to a wallet's signing API.
type SigningRequest struct {
	PactCode      string         `json:"pactCode"`
	EnvData       map[string]any `json:"envData"`
	Sender        string         `json:"sender"`
	NetworkID     string         `json:"networkId"`
	ChainID       string         `json:"chainId"`
	GasLimit      int64          `json:"gasLimit"`
	GasPrice      float64        `json:"gasPrice"`
	SigningPubKey string         `json:"signingPubKey"`
	TTL           int64          `json:"ttl"`
	Caps          []Capability   `json:"caps"`
}
