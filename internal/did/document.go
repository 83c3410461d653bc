package did

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// KeyType names a verification key suite.
type KeyType string

const (
	Ed25519VerificationKey2018        KeyType = "Ed25519VerificationKey2018"
	RsaVerificationKey2018            KeyType = "RsaVerificationKey2018"
	EcdsaSecp256k1VerificationKey2019 KeyType = "EcdsaSecp256k1VerificationKey2019"
)

// KeyEncoding is the JSON member that carries the key material.
type KeyEncoding string

const (
	EncodingPem       KeyEncoding = "publicKeyPem"
	EncodingJwk       KeyEncoding = "publicKeyJwk"
	EncodingHex       KeyEncoding = "publicKeyHex"
	EncodingBase64    KeyEncoding = "publicKeyBase64"
	EncodingBase58    KeyEncoding = "publicKeyBase58"
	EncodingMultibase KeyEncoding = "publicKeyMultibase"
	EncodingEthAddr   KeyEncoding = "ethereumAddress"
)

var encodings = []KeyEncoding{
	EncodingPem, EncodingJwk, EncodingHex, EncodingBase64,
	EncodingBase58, EncodingMultibase, EncodingEthAddr,
}

// ErrInvalidDocument wraps every Parse failure.
var ErrInvalidDocument = errors.New("did: invalid document")

// PublicKey is one entry of a document's publicKey list.
type PublicKey struct {
	ID         string
	Type       KeyType
	Controller string
	Encoding   KeyEncoding
	Value      string
}

// Document is a DID document.
type Document struct {
	// Context holds the "@context" URIs. A single URI is encoded as a string.
	Context   []string
	ID        string
	PublicKey []PublicKey
}

// Parse decodes a JSON DID document.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &d, nil
}

// Encode returns the compact JSON form of d.
func (d *Document) Encode() ([]byte, error) { return json.Marshal(d) }

type wireDocument struct {
	Context   json.RawMessage `json:"@context"`
	ID        string          `json:"id"`
	PublicKey []PublicKey     `json:"publicKey"`
}

// MarshalJSON encodes the document with members in @context, id, publicKey order.
func (d Document) MarshalJSON() ([]byte, error) {
	var ctx any = d.Context
	if len(d.Context) == 1 {
		ctx = d.Context[0]
	}
	rawCtx, err := json.Marshal(ctx)
	if err != nil {
		return nil, err
	}
	keys := d.PublicKey
	if keys == nil {
		keys = []PublicKey{}
	}
	return json.Marshal(wireDocument{Context: rawCtx, ID: d.ID, PublicKey: keys})
}

// UnmarshalJSON mirrors MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Context) == 0 {
		return fmt.Errorf("%w: missing @context", ErrInvalidDocument)
	}
	var ctx []string
	if bytes.HasPrefix(bytes.TrimSpace(w.Context), []byte("[")) {
		if err := json.Unmarshal(w.Context, &ctx); err != nil {
			return fmt.Errorf("%w: @context: %v", ErrInvalidDocument, err)
		}
	} else {
		var one string
		if err := json.Unmarshal(w.Context, &one); err != nil {
			return fmt.Errorf("%w: @context: %v", ErrInvalidDocument, err)
		}
		ctx = []string{one}
	}
	if w.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDocument)
	}
	*d = Document{Context: ctx, ID: w.ID, PublicKey: w.PublicKey}
	return nil
}

type wireKey struct {
	ID         string  `json:"id"`
	Type       KeyType `json:"type"`
	Controller string  `json:"controller"`
}

// MarshalJSON writes id, type, controller and then the encoded key member.
func (k PublicKey) MarshalJSON() ([]byte, error) {
	head, err := json.Marshal(wireKey{ID: k.ID, Type: k.Type, Controller: k.Controller})
	if err != nil {
		return nil, err
	}
	val, err := json.Marshal(k.Value)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(head[:len(head)-1])
	fmt.Fprintf(&buf, ",%q:", string(k.Encoding))
	buf.Write(val)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON mirrors MarshalJSON. Exactly one known encoding member is required.
func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var head wireKey
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Type {
	case Ed25519VerificationKey2018, RsaVerificationKey2018, EcdsaSecp256k1VerificationKey2019:
	default:
		return fmt.Errorf("%w: unknown key type %q", ErrInvalidDocument, head.Type)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	var found []KeyEncoding
	var value string
	for _, enc := range encodings {
		raw, ok := members[string(enc)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, enc, err)
		}
		found = append(found, enc)
	}
	if len(found) != 1 {
		return fmt.Errorf("%w: key %s has %d key encodings, want 1", ErrInvalidDocument, head.ID, len(found))
	}

	*k = PublicKey{
		ID:         head.ID,
		Type:       head.Type,
		Controller: head.Controller,
		Encoding:   found[0],
		Value:      value,
	}
	return nil
}
