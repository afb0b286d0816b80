// Package exportstate turns planner state into a compact URL-safe token and
// back, and decides between a locally stored and an imported state.
package exportstate

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/validation"
)

var (
	ErrEmptyToken = errors.New(ErrMsgEmptyToken)
	ErrInvalidURL = errors.New(ErrMsgInvalidURL)
)

// Codec encodes and decodes state tokens
type Codec struct {
	schemas validation.SchemaValidator
}

// NewCodec creates a codec validating imports with the bundled state schema
func NewCodec() *Codec {
	return &Codec{schemas: validation.NewSchemaValidator()}
}

var defaultCodec = NewCodec()

// Encode serialises s as JSON, deflates it and returns unpadded URL-safe base64
func Encode(s domain.State) (string, error) {
	return defaultCodec.Encode(s)
}

// Decode reverses Encode. Any failure wraps domain.ErrCorruptState.
func Decode(token string) (domain.State, error) {
	return defaultCodec.Decode(token)
}

// ExportURL returns the relative URL carrying s in its query string
func ExportURL(s domain.State) (string, error) {
	return defaultCodec.ExportURL(s)
}

// ImportURL extracts a state from rawURL. It returns nil, nil when the URL
// carries no state parameter.
func ImportURL(rawURL string) (*domain.State, error) {
	return defaultCodec.ImportURL(rawURL)
}

func (c *Codec) Encode(s domain.State) (string, error) {
	doc, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}

	return c.compress(doc)
}

func (c *Codec) Decode(token string) (domain.State, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.State{}, fmt.Errorf("%w: %w", domain.ErrCorruptState, ErrEmptyToken)
	}

	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: bad encoding: %w", domain.ErrCorruptState, err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	doc, err := io.ReadAll(io.LimitReader(r, MaxDecodedSize+1))
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: bad compression: %w", domain.ErrCorruptState, err)
	}
	if len(doc) > MaxDecodedSize {
		return domain.State{}, fmt.Errorf("%w: %s", domain.ErrCorruptState, ErrMsgTooLarge)
	}

	return c.DecodeDocument(doc)
}

// compress deflates doc into a token
func (c *Codec) compress(doc []byte) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, compressionLevel)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := w.Write(doc); err != nil {
		return "", fmt.Errorf("failed to compress state: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to compress state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDocument validates and unmarshals a plain JSON state document
func (c *Codec) DecodeDocument(doc []byte) (domain.State, error) {
	if err := c.schemas.ValidateBytes(doc, validation.SchemaState); err != nil {
		return domain.State{}, fmt.Errorf("%w: %s: %w", domain.ErrCorruptState, ErrMsgSchemaFailed, err)
	}

	var s domain.State
	if err := json.Unmarshal(doc, &s); err != nil {
		return domain.State{}, fmt.Errorf("%w: %w", domain.ErrCorruptState, err)
	}
	if err := s.Validate(); err != nil {
		return domain.State{}, err
	}
	return s, nil
}

func (c *Codec) ExportURL(s domain.State) (string, error) {
	token, err := c.Encode(s)
	if err != nil {
		return "", err
	}
	return URLForToken(token), nil
}

// URLForToken returns the relative URL carrying an already encoded token
func URLForToken(token string) string {
	return "/?" + url.Values{QueryParam: {token}}.Encode()
}

func (c *Codec) ImportURL(rawURL string) (*domain.State, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	token := u.Query().Get(QueryParam)
	if token == "" {
		return nil, nil
	}

	s, err := c.Decode(token)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Reconcile picks between a locally stored and a URL-imported state. The
// more recently updated one wins; on a tie the imported state wins. Either
// argument may be nil.
func Reconcile(local, imported *domain.State) *domain.State {
	switch {
	case imported == nil:
		return local
	case local == nil:
		return imported
	case local.UpdatedAt.After(imported.UpdatedAt):
		return local
	default:
		return imported
	}
}
