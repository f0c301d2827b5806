//go:build !nosonic

package jsoncompat

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal proxies to sonic with standard library compatible settings.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal proxies to sonic with standard library compatible settings.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }

func NewDecoder(r io.Reader) Decoder { return api.NewDecoder(r) }

func NewEncoder(w io.Writer) Encoder { return api.NewEncoder(w) }
