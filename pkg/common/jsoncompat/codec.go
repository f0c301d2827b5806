package jsoncompat

// Decoder is the subset of a streaming decoder both backends provide.
type Decoder interface {
	Decode(v any) error
}

type Encoder interface {
	Encode(v any) error
}
