package drr

// packetDecoder is the interface providing helpers for reading with Kafka's encoding rules.
// Types implementing Decoder only need to worry about calling methods like GetString,
// not about how a string is represented in Kafka.
type packetDecoder interface {
	// Primitives
	getInt16() (int16, error)
	getInt32() (int32, error)
	getArrayLength() (int, error)

	// Collections
	getBytes() ([]byte, error)
	getString() (string, error)
	getNullableString() (*string, error)
	getStringArray() ([]string, error)
	getInt32Array() ([]int32, error)

	// Subsets
	remaining() int
}
