//go:build !functional

package drr

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelWithSingleWrappedError(t *testing.T) {
	t.Parallel()
	myNetError := &net.OpError{Op: "mock", Err: errors.New("op error")}
	error := Wrap(ErrInvalidMetadata, myNetError)

	expected := fmt.Sprintf("%s: %s", ErrInvalidMetadata, myNetError)
	actual := error.Error()
	if actual != expected {
		t.Errorf("unexpected value '%s' vs '%v'", expected, actual)
	}

	if !errors.Is(error, ErrInvalidMetadata) {
		t.Error("errors.Is unexpected result")
	}

	if !errors.Is(error, myNetError) {
		t.Error("errors.Is unexpected result")
	}

	var opError *net.OpError
	if !errors.As(error, &opError) {
		t.Error("errors.As unexpected result")
	} else if opError != myNetError {
		t.Error("errors.As wrong value")
	}

	unwrapped := errors.Unwrap(error)
	if errors.Is(unwrapped, ErrInvalidMetadata) || !errors.Is(unwrapped, myNetError) {
		t.Errorf("unexpected unwrapped value %v vs %vs", error, unwrapped)
	}
}

func TestSentinelWithMultipleWrappedErrors(t *testing.T) {
	t.Parallel()
	myNetError := &net.OpError{}
	myAddrError := &net.AddrError{}

	error := Wrap(ErrInvalidMetadata, myNetError, myAddrError)

	if !errors.Is(error, ErrInvalidMetadata) {
		t.Error("errors.Is unexpected result")
	}

	if !errors.Is(error, myNetError) {
		t.Error("errors.Is unexpected result")
	}

	if !errors.Is(error, myAddrError) {
		t.Error("errors.Is unexpected result")
	}

	unwrapped := errors.Unwrap(error)
	if errors.Is(unwrapped, ErrInvalidMetadata) || !errors.Is(unwrapped, myNetError) || !errors.Is(unwrapped, myAddrError) {
		t.Errorf("unwrapped value unexpected result")
	}
}

func TestSentinelWithoutWrappedError(t *testing.T) {
	t.Parallel()
	err := Wrap(ErrUnknownBalanceStrategy)

	assert.Equal(t, ErrUnknownBalanceStrategy.Error(), err.Error())
	assert.ErrorIs(t, err, ErrUnknownBalanceStrategy)
	assert.Nil(t, errors.Unwrap(err))
}

func TestSentinelErrorMessageIsBounded(t *testing.T) {
	t.Parallel()
	var errs []error
	for i := 0; i < 100; i++ {
		errs = append(errs, MetadataError{Topic: fmt.Sprintf("topic-%03d", i), Reason: "no partition metadata"})
	}
	err := Wrap(ErrInvalidMetadata, errs...)

	msg := err.Error()
	assert.Len(t, msg, MaxErrorMessageLength)
	assert.True(t, strings.HasPrefix(msg, ErrInvalidMetadata.Error()+": 100 errors occurred: "), msg)
	assert.True(t, strings.HasSuffix(msg, "..."), msg)

	var metadataErr MetadataError
	assert.ErrorAs(t, err, &metadataErr)
	assert.Equal(t, "topic-000", metadataErr.Topic)
}

func TestErrorTexts(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `topic "T": partition 1 listed twice`, MetadataError{Topic: "T", Reason: "partition 1 listed twice"}.Error())
	assert.Equal(t, "drr: invalid configuration (oops)", ConfigurationError("oops").Error())
	assert.Equal(t, "drr: error while encoding packet: too long", PacketEncodingError{"too long"}.Error())
	assert.Equal(t, "drr: error while decoding packet: invalid length", PacketDecodingError{"invalid length"}.Error())
}
