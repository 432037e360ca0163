package drr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MaxErrorMessageLength bounds the text returned by errors produced while planning.
const MaxErrorMessageLength = 512

// ErrInvalidMetadata is returned when topic metadata for an eligible topic is missing or malformed.
// No plan is produced in that case.
var ErrInvalidMetadata = errors.New("drr: invalid topic metadata")

// ErrUnknownBalanceStrategy is returned when no strategy is registered under the requested name.
var ErrUnknownBalanceStrategy = errors.New("drr: unknown balance strategy")

// ErrBalanceStrategyRegistered is returned when a strategy name is registered twice.
var ErrBalanceStrategyRegistered = errors.New("drr: balance strategy already registered")

// ErrInsufficientData is returned when decoding and the packet is truncated.
var ErrInsufficientData = errors.New("drr: insufficient data to decode packet, more bytes expected")

// PacketEncodingError is returned from a failure while encoding a group protocol payload. This can happen,
// for example, if you try to encode a string over 2^15 characters in length, since Kafka's encoding rules do not permit that.
type PacketEncodingError struct {
	Info string
}

func (err PacketEncodingError) Error() string {
	return fmt.Sprintf("drr: error while encoding packet: %s", err.Info)
}

// PacketDecodingError is returned when there was an error (other than truncated data) decoding a group protocol payload.
// This can be a bad length field, or any other invalid value.
type PacketDecodingError struct {
	Info string
}

func (err PacketDecodingError) Error() string {
	return fmt.Sprintf("drr: error while decoding packet: %s", err.Info)
}

// ConfigurationError is the type of error returned from a constructor (e.g. NewBalanceStrategy), or from
// Config.Validate(), when the specified configuration is invalid.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return "drr: invalid configuration (" + string(err) + ")"
}

// MetadataError describes one problem with the metadata of one topic.
type MetadataError struct {
	Topic  string
	Reason string
}

func (err MetadataError) Error() string {
	return fmt.Sprintf("topic %q: %s", err.Topic, err.Reason)
}

type sentinelError struct {
	sentinel error
	wrapped  error
}

func (err sentinelError) Error() string {
	msg := err.sentinel.Error()
	if err.wrapped != nil {
		msg = fmt.Sprintf("%s: %v", err.sentinel, err.wrapped)
	}
	return truncateErrorMessage(msg)
}

func (err sentinelError) Is(target error) bool {
	return errors.Is(err.sentinel, target) || errors.Is(err.wrapped, target)
}

func (err sentinelError) Unwrap() error {
	return err.wrapped
}

// Wrap returns an error that matches sentinel as well as every wrapped error with errors.Is and errors.As.
func Wrap(sentinel error, wrapped ...error) sentinelError {
	return sentinelError{sentinel: sentinel, wrapped: multiError(wrapped...)}
}

func truncateErrorMessage(msg string) string {
	if len(msg) <= MaxErrorMessageLength {
		return msg
	}
	const ellipsis = "..."
	return msg[:MaxErrorMessageLength-len(ellipsis)] + ellipsis
}

// multiError folds errs into a single error. A lone error is returned as is so that
// errors.Unwrap on a wrapping sentinel yields it directly.
func multiError(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	if len(merr.Errors) == 1 {
		return merr.Errors[0]
	}
	merr.ErrorFormat = listErrorFormat
	return merr
}

func listErrorFormat(es []error) string {
	points := make([]string, len(es))
	for i, err := range es {
		points[i] = err.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(es), strings.Join(points, "; "))
}
