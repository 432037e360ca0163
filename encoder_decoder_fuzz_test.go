//go:build go1.18 && !functional

package drr

import (
	"bytes"
	"testing"
)

func FuzzDecodeEncodeMemberMetadata(f *testing.F) {
	for _, seed := range [][]byte{
		groupMemberMetadataV0,
		groupMemberMetadataV1,
		groupMemberMetadataV3NilOwned,
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in []byte) {
		meta := &ConsumerGroupMemberMetadata{}
		if err := decode(in, meta); err != nil {
			return
		}
		out, err := encode(meta)
		if err != nil {
			t.Logf("%v: encode: %v", in, err)
			return
		}
		if !bytes.Equal(in, out) {
			t.Logf("%v: not equal after round trip: %v", in, out)
		}
	})
}

func FuzzDecodeEncodeMemberAssignment(f *testing.F) {
	f.Add(groupMemberAssignmentV0)
	f.Fuzz(func(t *testing.T, in []byte) {
		amt, err := DecodeMemberAssignment(in)
		if err != nil {
			return
		}
		if _, err := amt.Encode(); err != nil {
			t.Logf("%v: encode: %v", in, err)
		}
	})
}
