package x86

import (
	"errors"
	"testing"

	"github.com/colorfulnotion/x86emit/codebuf"
	"github.com/stretchr/testify/require"
)

// enc runs f against a fresh buffer and returns what it emitted.
func enc(f func(s Sink)) []byte {
	b := codebuf.New(0)
	f(b)
	return b.Bytes()
}

// requirePanics asserts that f violates an encoding contract.
func requirePanics(t *testing.T, f func()) *EncodingError {
	t.Helper()
	var got *EncodingError
	func() {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.As(err, &got) {
				t.Fatalf("expected *EncodingError panic, got %v", r)
			}
		}()
		f()
	}()
	require.NotNil(t, got)
	return got
}

type encCase struct {
	name string
	emit func(s Sink)
	want []byte
}

func runEncCases(t *testing.T, cases []encCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := enc(tc.emit)
			require.Equal(t, tc.want, got, "% X", got)
		})
	}
}
