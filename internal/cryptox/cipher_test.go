package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var algorithms = []Algorithm{AlgorithmAES256GCM, AlgorithmXChaCha20Poly1305}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(t)

	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			plaintext := []byte("conversation history")
			blob, err := Seal(alg, key, plaintext, []byte("chats/1.json"))
			require.NoError(t, err)
			assert.NotContains(t, string(blob), "conversation")

			got, err := AlgorithmOf(blob)
			require.NoError(t, err)
			assert.Equal(t, alg, got)

			out, err := Open(key, blob, []byte("chats/1.json"))
			require.NoError(t, err)
			assert.Equal(t, plaintext, out)
		})
	}
}

func TestSeal_FreshNonce(t *testing.T) {
	key := testKey(t)
	a, err := Seal(DefaultAlgorithm, key, []byte("x"), nil)
	require.NoError(t, err)
	b, err := Seal(DefaultAlgorithm, key, []byte("x"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpen_Failures(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	blob, err := Seal(AlgorithmAES256GCM, key, []byte("payload"), []byte("a"))
	require.NoError(t, err)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xff

	unknown := append([]byte(nil), blob...)
	unknown[0] = 0x7f

	tests := []struct {
		name    string
		key     *Key
		blob    []byte
		aad     []byte
		wantErr error
	}{
		{name: "wrong key", key: other, blob: blob, aad: []byte("a"), wantErr: ErrDecrypt},
		{name: "wrong aad", key: key, blob: blob, aad: []byte("b"), wantErr: ErrDecrypt},
		{name: "tampered", key: key, blob: tampered, aad: []byte("a"), wantErr: ErrDecrypt},
		{name: "empty", key: key, blob: nil, aad: nil, wantErr: ErrCiphertextTooShort},
		{name: "truncated", key: key, blob: blob[:5], aad: []byte("a"), wantErr: ErrCiphertextTooShort},
		{name: "unknown algorithm", key: key, blob: unknown, aad: []byte("a"), wantErr: ErrUnknownAlgorithm},
		{name: "no key", key: nil, blob: blob, aad: []byte("a"), wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.key, tt.blob, tt.aad)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSeal_WipedKey(t *testing.T) {
	key := testKey(t)
	key.Wipe()
	_, err := Seal(DefaultAlgorithm, key, []byte("x"), nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range algorithms {
		got, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, got)
	}

	got, err := ParseAlgorithm(" AES ")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmAES256GCM, got)

	_, err = ParseAlgorithm("rot13")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestMakeVerifier(t *testing.T) {
	key := testKey(t)

	v1 := MakeVerifier(key)
	v2 := MakeVerifier(key.Clone())
	assert.Len(t, v1, 32)
	assert.Equal(t, v1, v2)
	assert.NotEqual(t, key.b, v1, "verifier must not be the key itself")
	assert.NotEqual(t, v1, MakeVerifier(testKey(t)))
	assert.Nil(t, MakeVerifier(nil))
}
