package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncryptDecryptAES(t *testing.T) {
	key := "test-encryption-key"

	testCases := []string{
		"Hello World",
		"पेट्रोल ₹101.42",
		"",
		"Special!@#$%^&*()",
		strings.Repeat("A", 1000),
	}

	for _, plaintext := range testCases {
		encrypted, err := EncryptAES(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}

		decrypted, err := DecryptAES(key, encrypted)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}

		if string(decrypted) != plaintext {
			t.Errorf("round trip mismatch\nwant: %s\ngot:  %s", plaintext, string(decrypted))
		}
	}
}

func TestEncryptAES_FreshSaltEachTime(t *testing.T) {
	plaintext := []byte("Secret Data")

	encrypted1, _ := EncryptAES("key", plaintext)
	encrypted2, _ := EncryptAES("key", plaintext)

	if bytes.Equal(encrypted1[:saltSize], encrypted2[:saltSize]) {
		t.Error("expected a different salt per call")
	}
	if bytes.Equal(encrypted1, encrypted2) {
		t.Error("expected different ciphertexts for the same input")
	}
}

func TestEncryptAES_EmptyPassphrase(t *testing.T) {
	if _, err := EncryptAES("", []byte("data")); err == nil {
		t.Error("expected error for empty passphrase")
	}
}

func TestDecryptAES_WrongKey(t *testing.T) {
	encrypted, _ := EncryptAES("correct-key", []byte("Data"))

	if _, err := DecryptAES("wrong-key", encrypted); err == nil {
		t.Error("expected wrong key to fail")
	}
}

func TestDecryptAES_Tampered(t *testing.T) {
	encrypted, _ := EncryptAES("key", []byte("ledger"))
	encrypted[len(encrypted)-1] ^= 0xFF

	if _, err := DecryptAES("key", encrypted); err == nil {
		t.Error("expected tampered data to fail")
	}
}

func TestDecryptAES_InvalidData(t *testing.T) {
	key := "test-key"

	if _, err := DecryptAES(key, []byte{1, 2, 3}); err == nil {
		t.Error("expected error for short data")
	}
	if _, err := DecryptAES(key, make([]byte, saltSize+4)); err == nil {
		t.Error("expected error for missing nonce")
	}
	if _, err := DecryptAES(key, []byte{}); err == nil {
		t.Error("expected error for empty data")
	}
}

func BenchmarkEncryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EncryptAES(key, data)
	}
}

func BenchmarkDecryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	encrypted, _ := EncryptAES(key, data)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecryptAES(key, encrypted)
	}
}
