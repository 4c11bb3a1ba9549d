package crypto

import "testing"

func TestHashPayload_KnownVector(t *testing.T) {
	// SHA-256("abc"), FIPS 180-2 test vector.
	d := HashPayload([]byte("abc"))

	wantHex := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if d.Hex() != wantHex {
		t.Fatalf("Hex() = %s, want %s", d.Hex(), wantHex)
	}

	wantBase64 := "ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0="
	if d.Base64() != wantBase64 {
		t.Fatalf("Base64() = %s, want %s", d.Base64(), wantBase64)
	}
}

func TestHashPayload_Deterministic(t *testing.T) {
	d1 := HashPayload([]byte("hello-video"))
	d2 := HashPayload([]byte("hello-video"))

	if d1 != d2 {
		t.Fatalf("expected identical digests for identical input")
	}

	d3 := HashPayload([]byte("hello-videp"))
	if d1 == d3 {
		t.Fatalf("expected different digests for different input")
	}
}
