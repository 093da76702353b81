package signature

import "testing"

const (
	testSecret  = "NWKXBIXQPoFAjOqEr4l2Wavg"
	testOrder   = "order_N5Xk2ab9PQ"
	testPayment = "pay_N5Xk9zzt7R"
)

func TestVerifyAcceptsGenuineSignature(t *testing.T) {
	sig := Expected(testOrder, testPayment, testSecret)

	if !Verify(testOrder, testPayment, sig, testSecret) {
		t.Fatal("genuine signature rejected")
	}
}

func TestVerifyRejectsMutations(t *testing.T) {
	sig := Expected(testOrder, testPayment, testSecret)

	if Verify(testOrder, testPayment, sig[:len(sig)-1]+"0", testSecret) && sig[len(sig)-1] != '0' {
		t.Error("single-character signature mutation accepted")
	}
	if Verify(testOrder+"x", testPayment, sig, testSecret) {
		t.Error("mutated order id accepted")
	}
	if Verify(testOrder, testPayment+"x", sig, testSecret) {
		t.Error("mutated payment id accepted")
	}
	if Verify(testOrder, testPayment, sig, testSecret+"x") {
		t.Error("wrong secret accepted")
	}
}

func TestVerifyRejectsMalformedSignatures(t *testing.T) {
	for _, sig := range []string{"", "deadbeef", "not-hex-at-all", "    "} {
		if Verify(testOrder, testPayment, sig, testSecret) {
			t.Errorf("malformed signature %q accepted", sig)
		}
	}
}

func TestExpectedIsDeterministic(t *testing.T) {
	a := Expected(testOrder, testPayment, testSecret)
	b := Expected(testOrder, testPayment, testSecret)
	if a != b {
		t.Fatalf("digest not deterministic: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("unexpected digest length: %d", len(a))
	}
}
