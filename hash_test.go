package volbase

import (
	"bytes"
	"strings"
	"testing"
)

func TestHashReader(t *testing.T) {
	table := []struct {
		input  string
		expect string
	}{
		{"",
			"e3b0c44298fc1c149afbf4c8996fb924" +
				"27ae41e4649b934ca495991b7852b855"},
		{"Hello, world!",
			"315f5bdb76d078c43b8ac0064e4a0164" +
				"612b1fce77c869345bfc94c75894edd3"},
	}
	for _, entry := range table {
		hash, err := HashReader("sha256", bytes.NewReader(mkbuf(entry.input)))
		if err != nil {
			t.Fatal(err)
		}
		got := hash.String()
		tassert(t, got == entry.expect, "input %q: expected %s got %s", entry.input, entry.expect, got)
	}
}

func TestHashBytes(t *testing.T) {
	val := mkbuf("somevalue")
	hash, err := HashBytes("sha256", val)
	if err != nil {
		t.Fatal(err)
	}
	expect := "70a524688ced8e45d26776fd4dc56410725b566cd840c044546ab30c4b499342"
	tassert(t, hash.String() == expect, "expected %q got %q", expect, hash.String())

	_, err = HashBytes("foobar", val)
	if err == nil {
		t.Fatal("expected error, received none")
	}
}

func TestHashBlake3(t *testing.T) {
	val := mkbuf("somevalue")
	hash1, err := HashBytes("blake3", val)
	if err != nil {
		t.Fatal(err)
	}
	hash2, err := HashBytes("blake3", val)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, hash1 == hash2, "blake3 is not deterministic: %s vs %s", hash1, hash2)

	sha, err := HashBytes("sha256", val)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, hash1 != sha, "blake3 and sha256 agree, which would be a miracle")
}

func TestParseHash(t *testing.T) {
	examples := []struct {
		parseable bool
		text      string
	}{
		// parseable
		{true, strings.Repeat("0", 64)},
		{true, strings.Repeat("f", 64)},
		{true, "e3b0c44298fc1c149afbf4c8996fb924" +
			"27ae41e4649b934ca495991b7852b855"},

		// unparseable
		{false, ""},
		{false, strings.Repeat("0", 63)},
		{false, strings.Repeat("0", 65)},
		{false, "E3B0C44298FC1C149AFBF4C8996FB924" +
			"27AE41E4649B934CA495991B7852B855"},
		{false, strings.Repeat("X", 64)},
		{false, strings.Repeat("0", 62) + "g0"},
	}

	for _, entry := range examples {
		hash, err := ParseHash(entry.text)
		if entry.parseable {
			tassert(t, err == nil, "%q: %v", entry.text, err)
			// round trip
			tassert(t, hash.String() == entry.text, "expected %q got %q", entry.text, hash.String())
		} else {
			tassert(t, err != nil, "%q: expected parse error, got none", entry.text)
			_, ok := err.(*InvalidHashError)
			tassert(t, ok, "%q: expected *InvalidHashError, got %T", entry.text, err)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	var hash Hash
	for i := range hash {
		hash[i] = byte(i * 7)
	}
	parsed, err := ParseHash(hash.String())
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, parsed == hash, "round trip mangled %s into %s", hash, parsed)
}
