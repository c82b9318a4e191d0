package normalize_test

import (
	"testing"

	"github.com/startuplens/entres/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

var names = []struct {
	msg, name, res string
}{
	{"suffix with period", "Acme Ltd.", "acme"},
	{"long suffix", "Acme Limited", "acme"},
	{"upper case", "ACME LIMITED", "acme"},
	{"inc", "Foo Bar, Inc.", "foo bar"},
	{"llc dotted", "Acme L.L.C.", "acme"},
	{"plc dotted", "Tesco P.L.C.", "tesco"},
	{"gmbh and umlaut", "Müller GmbH", "muller"},
	{"accents", "Société Générale SA", "societe generale"},
	{"sharp s", "Straße AG", "strasse"},
	{"stroke letters", "Łódź Ørsted", "lodz orsted"},
	{"stacked suffixes", "Acme Co Ltd", "acme"},
	{"whitespace", "  Foo   Bar \t Corp  ", "foo bar"},
	{"punctuation", "AT&T Inc.", "att"},
	{"digits kept", "3M Company", "3m"},
	{"suffix inside word", "Nasa", "nasa"},
	{"suffix as part of word", "Costco", "costco"},
	{"suffix not at the end", "Ltd Holdings", "ltd holdings"},
	{"suffix only", "Company", "company"},
	{"suffix only with period", "Inc.", "inc"},
	{"empty", "", ""},
	{"spaces only", "   ", ""},
	{"punctuation only", "!!!", ""},
	{"invalid utf8", "Acme\xff Ltd", "acme"},
}

func TestNormalize(t *testing.T) {
	for _, v := range names {
		assert.Equal(t, v.res, normalize.Normalize(v.name), v.msg)
	}
}

func TestNormalizeSameKey(t *testing.T) {
	assert.Equal(t,
		normalize.Normalize("Acme Ltd."),
		normalize.Normalize("Acme Limited"),
	)
	assert.Equal(t,
		normalize.Normalize("Acme Ltd"),
		normalize.Normalize("ACME LIMITED"),
	)
}

func TestNormalizeIdempotent(t *testing.T) {
	extra := []string{
		"Acme Inc. !",
		"Acme L.L.C",
		"Big Co., Ltd.",
		"Co Co",
		"Private Pvt Pty",
		"  société   anonyme  S.A. ",
		"ﬁnance ＡＢＣ",
	}
	for _, v := range names {
		extra = append(extra, v.name)
	}
	for _, s := range extra {
		once := normalize.Normalize(s)
		assert.Equal(t, once, normalize.Normalize(once), s)
	}
}

func TestToASCII(t *testing.T) {
	tests := []struct {
		msg, in, res string
	}{
		{"ascii unchanged", "Acme", "Acme"},
		{"combining marks", "Crème Brûlée", "Creme Brulee"},
		{"ligature", "ﬁnance", "finance"},
		{"ae", "Æther", "AEther"},
		{"fullwidth", "ＡＢＣ", "ABC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.res, normalize.ToASCII(tt.in), tt.msg)
	}
}
