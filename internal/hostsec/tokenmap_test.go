package hostsec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneearth-admin/oeff-docs/internal/credentials"
)

var sampleRecords = []credentials.SecurityRecord{
	{
		VenueName:             "Zeta Hall",
		ContactEmail:          "zeta@example.org",
		Token:                 "0123456789abcdef",
		HelperURL:             "https://hosts.example.org/0123456789abcdef/",
		FinancialPassword:     "river-cedar-42",
		FinancialPasswordHash: "aaaaaaaaaaaabbbbbbbb",
		PacketPassword:        "maple-stone-17",
	},
	{
		VenueName:             "Alpha Library",
		Token:                 "abc",
		FinancialPassword:     "fern-delta-88",
		FinancialPasswordHash: "short",
		PacketPassword:        "oak-prairie-23",
	},
}

func TestEncodeTokenMap(t *testing.T) {
	data, err := EncodeTokenMap(sampleRecords)
	require.NoError(t, err)

	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &got))

	require.Len(t, got, 2)
	zeta := got["Zeta Hall"]
	assert.Equal(t, "0123456789abcdef", zeta["token"])
	assert.Equal(t, "zeta@example.org", zeta["contact_email"])
	assert.Equal(t, "aaaaaaaaaaaabbbbbbbb", zeta["financial_password_hash"])
	assert.Equal(t, "river-cedar-42", zeta["financial_password_plaintext"])
	assert.Equal(t, "maple-stone-17", zeta["packet_password"])

	assert.Less(t, bytes.Index(data, []byte("Alpha Library")), bytes.Index(data, []byte("Zeta Hall")))
}

func TestWriteDrySummary(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteDrySummary(&out, sampleRecords))

	assert.Equal(t,
		"  Alpha Library: token=abc... hash=short...\n"+
			"  Zeta Hall: token=01234567... hash=aaaaaaaaaaaa...\n",
		out.String())
	assert.NotContains(t, out.String(), "river-cedar-42")
	assert.Equal(t, "Zeta Hall", sampleRecords[0].VenueName, "input order untouched")
}
