package hostsec

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oneearth-admin/oeff-docs/internal/credentials"
)

// TokenMapEntry is one venue in token-map.json.
type TokenMapEntry struct {
	Token                      string `json:"token"`
	ContactEmail               string `json:"contact_email"`
	HelperURL                  string `json:"helper_url"`
	UpdateFormURL              string `json:"update_form_url"`
	FinancialPasswordHash      string `json:"financial_password_hash"`
	FinancialPasswordPlaintext string `json:"financial_password_plaintext"`
	PacketPassword             string `json:"packet_password"`
}

// TokenMap keys records by venue name.
func TokenMap(records []credentials.SecurityRecord) map[string]TokenMapEntry {
	m := make(map[string]TokenMapEntry, len(records))
	for _, rec := range records {
		m[rec.VenueName] = TokenMapEntry{
			Token:                      rec.Token,
			ContactEmail:               rec.ContactEmail,
			HelperURL:                  rec.HelperURL,
			UpdateFormURL:              rec.UpdateFormURL,
			FinancialPasswordHash:      rec.FinancialPasswordHash,
			FinancialPasswordPlaintext: rec.FinancialPassword,
			PacketPassword:             rec.PacketPassword,
		}
	}
	return m
}

// EncodeTokenMap renders the token map as indented JSON with sorted keys.
func EncodeTokenMap(records []credentials.SecurityRecord) ([]byte, error) {
	data, err := json.MarshalIndent(TokenMap(records), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteDrySummary prints one line per venue, sorted by name, showing only
// token and hash prefixes.
func WriteDrySummary(w io.Writer, records []credentials.SecurityRecord) error {
	sorted := append([]credentials.SecurityRecord(nil), records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].VenueName < sorted[j].VenueName })

	var b strings.Builder
	for _, rec := range sorted {
		fmt.Fprintf(&b, "  %s: token=%s... hash=%s...\n",
			rec.VenueName, prefix(rec.Token, 8), prefix(rec.FinancialPasswordHash, 12))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
