// Package hostsec runs the host security tool: it reads the host list,
// reconciles it against the encrypted security store and publishes the
// token map consumed by the helper pages.
package hostsec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/credentials"
)

// Accepted header spellings, in lookup order.
var (
	nameHeaders  = []string{"Venue Name", "Name", "venue_name"}
	emailHeaders = []string{"Contact Email", "Contact_Email", "contact_email", "Email"}
)

// ReadHosts parses a hosts CSV export. The name column is required; the
// email column is optional. Blank names are kept and skipped later by the
// reconciler.
func ReadHosts(r io.Reader) ([]credentials.Host, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty hosts file", common.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read hosts header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	nameCols := columns(header, nameHeaders)
	if len(nameCols) == 0 {
		return nil, fmt.Errorf("%w: one of %s", common.ErrMissingColumn, strings.Join(nameHeaders, ", "))
	}
	emailCols := columns(header, emailHeaders)

	var hosts []credentials.Host
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read hosts: %w", err)
		}
		hosts = append(hosts, credentials.Host{
			Name:         firstValue(rec, nameCols),
			ContactEmail: firstValue(rec, emailCols),
		})
	}
	return hosts, nil
}

// ReadHostsFile opens path and parses it with ReadHosts.
func ReadHostsFile(path string) ([]credentials.Host, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHosts(f)
}

// columns returns the indexes of the aliases present in header, in alias
// order.
func columns(header, aliases []string) []int {
	var idx []int
	for _, alias := range aliases {
		for i, h := range header {
			if strings.TrimSpace(h) == alias {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// firstValue returns the first non-blank cell among cols.
func firstValue(rec []string, cols []int) string {
	for _, i := range cols {
		if i < len(rec) {
			if v := strings.TrimSpace(rec[i]); v != "" {
				return v
			}
		}
	}
	return ""
}
