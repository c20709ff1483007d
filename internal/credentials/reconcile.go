package credentials

import (
	"fmt"
	"strings"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

// Host is one venue from the host list.
type Host struct {
	Name         string
	ContactEmail string
}

// SecurityRecord is one row of the security store. Token, FinancialPassword
// and PacketPassword are primary; the rest is derived from them and from the
// host row on every run.
type SecurityRecord struct {
	VenueName             string
	ContactEmail          string
	Token                 string
	HelperURL             string
	FinancialPassword     string
	FinancialPasswordHash string
	PacketPassword        string
	UpdateFormURL         string
	GeneratedAt           time.Time
}

// SecretSource generates fresh credentials.
type SecretSource interface {
	Token() (string, error)
	Password() (string, error)
}

type Options struct {
	HelperBaseURL string
	FormBaseURL   string
	VenueParam    string
	EmailParam    string
	// Regenerate ignores the prior store and issues fresh secrets for
	// every host.
	Regenerate bool
}

// DefaultOptions returns the production URL settings.
func DefaultOptions() Options {
	return Options{
		HelperBaseURL: DefaultHelperBaseURL,
		FormBaseURL:   DefaultFormBaseURL,
		VenueParam:    DefaultVenueParam,
		EmailParam:    DefaultEmailParam,
	}
}

// Result is the outcome of one reconciliation run.
type Result struct {
	Records    []SecurityRecord
	New        int
	Preserved  int
	Duplicates []string
}

type Reconciler struct {
	opts    Options
	secrets SecretSource
	now     func() time.Time
}

func NewReconciler(opts Options, secrets SecretSource) *Reconciler {
	return &Reconciler{opts: opts, secrets: secrets, now: time.Now}
}

// Reconcile merges hosts with the prior store. Output follows host order,
// blank names are skipped and the first occurrence of a repeated name wins.
// Hosts absent from the input are dropped. ErrNoHosts is returned when no
// usable host remains.
func (r *Reconciler) Reconcile(hosts []Host, prior map[string]SecurityRecord) (*Result, error) {
	res := &Result{}
	seen := make(map[string]struct{}, len(hosts))
	generatedAt := r.now().UTC()

	for _, h := range hosts {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			res.Duplicates = append(res.Duplicates, name)
			continue
		}
		seen[name] = struct{}{}
		email := strings.TrimSpace(h.ContactEmail)

		rec := SecurityRecord{VenueName: name, ContactEmail: email, GeneratedAt: generatedAt}

		if p, ok := prior[name]; ok && p.Token != "" && !r.opts.Regenerate {
			rec.Token = p.Token
			rec.FinancialPassword = p.FinancialPassword
			rec.PacketPassword = p.PacketPassword
			res.Preserved++
		} else {
			if err := r.issue(&rec); err != nil {
				return nil, fmt.Errorf("issue credentials for %q: %w", name, err)
			}
			res.New++
		}

		rec.HelperURL = HelperURL(r.opts.HelperBaseURL, rec.Token)
		rec.FinancialPasswordHash = HashHex(rec.FinancialPassword)
		rec.UpdateFormURL = UpdateFormURL(r.opts.FormBaseURL, r.opts.VenueParam, r.opts.EmailParam, name, email)

		res.Records = append(res.Records, rec)
	}

	if len(res.Records) == 0 {
		return nil, common.ErrNoHosts
	}
	return res, nil
}

func (r *Reconciler) issue(rec *SecurityRecord) error {
	var err error
	if rec.Token, err = r.secrets.Token(); err != nil {
		return err
	}
	if rec.FinancialPassword, err = r.secrets.Password(); err != nil {
		return err
	}
	rec.PacketPassword, err = r.secrets.Password()
	return err
}

// Index keys records by venue name, the shape Reconcile takes as its prior
// store.
func Index(records []SecurityRecord) map[string]SecurityRecord {
	m := make(map[string]SecurityRecord, len(records))
	for _, rec := range records {
		if _, ok := m[rec.VenueName]; !ok {
			m[rec.VenueName] = rec
		}
	}
	return m
}
