package hostsec

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

// Test seams.
var (
	readPassword = term.ReadPassword
	lookupEnv    = os.LookupEnv
)

// ReadPassphrase returns the store passphrase from the environment variable
// envName, or prompts for it on the terminal when the variable is unset.
func ReadPassphrase(envName string, w io.Writer) ([]byte, error) {
	if envName != "" {
		if v, ok := lookupEnv(envName); ok && v != "" {
			return []byte(v), nil
		}
	}

	if _, err := fmt.Fprint(w, "Store passphrase: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	if len(pw) == 0 {
		return nil, common.ErrNoPassphrase
	}
	return pw, nil
}
