package hostsec

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/credentials"
	"github.com/oneearth-admin/oeff-docs/internal/cryptox"
	"github.com/oneearth-admin/oeff-docs/internal/hostsec/config"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
	"github.com/oneearth-admin/oeff-docs/internal/objectstore"
)

// App runs one reconciliation of the host list against the security store.
type App struct {
	config     *config.Config
	logger     logging.Logger
	secrets    credentials.SecretSource
	uploader   objectstore.Uploader
	passphrase func() ([]byte, error)
	out        io.Writer
	now        func() time.Time
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	return &App{
		config:  c,
		logger:  logger,
		secrets: credentials.NewGenerator(c.TokenLength),
		uploader: objectstore.NewS3Store(objectstore.Config{
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
		}),
		passphrase: func() ([]byte, error) { return ReadPassphrase(c.PassphraseEnv, os.Stderr) },
		out:        os.Stdout,
		now:        time.Now,
	}
}

// Run reads the hosts, reconciles them and, unless this is a dry run,
// rewrites the store and the token map.
func (a *App) Run(ctx context.Context) error {
	hosts, err := ReadHostsFile(a.config.HostsPath)
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "read hosts", "path", a.config.HostsPath, "rows", len(hosts))

	pass, err := a.passphrase()
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pass)

	db, err := OpenStore(ctx, a.config.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := NewService(db, a.logger)
	key, err := svc.Unlock(ctx, pass)
	if err != nil {
		return err
	}
	prior, err := svc.Prior(ctx, key)
	if err != nil {
		return err
	}

	res, err := credentials.NewReconciler(a.config.ReconcileOptions(), a.secrets).Reconcile(hosts, prior)
	if err != nil {
		return err
	}
	for _, name := range res.Duplicates {
		a.logger.Warn(ctx, "duplicate venue ignored", "venue", name)
	}
	a.logger.Info(ctx, "reconciled hosts",
		"total", len(res.Records),
		"new", res.New,
		"preserved", res.Preserved,
		"duplicates", len(res.Duplicates),
		"regenerate", a.config.Regenerate)

	if a.config.DryRun {
		if err := WriteDrySummary(a.out, res.Records); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "\n(dry run, %s and %s not written)\n", a.config.DatabasePath, a.config.TokenMapPath)
		return nil
	}

	if err := svc.Save(ctx, key, res.Records); err != nil {
		return err
	}

	data, err := EncodeTokenMap(res.Records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.config.TokenMapPath, data, 0o600); err != nil {
		return fmt.Errorf("write token map: %w", err)
	}
	a.logger.Info(ctx, "wrote token map", "path", a.config.TokenMapPath)

	if a.config.Upload {
		url, err := a.uploader.Put(ctx, objectstore.ExportKey("token-map", "json", a.now()), "application/json", data)
		if err != nil {
			return err
		}
		a.logger.Info(ctx, "uploaded token map", "url", url)
	}
	return nil
}
