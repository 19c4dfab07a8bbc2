package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/eocodev/reviewstation/internal/bundle"
	"github.com/eocodev/reviewstation/internal/common"
	"github.com/eocodev/reviewstation/internal/config"
	"github.com/eocodev/reviewstation/internal/engine"
	"github.com/eocodev/reviewstation/internal/ledger"
	"github.com/eocodev/reviewstation/internal/ocr"
	"github.com/eocodev/reviewstation/internal/session"
)

// sessionPath resolves the session file location from config or the
// default under ~/.config/eoco.
func sessionPath() (string, error) {
	if path := viper.GetString("session.path"); path != "" {
		return config.ExpandPath(path), nil
	}
	return config.DefaultSessionPath()
}

func loadSession() (*session.Session, string, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, "", err
	}
	sess, err := session.Load(path)
	if err != nil {
		return nil, "", err
	}
	return sess, path, nil
}

// loadLedgerIndex loads the ledger by extension: OFX/QFX statements parse
// as bank exports, everything else as a delimited file.
func loadLedgerIndex(path, amountColumn string) (*ledger.Index, error) {
	path = config.ExpandPath(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError("failed to open ledger", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return ledger.LoadOFX(f)
	default:
		table, err := ledger.Load(f)
		if err != nil {
			return nil, err
		}
		return ledger.NewIndex(table, amountColumn)
	}
}

func openBundle(path string) (*bundle.Bundle, error) {
	b, err := bundle.Open(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		b.Close()
		return nil, common.NewUserError("no receipt documents in bundle", common.ErrNoReceipts)
	}
	return b, nil
}

func newTextSource() ocr.TextSource {
	rasterizer := ocr.NewPopplerRasterizer(viper.GetString("ocr.pdftoppm"), viper.GetInt("ocr.dpi"))
	recognizer := ocr.NewTesseractRecognizer(viper.GetString("ocr.tesseract"), viper.GetString("ocr.language"))
	return ocr.NewClient(rasterizer, recognizer)
}

func engineConfig() engine.Config {
	return engine.Config{
		Workers:             viper.GetInt("matching.workers"),
		ConfidenceThreshold: viper.GetFloat64("matching.confidence_threshold"),
	}
}

// runBatch performs the reconciliation batch with a terminal progress bar.
func runBatch(ctx context.Context, idx *ledger.Index, b *bundle.Bundle) (*engine.BatchReport, error) {
	bar := progressbar.NewOptions(b.Len(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reconciling receipts...[reset]"),
	)

	eng := engine.NewWithConfig(idx, newTextSource(), engineConfig())
	batch, err := eng.Reconcile(ctx, b, func(completed, _ int) {
		_ = bar.Set(completed)
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(os.Stderr)
	return batch, nil
}
