package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"swissdamed-migel/internal/config"
	"swissdamed-migel/internal/fileio"
	"swissdamed-migel/internal/migel/service"
	"swissdamed-migel/internal/swissdamed"
)

// sourceFlags are shared by export and migel.
type sourceFlags struct {
	file     string
	pageSize int
}

// loadValues reads the JSON file when given, otherwise downloads every page.
func loadValues(ctx context.Context, f sourceFlags) ([]any, error) {
	if f.file != "" {
		logger.Info().Str("file", f.file).Msg("loading from file")
		return swissdamed.LoadFile(f.file)
	}
	sc := cfg.Swissdamed
	if f.pageSize > 0 {
		sc.PageSize = f.pageSize
	}
	client := swissdamed.NewClient(swissdamed.ClientConfig{
		BaseURL:    sc.BaseURL,
		PageSize:   sc.PageSize,
		RatePerSec: sc.RatePerSec,
		Timeout:    sc.Timeout,
		UserAgent:  sc.UserAgent,
	}, logger)
	return client.DownloadAll(ctx)
}

// matcherOptions maps the config section onto the matcher's options.
func matcherOptions(mc config.MatcherConfig) service.Options {
	opt := service.DefaultOptions()
	opt.MinKeywordLen = mc.MinKeywordLen
	opt.MinSecondaryLen = mc.MinSecondaryLen
	opt.FuzzyMinLen = mc.FuzzyMinLen
	opt.SuffixMinExtra = mc.SuffixMinExtra
	opt.MultiMinRatio = mc.MultiMinRatio
	opt.MultiMinMaxLen = mc.MultiMinMaxLen
	opt.SingleMinRatio = mc.SingleMinRatio
	opt.SingleMinMaxLen = mc.SingleMinMaxLen
	if len(mc.StopWords) > 0 {
		opt.StopWords = append([]string(nil), mc.StopWords...)
	}
	opt.StopWords = append(opt.StopWords, mc.ExtraStopWords...)
	return opt
}

// loadMatcher fetches (URL) or opens (path) the MiGeL workbook and indexes it.
func loadMatcher(ctx context.Context, src string) (*service.Matcher, error) {
	mc := cfg.Migel
	if src == "" {
		src = mc.CatalogURL
	}
	path := src
	if fileio.IsURL(src) {
		logger.Info().Str("url", src).Msg("downloading MiGeL workbook")
		client := &http.Client{Timeout: 5 * time.Minute}
		n, err := fileio.Download(ctx, client, src, mc.UserAgent, mc.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to download MiGeL workbook: %w", err)
		}
		logger.Info().Str("file", mc.CatalogFile).Int64("bytes", n).Msg("MiGeL workbook saved")
		path = mc.CatalogFile
	}

	opt := matcherOptions(cfg.Matcher)
	cat, err := service.LoadCatalogFile(path, opt)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("items", len(cat.Items)).
		Int("keywords", cat.Index.Len()).
		Msg("MiGeL catalog indexed")
	return service.NewMatcher(cat.Items, cat.Index, opt), nil
}
