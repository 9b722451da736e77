// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/services/posts"
	"github.com/albumpost/albumpost-sdk/sdk/services/publish"
	"github.com/albumpost/albumpost-sdk/sdk/services/report"
	"github.com/albumpost/albumpost-sdk/sdk/services/transfer"
	"github.com/albumpost/albumpost-sdk/sdk/utils"
)

const usage = `Usage:
  albumpost run --manifest units.yaml [--output report.yaml] [--format yaml|json] [--publish]
  albumpost posts list [--filter expr] [--format yaml|json]
  albumpost posts delete --id post-id
  albumpost config save|show [--env name]

Settings are read from flags, then the environment, then ~/.albumpost.ini.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(ctx, os.Args[2:])
	case "posts":
		err = postsCmd(ctx, os.Args[2:])
	case "config":
		err = configCmd(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			slog.Error("albumpost failed", "error", err)
		}
		os.Exit(1)
	}
}

// settingsFlags registers the flags shared by all commands and binds them to
// their viper keys.
func settingsFlags(fs *pflag.FlagSet) *string {
	env := fs.String("env", "", "INI environment (section) to use")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("token", "", "source access token (or SOURCE_ACCESS_TOKEN)")
	fs.String("backend", "", "destination backend: s3 or ghost")
	fs.String("bucket", "", "destination bucket")
	fs.String("staging-dir", "", "local staging directory")

	_ = viper.BindPFlag(utils.LogLevel, fs.Lookup("log-level"))
	_ = viper.BindPFlag(utils.SourceAccessToken, fs.Lookup("token"))
	_ = viper.BindPFlag(utils.StoreBackend, fs.Lookup("backend"))
	_ = viper.BindPFlag(utils.S3Bucket, fs.Lookup("bucket"))
	_ = viper.BindPFlag(utils.StagingDir, fs.Lookup("staging-dir"))
	return env
}

// loadSettings reads the INI/env settings once the flags are parsed.
func loadSettings(env string) error {
	if err := utils.RegisterIniCfgWithViper(env); err != nil {
		return err
	}
	logger := utils.NewLogger(viper.GetString(utils.LogLevel))
	slog.SetDefault(logger)
	return nil
}

func runCmd(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	env := settingsFlags(fs)
	manifestPath := fs.StringP("manifest", "m", "", "work unit manifest (yaml or json)")
	outputPath := fs.StringP("output", "o", "", "report file (stdout when empty)")
	format := fs.StringP("format", "f", "yaml", "report format: yaml or json")
	doPublish := fs.Bool("publish", false, "publish every unit as a Ghost post")
	noProgress := fs.Bool("no-progress", false, "disable the progress line")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifestPath == "" {
		return errors.New("--manifest is required")
	}
	if err := loadSettings(*env); err != nil {
		return err
	}

	units, err := loadManifest(*manifestPath)
	if err != nil {
		return err
	}
	conf, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	opts := []transfer.Option{transfer.WithLogger(slog.Default())}
	var bp *utils.BatchProgress
	if !*noProgress {
		bp = utils.NewBatchProgress(os.Stderr)
		opts = append(opts, transfer.WithProgress(bp.Update))
	}
	if *doPublish {
		if conf.Ghost.AdminURL == "" || conf.Ghost.AdminAPIKey == "" {
			return errors.New("--publish needs ghost_admin_url and ghost_admin_api_key")
		}
		opts = append(opts, transfer.WithPublisher(publish.NewGhostPublisher(config.NewGhostHTTP(nil, conf.Ghost))))
	}

	svc, err := transfer.NewTransferService(ctx, conf, opts...)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Run(ctx, transfer.RunRequest{
		Units:       units,
		AccessToken: viper.GetString(utils.SourceAccessToken),
	})
	if bp != nil {
		bp.Done()
	}
	if err != nil {
		return err
	}

	if err := saveReport(*outputPath, result, *format); err != nil {
		return err
	}

	if s := report.Summarize(result); s.UnitsFailed > 0 {
		return fmt.Errorf("%d of %d units failed", s.UnitsFailed, s.Units)
	}
	return nil
}

func configCmd(args []string) error {
	if len(args) == 0 || (args[0] != "save" && args[0] != "show") {
		return errors.New("usage: albumpost config save|show [--env name]")
	}
	fs := pflag.NewFlagSet("config "+args[0], pflag.ContinueOnError)
	env := settingsFlags(fs)
	format := fs.StringP("format", "f", "yaml", "output format: yaml or json")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := loadSettings(*env); err != nil {
		return err
	}
	if args[0] == "show" {
		return writeDocument(os.Stdout, utils.RedactedSettings(), *format)
	}
	path, err := utils.SaveSettings()
	if err != nil {
		return err
	}
	slog.Info("settings saved", "path", path, "environment", viper.GetString(utils.CurrentEnvironment))
	return nil
}

func postsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: albumpost posts list|delete")
	}
	fs := pflag.NewFlagSet("posts "+args[0], pflag.ContinueOnError)
	env := settingsFlags(fs)
	filter := fs.String("filter", "", "Ghost NQL filter, e.g. status:draft")
	format := fs.StringP("format", "f", "yaml", "output format: yaml or json")
	id := fs.String("id", "", "post id")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := loadSettings(*env); err != nil {
		return err
	}
	conf, err := utils.LoadConfig()
	if err != nil {
		return err
	}
	svc, err := posts.NewPostsService(ctx, conf)
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		elements, _, err := svc.ListAllPages(ctx, posts.ListRequest{Params: map[string]string{"filter": *filter}})
		if err != nil {
			return err
		}
		return writeDocument(os.Stdout, elements, *format)
	case "delete":
		if err := svc.Delete(ctx, posts.DeleteRequest{ID: *id}); err != nil {
			return err
		}
		slog.Info("post deleted", "id", *id)
		return nil
	default:
		return fmt.Errorf("unknown posts command %q", args[0])
	}
}
