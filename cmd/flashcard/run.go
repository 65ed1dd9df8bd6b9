package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	flashcard "github.com/Moonzhang/go-flashcard"
)

// run dispatches the parsed command line: catalog listings, validation, or
// conversion.
func run(flags *cliFlags, inputs []string, env *Environment) error {
	if flags.version {
		fmt.Fprintln(env.Stdout, Version)
		return nil
	}

	cfg := flashcard.DefaultConfig()
	if flags.common.config != "" {
		loaded, err := flashcard.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if flags.list.templates {
		return listTemplates(cfg, env)
	}
	if flags.list.themes {
		for _, name := range cfg.AvailableThemes() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	opts, err := serviceOptions(flags, cfg)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		return ErrNoInput
	}

	if flags.validateOnly {
		return validateInputs(inputs, opts, env)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolSize := flashcard.ResolvePoolSize(flags.workers)
	if poolSize > len(inputs) {
		poolSize = len(inputs)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := flashcard.NewServicePool(poolSize, opts...)
	defer pool.Close()

	return convertAll(ctx, inputs, flags, pool, env)
}

// serviceOptions translates CLI flags into Service options.
func serviceOptions(flags *cliFlags, cfg *flashcard.Config) ([]flashcard.Option, error) {
	opts := []flashcard.Option{flashcard.WithConfig(cfg)}

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, flashcard.WithTimeout(d))
	}
	if flags.assetPath != "" {
		opts = append(opts, flashcard.WithAssetPath(flags.assetPath))
	}
	return opts, nil
}

// validateWorkers rejects negative worker counts. Zero means auto.
func validateWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, workers)
	}
	return nil
}

// listTemplates prints the configured template catalog.
func listTemplates(cfg *flashcard.Config, env *Environment) error {
	for _, name := range cfg.AvailableTemplates() {
		info := cfg.Templates[name]
		marker := " "
		if name == cfg.DefaultTemplate {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, "%s %-10s %s\n", marker, name, info.Description)
	}
	return nil
}

// validateInputs checks each input document and reports the result as JSON,
// one line per input. Returns ErrValidationFailed if any input is invalid.
func validateInputs(inputs []string, opts []flashcard.Option, env *Environment) error {
	svc, err := flashcard.New(opts...)
	if err != nil {
		return err
	}
	defer svc.Close()

	failed := false
	for _, input := range inputs {
		data, err := readInput(input, env)
		if err != nil {
			return err
		}

		result := svc.Validate(data)
		line, err := json.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%s\t%s\n", input, line)
		if !result.Valid {
			failed = true
		}
	}

	if failed {
		return ErrValidationFailed
	}
	return nil
}
