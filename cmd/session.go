package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/session"
	"github.com/KaramelBytes/odpanel/internal/utils"
	"github.com/KaramelBytes/odpanel/internal/views"
	"github.com/spf13/cobra"
)

var errNoConfig = errors.New("no configuration loaded")

// loadFunc reads the configured input files into a fresh registry.
func loadFunc() (session.LoadFunc, error) {
	if cfg == nil {
		return nil, errNoConfig
	}
	opt, err := cfg.ReadOptions()
	if err != nil {
		return nil, err
	}
	sources := cfg.Sources()
	return func(ctx context.Context) (*dataset.Registry, error) {
		return dataset.Load(ctx, sources, opt)
	}, nil
}

// settings derives the view settings from the loaded configuration.
func settings() (views.Settings, error) {
	if cfg == nil {
		return views.Settings{}, errNoConfig
	}
	modes, err := cfg.Modes()
	if err != nil {
		return views.Settings{}, err
	}
	motives, err := cfg.Motives()
	if err != nil {
		return views.Settings{}, err
	}
	return views.Settings{
		InvalidSurveyorID: cfg.InvalidSurveyorID,
		DefaultCities:     cfg.ODDefaultCities,
		HistogramBins:     cfg.HistogramBins,
		Modes:             modes,
		Motives:           motives,
	}, nil
}

// openSession loads the datasets into the single implicit CLI session.
func openSession(ctx context.Context) (*session.Session, views.Settings, error) {
	set, err := settings()
	if err != nil {
		return nil, views.Settings{}, err
	}
	load, err := loadFunc()
	if err != nil {
		return nil, views.Settings{}, err
	}
	s := session.New("cli")
	if err := s.Load(ctx, load); err != nil {
		return nil, views.Settings{}, fmt.Errorf("load datasets: %w", err)
	}
	return s, set, nil
}

// emit prints v as JSON when --json is set, otherwise through render. With --output the
// result goes to that file instead of stdout.
func emit(cmd *cobra.Command, v any, render func(io.Writer)) error {
	var buf bytes.Buffer
	if flagJSON {
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	} else {
		render(&buf)
	}
	if flagOutput != "" {
		if err := utils.SafeWriteFile(flagOutput, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", flagOutput)
		return nil
	}
	_, err := cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
