package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/dataset"
	"github.com/spigell/grant-matcher/internal/grants"
	"github.com/spigell/grant-matcher/internal/logger"
	"github.com/spigell/grant-matcher/internal/sources"
)

// datasetSource names the source serving opportunities of a --dataset file.
const datasetSource = "dataset"

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("86"))

// session holds what every command needs: config, logger, organizations and sources.
type session struct {
	config   *Config
	logger   *zap.Logger
	orgs     []*grants.Organization
	registry *sources.Registry
	out      io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	lg, err := logger.New(logger.Options{JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	lg = logger.WithRun(lg, uuid.NewString())

	config, err := getConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	lg.Debug("starting with config",
		zap.String("version", version),
		zap.String("command", cmd.Name()),
		zap.Any("config", config),
	)

	ds := dataset.Demo()
	if config.Dataset != "" {
		ds, err = dataset.LoadFile(config.Dataset)
		if err != nil {
			return nil, err
		}
		lg.Info("dataset loaded",
			zap.String("path", config.Dataset),
			zap.Int("organizations", len(ds.Organizations)),
			zap.Int("opportunities", len(ds.Opportunities)),
		)
	}

	registry := sources.NewRegistry(lg)
	registry.Register(sources.NewDemo())
	if config.Dataset != "" {
		registry.Register(sources.NewDataset(datasetSource, ds))
	}
	for name, feed := range config.Feeds {
		registry.Register(sources.NewFeed(name, feed))
	}

	return &session{
		config:   config,
		logger:   lg,
		orgs:     ds.Organizations,
		registry: registry,
		out:      cmd.OutOrStdout(),
	}, nil
}

func (s *session) header(title string) {
	fmt.Fprintln(s.out, headerStyle.Render(title))
}

func (s *session) printOrganizations() {
	for _, org := range s.orgs {
		fmt.Fprintf(s.out, "[%s] %s (%s)\n", org.ID, org.Name, org.Region)
		fmt.Fprintf(s.out, "  Mission: %s\n", org.Mission)
		fmt.Fprintf(s.out, "  Focus areas: %s\n", joinOrNone(org.FocusAreas, ""))
		fmt.Fprintln(s.out)
	}
}

func (s *session) printPaths(paths []string) {
	for _, path := range paths {
		fmt.Fprintf(s.out, "- %s\n", path)
	}
}

func joinOrNone(values []string, none string) string {
	if len(values) == 0 {
		return none
	}
	return strings.Join(values, ", ")
}
