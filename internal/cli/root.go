// Package cli implements the criteriactl commands.
package cli

import (
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/filters"
	"github.com/nrfta/criteria-go/internal/config"
	"github.com/nrfta/criteria-go/internal/log"
	"github.com/nrfta/criteria-go/schemafile"
)

// app holds the state shared by all commands.
type app struct {
	configFile string
	schemaFile string
	codecName  string
	debug      bool

	cfg      *config.Config
	logger   *log.Logger
	registry *criteria.Registry
	custom   bool
}

// NewRootCommand builds the criteriactl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "criteriactl",
		Short: "Encode, decode and page search filters",
		Long: `criteriactl converts search filters between JSON and their URL forms
(plain key:value lists or opaque base64 tokens), prints filter schemas,
computes page navigation links and serves a paginated announcements API.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Config file (default: criteria.yaml in ., $HOME/.criteria, /etc/criteria)")
	flags.StringVarP(&a.schemaFile, "schemas", "s", "", "YAML schema file replacing the built-in filter types")
	flags.StringVar(&a.codecName, "codec", "", "Codec to use: plain or opaque (default from config)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newEncodeCommand(a),
		newDecodeCommand(a),
		newLinksCommand(a),
		newSchemaCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}

// Execute runs criteriactl with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = log.New()
	a.logger.SetOutput(cmd.ErrOrStderr())

	var opts []config.Option
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cmd.Flags().Changed("codec") {
		cfg.Set(config.KeyCodec, a.codecName)
	}

	if a.debug {
		cfg.Set(config.KeyLogLevel, "debug")
	}
	if !a.logger.IsDebugEnabled() {
		if err := a.logger.SetLevelName(cfg.LogLevel()); err != nil {
			return errors.Wrap(err, "log level")
		}
	}
	if f := cfg.File(); f != "" {
		a.logger.Debug("using config file %s", f)
	}

	if a.schemaFile != "" {
		registry, err := schemafile.LoadFromFile(a.schemaFile)
		if err != nil {
			return errors.Wrapf(err, "load schemas from %s", a.schemaFile)
		}
		a.registry = registry
		a.custom = true
		a.logger.Debug("loaded %d schemas from %s", len(registry.Names()), a.schemaFile)
	} else {
		a.registry = filters.Registry()
	}

	return nil
}

// newFilter returns an empty filter of the named type.
func (a *app) newFilter(name string) (criteria.Filter, error) {
	if a.custom {
		schema, ok := a.registry.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown filter type %q (known: %v)", name, a.registry.Names())
		}
		return schemafile.NewDocument(schema), nil
	}

	filter, ok := filters.New(name)
	if !ok {
		return nil, errors.Errorf("unknown filter type %q (known: %v)", name, a.registry.Names())
	}
	return filter, nil
}

func (a *app) codec() (criteria.Codec, error) {
	return a.cfg.Codec()
}
