package linegrep

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linegrep-cli/internal/adapters/source"
	"github.com/linegrep-cli/internal/config"
	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/errors"
	"github.com/linegrep-cli/internal/logging"
)

var (
	cfgFile string
	verbose bool
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "linegrep",
	Short: "Search text for lines containing a string",
	Long: `linegrep prints every line of a text source that contains a literal query.
Sources are files, stdin ("-"), S3 objects (s3://bucket/key) or Kafka topics (kafka://topic).
Set CASE_INSENSITIVE (any value) to ignore case.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logging.New(os.Stderr, viper.GetBool("verbose"))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.IsMissingArgument(err) {
			fmt.Fprintln(os.Stderr, "Problem parsing arguments:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Application error:", err)
		}
		os.Exit(errors.ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.linegrep.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug information to stderr")

	// Source backends
	rootCmd.PersistentFlags().StringSlice("brokers", []string{"localhost:9092"}, "Kafka broker addresses")
	rootCmd.PersistentFlags().IntSlice("partitions", nil, "Kafka partitions to read (default all)")
	rootCmd.PersistentFlags().Bool("sasl", false, "Enable SASL authentication for Kafka")
	rootCmd.PersistentFlags().String("sasl-mechanism", "PLAIN", "SASL mechanism (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512)")
	rootCmd.PersistentFlags().String("security-protocol", "PLAINTEXT", "Security protocol (PLAINTEXT, SSL, SASL_PLAINTEXT, SASL_SSL)")
	rootCmd.PersistentFlags().String("username", "", "SASL username")
	rootCmd.PersistentFlags().String("password", "", "SASL password")
	rootCmd.PersistentFlags().Bool("tls-skip-verify", false, "Skip TLS certificate verification for Kafka")
	rootCmd.PersistentFlags().String("s3-endpoint", "", "S3 endpoint (host:port)")
	rootCmd.PersistentFlags().String("s3-region", "us-east-1", "S3 region")
	rootCmd.PersistentFlags().String("s3-access-key", "", "S3 access key")
	rootCmd.PersistentFlags().String("s3-secret-key", "", "S3 secret key")
	rootCmd.PersistentFlags().Bool("s3-ssl", true, "Use TLS for S3")
	rootCmd.PersistentFlags().String("dotenv", ".env", "dotenv file consulted after the process environment")

	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".linegrep" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".linegrep")
	}

	viper.SetEnvPrefix("linegrep")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// resolveConfig turns positional arguments into the run configuration. The
// program name is prepended so the resolver sees the full invocation.
func resolveConfig(args []string) (domain.Config, error) {
	dotEnv, err := config.LoadDotEnv(viper.GetString("dotenv"))
	if err != nil {
		log.WithError(err).Warn("Ignoring unreadable dotenv file")
		dotEnv = config.MapEnv{}
	}
	tokens := append([]string{rootCmd.Name()}, args...)
	return config.Resolve(tokens, config.Layered(config.ProcessEnv{}, dotEnv))
}

// newSource builds the source router for id. Remote backends are only
// configured when id needs them.
func newSource(id string) (*source.Router, error) {
	router := &source.Router{
		File:  source.NewFileSource(),
		Stdin: source.NewReaderSource(os.Stdin),
		Log:   log,
	}

	endpoint := viper.GetString("s3-endpoint")
	if strings.HasPrefix(id, source.S3Scheme) && endpoint != "" {
		s3, err := source.NewS3Source(source.S3Config{
			Endpoint:  endpoint,
			Region:    viper.GetString("s3-region"),
			AccessKey: viper.GetString("s3-access-key"),
			SecretKey: viper.GetString("s3-secret-key"),
			UseSSL:    viper.GetBool("s3-ssl"),
		})
		if err != nil {
			return nil, err
		}
		router.S3 = s3
	}

	if !strings.HasPrefix(id, source.KafkaScheme) {
		return router, nil
	}

	kafka, err := source.NewKafkaSource(source.KafkaConfig{
		Brokers:    viper.GetStringSlice("brokers"),
		Partitions: viper.GetIntSlice("partitions"),
		SASL: source.SASLConfig{
			Enabled:       viper.GetBool("sasl"),
			Mechanism:     viper.GetString("sasl-mechanism"),
			Username:      viper.GetString("username"),
			Password:      viper.GetString("password"),
			Protocol:      viper.GetString("security-protocol"),
			SkipTLSVerify: viper.GetBool("tls-skip-verify"),
		},
	}, log)
	if err != nil {
		return nil, err
	}
	router.Kafka = kafka

	return router, nil
}
