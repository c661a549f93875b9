/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"io"
	"os"
	"strings"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/factory"
	"github.com/hyperledger/fabric-rijndael/common/flogging"
	"github.com/hyperledger/fabric-rijndael/common/metrics"
	"github.com/hyperledger/fabric-rijndael/common/metrics/disabled"
	"github.com/hyperledger/fabric-rijndael/common/metrics/prometheus"
	"github.com/hyperledger/fabric-rijndael/internal/version"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var logger = flogging.MustGetLogger("cli")

// Keys of the settings that can be given as flags or RIJNDAEL_ environment
// variables. They override the config file.
const (
	configKey        = "config"
	loggingSpecKey   = "logging.spec"
	loggingFormatKey = "logging.format"
	blockSizeKey     = "cipher.blocksize"
	paddingKey       = "cipher.padding"
	encodingKey      = "cipher.encoding"
	keyKey           = "cipher.key"
	skiKey           = "cipher.ski"
	ivKey            = "cipher.iv"
	keyStoreKey      = "keystore.path"
	passwordKey      = "keystore.password"
	metricsKey       = "metrics.enabled"
	hashFamilyKey    = "hash.family"
)

// cli carries the state shared by the commands of a single invocation.
type cli struct {
	viper *viper.Viper
	conf  *Config

	metricsProvider metrics.Provider
	registry        *prom.Registry
	csp             bccsp.BCCSP
}

// Cmd returns the root command. Every call builds an independent command
// tree.
func Cmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(Prefix)
	v.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)

	c := &cli{viper: v}

	mainCmd := &cobra.Command{
		Use:                Prefix,
		Short:              "Rijndael CBC encryption with 128, 192 and 256 bit blocks.",
		SilenceUsage:       true,
		PersistentPreRunE:  c.init,
		PersistentPostRunE: c.dumpMetrics,
	}

	mainFlags := mainCmd.PersistentFlags()
	mainFlags.String("config", "", "Path of the config file, rijndael.yaml is searched for when empty")
	mainFlags.String("logging-spec", "", "Logging spec, for example 'info' or 'bccsp_sw=debug:warn'")
	mainFlags.String("log-format", "", "Log format: console, json or logfmt")
	mainFlags.Int("block-size", 0, "Block size in bytes: 16, 24 or 32")
	mainFlags.String("padding", "", "Padding scheme: zero or pkcs7")
	mainFlags.String("encoding", "", "Ciphertext encoding: hex, base64 or raw")
	mainFlags.String("key", "", "Hex encoded key")
	mainFlags.String("ski", "", "Hex encoded identifier of a key in the key store")
	mainFlags.String("iv", "", "Hex encoded IV, a random IV is prepended to the ciphertext when empty")
	mainFlags.String("keystore", "", "Directory of the file based key store")
	mainFlags.String("password", "", "Password protecting the keys of the key store")
	mainFlags.Bool("metrics", false, "Write prometheus metrics to stderr when the command completes")
	mainFlags.String("hash-family", "", "Default hash family of the provider: SHA2 or SHA3")

	c.bindFlags(mainFlags, map[string]string{
		configKey:        "config",
		loggingSpecKey:   "logging-spec",
		loggingFormatKey: "log-format",
		blockSizeKey:     "block-size",
		paddingKey:       "padding",
		encodingKey:      "encoding",
		keyKey:           "key",
		skiKey:           "ski",
		ivKey:            "iv",
		keyStoreKey:      "keystore",
		passwordKey:      "password",
		metricsKey:       "metrics",
		hashFamilyKey:    "hash-family",
	})

	mainCmd.AddCommand(version.Cmd())
	mainCmd.AddCommand(c.encryptCmd())
	mainCmd.AddCommand(c.decryptCmd())
	mainCmd.AddCommand(c.keygenCmd())
	mainCmd.AddCommand(c.importCmd())
	mainCmd.AddCommand(c.listCmd())
	mainCmd.AddCommand(c.digestCmd())

	return mainCmd
}

func (c *cli) bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := c.viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (c *cli) init(cmd *cobra.Command, args []string) error {
	conf, err := Load(c.viper.GetString(configKey))
	if err != nil {
		return err
	}
	if err := c.applyOverrides(conf); err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	err = flogging.Global.Apply(flogging.Config{
		Format:  conf.Logging.Format,
		LogSpec: conf.Logging.Spec,
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.WithMessage(err, "error initializing logging")
	}

	c.metricsProvider = &disabled.Provider{}
	if conf.Metrics.Enabled {
		c.registry = prom.NewRegistry()
		c.metricsProvider = &prometheus.Provider{Registerer: c.registry}
	}

	c.conf = conf
	return nil
}

// applyOverrides copies flags and environment variables that were set over
// the values read from the config file.
func (c *cli) applyOverrides(conf *Config) error {
	v := c.viper

	if s := v.GetString(loggingSpecKey); s != "" {
		conf.Logging.Spec = s
	}
	if s := v.GetString(loggingFormatKey); s != "" {
		conf.Logging.Format = s
	}
	if n := v.GetInt(blockSizeKey); n != 0 {
		conf.Cipher.BlockSize = n
	}
	if s := v.GetString(paddingKey); s != "" {
		conf.Cipher.Padding = s
	}
	if s := v.GetString(encodingKey); s != "" {
		conf.Cipher.Encoding = s
	}
	if v.GetBool(metricsKey) {
		conf.Metrics.Enabled = true
	}

	for key, dst := range map[string]*[]byte{
		keyKey: &conf.Cipher.Key,
		skiKey: &conf.Cipher.SKI,
		ivKey:  &conf.Cipher.IV,
	} {
		s := v.GetString(key)
		if s == "" {
			continue
		}
		b, err := decodeHexFlag(key[strings.LastIndex(key, ".")+1:], s)
		if err != nil {
			return err
		}
		*dst = b
	}

	if family := v.GetString(hashFamilyKey); family != "" {
		swOpts(conf).HashFamily = strings.ToUpper(family)
	}

	if path := v.GetString(keyStoreKey); path != "" {
		sw := swOpts(conf)
		sw.Ephemeral = false
		sw.InmemKeystore = nil
		sw.DummyKeystore = nil
		sw.FileKeystore = &factory.FileKeystoreOpts{
			KeyStorePath: path,
			Password:     v.GetString(passwordKey),
		}
	}

	return nil
}

func swOpts(conf *Config) *factory.SwOpts {
	if conf.BCCSP.SwOpts == nil {
		conf.BCCSP.SwOpts = &factory.SwOpts{}
	}
	return conf.BCCSP.SwOpts
}

// provider builds the BCCSP on first use. The cipher block size becomes the
// provider default.
func (c *cli) provider() (bccsp.BCCSP, error) {
	if c.csp != nil {
		return c.csp, nil
	}

	opts := *c.conf.BCCSP
	if opts.SwOpts != nil {
		sw := *opts.SwOpts
		sw.BlockSize = c.conf.Cipher.BlockSize
		opts.SwOpts = &sw
	}
	opts.MetricsProvider = c.metricsProvider

	if err := factory.InitFactories(&opts); err != nil {
		return nil, err
	}
	c.csp = factory.GetDefault()
	return c.csp, nil
}

func (c *cli) keyStoreConfigured() bool {
	sw := c.conf.BCCSP.SwOpts
	return sw != nil && !sw.Ephemeral && sw.FileKeystore != nil
}

// key resolves the key of encrypt and decrypt: a key store entry when an SKI
// is configured, otherwise the raw key imported as a temporary key.
func (c *cli) key(csp bccsp.BCCSP) (bccsp.Key, error) {
	cipher := c.conf.Cipher
	switch {
	case len(cipher.SKI) != 0:
		k, err := csp.GetKey(cipher.SKI)
		if err != nil {
			return nil, errors.WithMessagef(err, "error loading key %x", cipher.SKI)
		}
		return k, nil
	case len(cipher.Key) != 0:
		return csp.KeyImport(cipher.Key, &bccsp.RijndaelKeyImportOpts{
			BlockSize: cipher.BlockSize,
			Temporary: true,
		})
	default:
		return nil, errors.New("no key provided, use --key or --ski")
	}
}

// readInput reads the file named by the only argument, or stdin.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	in, err := os.ReadFile(args[0])
	if err != nil {
		return nil, errors.Wrapf(err, "error reading input")
	}
	return in, nil
}

// writeOutput writes to the --output file, or stdout.
func writeOutput(cmd *cobra.Command, out []byte) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	return errors.Wrapf(os.WriteFile(path, out, 0o600), "error writing output")
}
