/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/factory"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/hyperledger/fabric-rijndael/common/viperutil"
	"github.com/pkg/errors"
)

// Prefix is the config file name stem and the environment variable prefix.
const Prefix = "rijndael"

// Config is the contents of rijndael.yaml.
type Config struct {
	Logging Logging
	Cipher  Cipher
	Metrics Metrics
	BCCSP   *factory.FactoryOpts
}

// Logging configures common/flogging.
type Logging struct {
	Spec   string
	Format string
}

// Cipher holds the defaults of the encrypt and decrypt commands. Key, SKI
// and IV are hex encoded in the file, or given as {File: path}.
type Cipher struct {
	BlockSize int
	Padding   string
	Encoding  string
	Key       []byte
	SKI       []byte
	IV        []byte
}

// Metrics enables the prometheus text dump written after each command.
type Metrics struct {
	Enabled bool
}

// Defaults applied to anything left unset.
var Defaults = Config{
	Cipher: Cipher{
		BlockSize: bccsp.DefaultBlockSize,
		Padding:   rijndael.PKCS7PaddingName,
		Encoding:  hexEncoding,
	},
}

// Load reads rijndael.yaml from configFile or, when configFile is empty,
// from the config search paths. A missing file is not an error.
func Load(configFile string) (*Config, error) {
	cp := viperutil.New()
	cp.SetConfigName(Prefix)
	if configFile != "" {
		cp.SetConfigFile(configFile)
	}

	err := cp.ReadInConfig()
	switch {
	case errors.Is(err, viperutil.ErrConfigFileNotFound):
		logger.Debugf("No config file, using defaults: %s", err)
	case err != nil:
		return nil, errors.WithMessagef(err, "error reading config file %s", cp.ConfigFileUsed())
	default:
		logger.Debugf("Loaded config file %s", cp.ConfigFileUsed())
	}

	var conf Config
	if err := cp.EnhancedExactUnmarshal(&conf); err != nil {
		return nil, errors.WithMessage(err, "error unmarshalling config")
	}
	conf.completeInitialization()

	return &conf, nil
}

func (c *Config) completeInitialization() {
	if c.Cipher.BlockSize == 0 {
		c.Cipher.BlockSize = Defaults.Cipher.BlockSize
	}
	if c.Cipher.Padding == "" {
		c.Cipher.Padding = Defaults.Cipher.Padding
	}
	if c.Cipher.Encoding == "" {
		c.Cipher.Encoding = Defaults.Cipher.Encoding
	}
	if c.BCCSP == nil {
		c.BCCSP = factory.GetDefaultOpts()
	}
}

// Validate checks the cipher settings.
func (c *Config) Validate() error {
	if !rijndael.ValidSize(c.Cipher.BlockSize) {
		return errors.WithMessagef(rijndael.ErrInvalidBlockSize, "block size %d", c.Cipher.BlockSize)
	}
	padding, err := rijndael.PaddingName(c.Cipher.Padding)
	if err != nil {
		return err
	}
	c.Cipher.Padding = padding
	if _, err := codecFor(c.Cipher.Encoding); err != nil {
		return err
	}
	return nil
}
