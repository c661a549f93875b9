/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package factory

import (
	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/common/metrics"
)

// FactoryOpts holds configuration information used to initialize factory implementations
type FactoryOpts struct {
	ProviderName string      `mapstructure:"default" json:"default" yaml:"Default"`
	SwOpts       *SwOpts     `mapstructure:"SW,omitempty" json:"SW,omitempty" yaml:"SW,omitempty"`
	PluginOpts   *PluginOpts `mapstructure:"PLUGIN,omitempty" json:"PLUGIN,omitempty" yaml:"PluginOpts"`

	// MetricsProvider receives the meters of the provider. It is not part
	// of the serialized configuration.
	MetricsProvider metrics.Provider `mapstructure:"-" json:"-" yaml:"-"`
}

// SwOpts contains options for the SWFactory
type SwOpts struct {
	// Default algorithms when not specified
	BlockSize  int    `mapstructure:"blocksize" json:"blocksize" yaml:"BlockSize"`
	HashFamily string `mapstructure:"hash" json:"hash" yaml:"Hash"`

	// Keystore Options
	Ephemeral     bool               `mapstructure:"tempkeys,omitempty" json:"tempkeys,omitempty"`
	FileKeystore  *FileKeystoreOpts  `mapstructure:"filekeystore,omitempty" json:"filekeystore,omitempty" yaml:"FileKeyStore"`
	DummyKeystore *DummyKeystoreOpts `mapstructure:"dummykeystore,omitempty" json:"dummykeystore,omitempty"`
	InmemKeystore *InmemKeystoreOpts `mapstructure:"inmemkeystore,omitempty" json:"inmemkeystore,omitempty"`
}

// FileKeystoreOpts holds the location of a file based key store. A
// non-empty Password encrypts the key files.
type FileKeystoreOpts struct {
	KeyStorePath string `mapstructure:"keystore" json:"keystore" yaml:"KeyStore"`
	Password     string `mapstructure:"password" json:"password,omitempty" yaml:"Password"`
}

// DummyKeystoreOpts selects a key store that keeps nothing.
type DummyKeystoreOpts struct{}

// InmemKeystoreOpts - empty, as there is no config for the in-memory keystore
type InmemKeystoreOpts struct{}

// GetDefaultOpts offers a default implementation for Opts
// returns a new instance every time
func GetDefaultOpts() *FactoryOpts {
	return &FactoryOpts{
		ProviderName: SoftwareBasedFactoryName,
		SwOpts: &SwOpts{
			BlockSize:  bccsp.DefaultBlockSize,
			HashFamily: bccsp.SHA2,

			Ephemeral: true,
		},
	}
}

// FactoryName returns the name of the provider
func (o *FactoryOpts) FactoryName() string {
	return o.ProviderName
}
