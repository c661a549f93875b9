/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

import (
	"sync"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/common/flogging"
	"github.com/pkg/errors"
)

var (
	// factoriesMutex guards the providers built by InitFactories
	factoriesMutex sync.RWMutex
	defaultBCCSP   bccsp.BCCSP
	bccspMap       map[string]bccsp.BCCSP

	logger = flogging.MustGetLogger("bccsp")
)

// BCCSPFactory is used to get instances of the BCCSP interface.
// A Factory has name used to address it.
type BCCSPFactory interface {

	// Name returns the name of this factory
	Name() string

	// Get returns an instance of BCCSP using opts.
	Get(opts *FactoryOpts) (bccsp.BCCSP, error)
}

// GetDefault returns the default BCCSP of the last InitFactories call. When
// InitFactories has not been called yet, the factories are initialized with
// GetDefaultOpts.
func GetDefault() bccsp.BCCSP {
	factoriesMutex.RLock()
	csp := defaultBCCSP
	factoriesMutex.RUnlock()
	if csp != nil {
		return csp
	}

	logger.Debug("Before using BCCSP, please call InitFactories(). Falling back to the default opts.")
	if err := InitFactories(nil); err != nil {
		panic("BCCSP Internal error, failed initialization with GetDefaultOpts!")
	}
	factoriesMutex.RLock()
	defer factoriesMutex.RUnlock()
	return defaultBCCSP
}

// GetBCCSP returns the provider named name of the last InitFactories call.
func GetBCCSP(name string) (bccsp.BCCSP, error) {
	factoriesMutex.RLock()
	defer factoriesMutex.RUnlock()

	csp, ok := bccspMap[name]
	if !ok {
		return nil, errors.Errorf("Could not find BCCSP, no '%s' provider", name)
	}
	return csp, nil
}

// InitFactories builds a provider for every factory config configures and
// makes config.ProviderName the default. A nil config selects
// GetDefaultOpts. A later call replaces the providers of the previous one;
// on error the previous providers are kept.
func InitFactories(config *FactoryOpts) error {
	m, def, err := initFactories(config)
	if err != nil {
		return err
	}

	factoriesMutex.Lock()
	bccspMap, defaultBCCSP = m, def
	factoriesMutex.Unlock()
	return nil
}

func initFactories(config *FactoryOpts) (map[string]bccsp.BCCSP, bccsp.BCCSP, error) {
	// Take some precautions on default opts
	if config == nil {
		config = GetDefaultOpts()
	}
	conf := *config
	if conf.ProviderName == "" {
		conf.ProviderName = SoftwareBasedFactoryName
	}
	if conf.SwOpts == nil {
		conf.SwOpts = GetDefaultOpts().SwOpts
	}

	m := make(map[string]bccsp.BCCSP)

	// Software-Based BCCSP
	csp, err := newBCCSP(SoftwareBasedFactoryName, &conf)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "Failed initializing SW.BCCSP")
	}
	m[SoftwareBasedFactoryName] = csp

	// BCCSP Plugin
	if conf.PluginOpts != nil {
		csp, err := newBCCSP(PluginFactoryName, &conf)
		if err != nil {
			return nil, nil, errors.WithMessage(err, "Failed initializing PLUGIN.BCCSP")
		}
		m[PluginFactoryName] = csp
	}

	def, ok := m[conf.ProviderName]
	if !ok {
		return nil, nil, errors.Errorf("Could not find default `%s` BCCSP", conf.ProviderName)
	}
	return m, def, nil
}

// GetBCCSPFromOpts returns a BCCSP created according to the options passed
// in input, without touching the providers of InitFactories.
func GetBCCSPFromOpts(config *FactoryOpts) (bccsp.BCCSP, error) {
	if config == nil {
		return nil, errors.New("Invalid config. It must not be nil.")
	}
	return newBCCSP(config.ProviderName, config)
}

func newBCCSP(name string, config *FactoryOpts) (bccsp.BCCSP, error) {
	var f BCCSPFactory
	switch name {
	case SoftwareBasedFactoryName:
		f = &SWFactory{}
	case PluginFactoryName:
		f = &PluginFactory{}
	default:
		return nil, errors.Errorf("Could not find BCCSP, no '%s' provider", name)
	}

	csp, err := f.Get(config)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not initialize BCCSP %s", f.Name())
	}
	logger.Debugf("Initialize BCCSP [%s]", f.Name())
	return csp, nil
}
