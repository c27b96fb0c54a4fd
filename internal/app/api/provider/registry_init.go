package provider

import (
	"sort"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/config"
)

// Creator builds a provider from settings
type Creator func(settings config.ProviderSettings, logger *zap.Logger) (Transcriber, error)

var (
	providerRegistry = make(map[string]Creator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function, typically from an init func
func RegisterProvider(name string, creator Creator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[name] = creator
}

// New creates the provider selected by settings.Name
func New(settings config.ProviderSettings, logger *zap.Logger) (Transcriber, error) {
	registryMutex.RLock()
	creator, ok := providerRegistry[settings.Name]
	registryMutex.RUnlock()

	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrProviderNotFound, "provider %q (available: %v)", settings.Name, ListRegisteredProviders())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return creator(settings, logger.With(zap.String("provider", settings.Name)))
}

// ListRegisteredProviders returns all registered provider names, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := lo.Keys(providerRegistry)
	sort.Strings(names)
	return names
}
