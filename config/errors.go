package config

import "errors"

// Sentinel errors for dataset and settings validation.
var (
	// ErrConfigEmpty is returned when the dataset data is empty.
	ErrConfigEmpty = errors.New("dataset is empty")

	// ErrNoDevelopers is returned when the catalog lists no developer.
	ErrNoDevelopers = errors.New("developers must not be empty")

	// ErrDeveloperIDEmpty is returned when a developer has an empty id.
	ErrDeveloperIDEmpty = errors.New("developer.id is required")

	// ErrDeveloperDuplicate is returned when two developers share an id.
	ErrDeveloperDuplicate = errors.New("duplicate developer.id")

	// ErrModelIDEmpty is returned when a model has an empty id.
	ErrModelIDEmpty = errors.New("model.id is required")

	// ErrModelDuplicate is returned when a developer lists a model id twice.
	ErrModelDuplicate = errors.New("duplicate model.id")

	// ErrNegativeFigure is returned for a negative memory, throughput or GPU figure.
	ErrNegativeFigure = errors.New("model figures must not be negative")

	// ErrUnknownTier is returned for a tier outside small/medium/large/frontier.
	ErrUnknownTier = errors.New("unknown tier")

	// ErrNoHardware is returned when the hardware table has no profile.
	ErrNoHardware = errors.New("hardware.profiles must not be empty")

	// ErrUnknownHardwareClass is returned for a profile class other than mac or spark.
	ErrUnknownHardwareClass = errors.New("unknown hardware class")

	// ErrHardwareDuplicate is returned when two profiles share a class.
	ErrHardwareDuplicate = errors.New("duplicate hardware class")

	// ErrInvalidCapacity is returned for a non-positive memory capacity.
	ErrInvalidCapacity = errors.New("hardware memory must be positive")

	// ErrInvalidPrice is returned for a negative price or rate.
	ErrInvalidPrice = errors.New("prices must not be negative")

	// ErrUnknownCurrency is returned when a price uses a currency with no exchange rate.
	ErrUnknownCurrency = errors.New("currency has no exchange rate")

	// ErrProviderNameEmpty is returned when a price record has no provider name.
	ErrProviderNameEmpty = errors.New("provider name is required")

	// ErrOfferDuplicate is returned when one model lists the same OSS API
	// provider twice.
	ErrOfferDuplicate = errors.New("duplicate provider offer")

	// ErrUnknownPricedModel is returned when the OSS API table prices a model
	// the catalog does not list.
	ErrUnknownPricedModel = errors.New("priced model is not in the catalog")

	// ErrInvalidTrainingMode is returned for a training mode with an empty id,
	// a duplicate id or a non-positive multiplier.
	ErrInvalidTrainingMode = errors.New("invalid training mode")

	// ErrInvalidSettings is returned when process settings are out of range.
	ErrInvalidSettings = errors.New("invalid settings")
)
